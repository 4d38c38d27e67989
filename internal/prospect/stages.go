package prospect

import "fmt"

// Stage identifies a pipeline stage that can run out of records.
type Stage int

const (
	StageSearch Stage = iota
	StageThresholds
	StageCategory
	StageChannels
	StageSubscribers
)

// String returns the stage as a short label for logs.
func (s Stage) String() string {
	switch s {
	case StageSearch:
		return "search"
	case StageThresholds:
		return "thresholds"
	case StageCategory:
		return "category"
	case StageChannels:
		return "channels"
	case StageSubscribers:
		return "subscribers"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// EmptyStageError reports that a stage left no records to continue with.
// It ends the run but is not a failure: the CLI shows the stage's notice
// and exits cleanly.
type EmptyStageError struct {
	Stage Stage
}

func (e *EmptyStageError) Error() string {
	return "no records left after " + e.Stage.String() + " stage"
}

// Notice returns the user-facing explanation for the empty result, naming
// which expectation the data failed so the user knows which knob to turn.
func (e *EmptyStageError) Notice() string {
	switch e.Stage {
	case StageSearch:
		return "No videos found for the given keywords and period."
	case StageThresholds:
		return "No videos above the view and duration thresholds."
	case StageCategory:
		return "No videos in the requested category."
	case StageChannels:
		return "No channel data available for the matched videos."
	case StageSubscribers:
		return "No videos from channels within the subscriber limit."
	default:
		return "No results."
	}
}
