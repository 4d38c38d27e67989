package prospect

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gauthierbraillon/tubescout/internal/config"
	"github.com/gauthierbraillon/tubescout/internal/youtube"
)

// VideoSource is the slice of the YouTube client the Finder needs.
type VideoSource interface {
	SearchVideoIDs(ctx context.Context, query string, opts youtube.SearchOptions) ([]string, error)
	FetchVideos(ctx context.Context, ids []string) ([]youtube.Video, error)
	FetchChannels(ctx context.Context, ids []string) ([]youtube.Channel, error)
	Categories(ctx context.Context, region string) (map[string]string, error)
}

// FinderOption configures the Finder.
type FinderOption func(*Finder)

// WithLogger sets the logger for run progress.
func WithLogger(logger zerolog.Logger) FinderOption {
	return func(f *Finder) {
		f.logger = logger
	}
}

// WithClock overrides the run-start clock. Tests pin it so velocity and
// the trending window are reproducible.
func WithClock(clock func() time.Time) FinderOption {
	return func(f *Finder) {
		f.clock = clock
	}
}

// Finder runs the whole prospecting pipeline against a video source.
type Finder struct {
	source VideoSource
	logger zerolog.Logger
	clock  func() time.Time
}

// NewFinder creates a Finder backed by the given source.
func NewFinder(source VideoSource, opts ...FinderOption) *Finder {
	f := &Finder{
		source: source,
		logger: zerolog.Nop(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Stats counts what each stage kept, for the run summary.
type Stats struct {
	RunID               string
	Keywords            int
	CandidateIDs        int
	UniqueVideos        int
	Enriched            int
	AboveThresholds     int
	InCategory          int
	ChannelsFetched     int
	Merged              int
	WithinSubscriberCap int
	Trending            int
	General             int
	RankedChannels      int
}

// Result is a completed run.
type Result struct {
	Trending []Record
	General  []Record
	Channels []ChannelSummary
	Stats    Stats
}

// Run executes search, enrichment, merge, and ranking for cfg.
//
// Terminal API errors (quota, credential, bad request) abort the run. A
// keyword search or enrichment call that still fails after retries only
// costs its own records; the run continues with what it has. When a stage
// leaves nothing to continue with, Run returns an *EmptyStageError.
func (f *Finder) Run(ctx context.Context, cfg config.Config) (*Result, error) {
	now := f.clock().UTC()
	stats := Stats{RunID: uuid.NewString(), Keywords: len(cfg.Keywords)}
	logger := f.logger.With().Str("run_id", stats.RunID).Logger()

	logger.Info().
		Strs("keywords", cfg.Keywords).
		Str("region", cfg.Region).
		Time("published_after", cfg.PublishedAfter).
		Int("max_per_keyword", cfg.MaxPerKeyword).
		Msg("starting prospect run")

	// Resolve the category filter before spending search quota: an
	// unknown category title should fail in one cheap call.
	categoryID := ""
	if cfg.Category != "" {
		categories, err := f.source.Categories(ctx, cfg.Region)
		if err != nil {
			return nil, err
		}
		id, ok := youtube.CategoryID(categories, cfg.Category)
		if !ok {
			return nil, fmt.Errorf("unknown category %q for region %s", cfg.Category, cfg.Region)
		}
		categoryID = id
		logger.Debug().Str("category", cfg.Category).Str("category_id", categoryID).
			Msg("resolved category filter")
	}

	ids, err := f.searchAll(ctx, logger, cfg)
	if err != nil {
		return nil, err
	}
	stats.CandidateIDs = len(ids)

	unique := dedupe(ids)
	stats.UniqueVideos = len(unique)
	logger.Info().Int("candidates", len(ids)).Int("unique", len(unique)).
		Msg("search complete")
	if len(unique) == 0 {
		return nil, &EmptyStageError{Stage: StageSearch}
	}

	videos, err := f.source.FetchVideos(ctx, unique)
	if err != nil && !recoverable(ctx, err) {
		return nil, err
	}
	if err != nil {
		logger.Warn().Err(err).Msg("video enrichment incomplete, continuing with partial data")
	}
	stats.Enriched = len(videos)
	if len(videos) == 0 {
		return nil, &EmptyStageError{Stage: StageSearch}
	}

	// Item-level pre-filter with the loosest enabled bounds, so records
	// any view could still want survive to the channel lookup and the
	// lookup stays as small as possible.
	minViews, minDuration := preFilterBounds(cfg)
	videos = filterVideos(videos, minViews, minDuration)
	stats.AboveThresholds = len(videos)
	if len(videos) == 0 {
		return nil, &EmptyStageError{Stage: StageThresholds}
	}

	if categoryID != "" {
		kept := videos[:0]
		for _, v := range videos {
			if v.CategoryID == categoryID {
				kept = append(kept, v)
			}
		}
		videos = kept
	}
	stats.InCategory = len(videos)
	if len(videos) == 0 {
		return nil, &EmptyStageError{Stage: StageCategory}
	}

	channels, err := f.source.FetchChannels(ctx, channelIDs(videos))
	if err != nil && !recoverable(ctx, err) {
		return nil, err
	}
	if err != nil {
		logger.Warn().Err(err).Msg("channel enrichment incomplete, continuing with partial data")
	}
	stats.ChannelsFetched = len(channels)
	if len(channels) == 0 {
		return nil, &EmptyStageError{Stage: StageChannels}
	}

	records := Merge(videos, channels, now)
	stats.Merged = len(records)

	records = gateBySubscribers(records, subscriberCeiling(cfg))
	stats.WithinSubscriberCap = len(records)
	logger.Info().Int("merged", stats.Merged).Int("within_cap", len(records)).
		Msg("merge complete")
	if len(records) == 0 {
		return nil, &EmptyStageError{Stage: StageSubscribers}
	}

	result := &Result{}
	result.Trending = TrendingView(records, cfg.Trending, now)
	stats.Trending = len(result.Trending)
	if !cfg.TrendingOnly {
		result.General = GeneralView(records, cfg.General)
		stats.General = len(result.General)
	}
	if cfg.Rollup {
		result.Channels = ChannelRollup(records)
		stats.RankedChannels = len(result.Channels)
	}
	result.Stats = stats

	logger.Info().
		Int("trending", stats.Trending).
		Int("general", stats.General).
		Int("channels", stats.RankedChannels).
		Msg("prospect run complete")

	return result, nil
}

// searchAll collects ids for every keyword. A keyword whose search still
// fails after retries only loses its own results unless the failure is
// terminal for the whole run.
func (f *Finder) searchAll(ctx context.Context, logger zerolog.Logger, cfg config.Config) ([]string, error) {
	opts := youtube.SearchOptions{
		Region:         cfg.Region,
		PublishedAfter: cfg.PublishedAfter,
		MaxResults:     cfg.MaxPerKeyword,
	}

	var ids []string
	for _, keyword := range cfg.Keywords {
		found, err := f.source.SearchVideoIDs(ctx, keyword, opts)
		if err != nil {
			if !recoverable(ctx, err) {
				return nil, err
			}
			logger.Warn().Err(err).Str("keyword", keyword).Int("partial", len(found)).
				Msg("keyword search incomplete, keeping partial results")
		}
		logger.Debug().Str("keyword", keyword).Int("ids", len(found)).Msg("keyword searched")
		ids = append(ids, found...)
	}
	return ids, nil
}

// recoverable reports whether the run may continue after err with partial
// data. Terminal API errors and a dead context always abort.
func recoverable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var apiErr *youtube.APIError
	if errors.As(err, &apiErr) {
		return !apiErr.Terminal()
	}
	// Anything else (decode failures and the like) already yielded
	// whatever records could be salvaged.
	return true
}

// preFilterBounds returns the loosest view and duration floors any enabled
// view will apply.
func preFilterBounds(cfg config.Config) (int64, float64) {
	minViews := cfg.Trending.MinViews
	minDuration := cfg.Trending.MinDurationMinutes
	if !cfg.TrendingOnly {
		minViews = min(minViews, cfg.General.MinViews)
		minDuration = min(minDuration, cfg.General.MinDurationMinutes)
	}
	return minViews, minDuration
}

// subscriberCeiling returns the highest subscriber cap any enabled view
// will accept.
func subscriberCeiling(cfg config.Config) int64 {
	ceiling := cfg.Trending.MaxSubscribers
	if !cfg.TrendingOnly {
		ceiling = max(ceiling, cfg.General.MaxSubscribers)
	}
	return ceiling
}

func filterVideos(videos []youtube.Video, minViews int64, minDuration float64) []youtube.Video {
	kept := videos[:0]
	for _, v := range videos {
		if v.ViewCount < minViews {
			continue
		}
		if v.DurationMinutes < minDuration {
			continue
		}
		kept = append(kept, v)
	}
	return kept
}

func gateBySubscribers(records []Record, ceiling int64) []Record {
	kept := records[:0]
	for _, r := range records {
		if r.Subscribers < 0 || r.Subscribers > ceiling {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// dedupe removes repeated ids, keeping first occurrence order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// channelIDs returns the unique channel ids of videos, sorted so the
// enrichment request is identical for identical inputs.
func channelIDs(videos []youtube.Video) []string {
	set := make(map[string]struct{}, len(videos))
	for _, v := range videos {
		if v.ChannelID != "" {
			set[v.ChannelID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
