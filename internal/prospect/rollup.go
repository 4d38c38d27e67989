package prospect

import "sort"

// ChannelSummary aggregates one channel's qualifying videos.
type ChannelSummary struct {
	ChannelID     string
	ChannelTitle  string
	Subscribers   int64
	Country       string
	TopVideoViews int64
	VideoCount    int
	ChannelURL    string
}

// ChannelRollup groups records by channel and aggregates the best video's
// views and how many qualifying videos the channel placed. Channels with
// several qualifying videos rank first: repeat performance matters more to
// prospecting than one lucky hit.
func ChannelRollup(records []Record) []ChannelSummary {
	byChannel := make(map[string]*ChannelSummary)
	for _, r := range records {
		summary, ok := byChannel[r.ChannelID]
		if !ok {
			summary = &ChannelSummary{
				ChannelID:    r.ChannelID,
				ChannelTitle: r.ChannelTitle,
				Subscribers:  r.Subscribers,
				Country:      r.Country,
				ChannelURL:   r.ChannelURL,
			}
			byChannel[r.ChannelID] = summary
		}
		summary.VideoCount++
		if r.ViewCount > summary.TopVideoViews {
			summary.TopVideoViews = r.ViewCount
		}
	}

	out := make([]ChannelSummary, 0, len(byChannel))
	for _, summary := range byChannel {
		out = append(out, *summary)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].VideoCount != out[j].VideoCount {
			return out[i].VideoCount > out[j].VideoCount
		}
		if out[i].TopVideoViews != out[j].TopVideoViews {
			return out[i].TopVideoViews > out[j].TopVideoViews
		}
		return out[i].ChannelID < out[j].ChannelID
	})

	return out
}
