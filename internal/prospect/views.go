package prospect

import (
	"sort"
	"time"

	"github.com/gauthierbraillon/tubescout/internal/config"
)

// TrendingView filters records to small channels whose recent videos are
// gaining views fastest and ranks them by velocity.
//
// A record qualifies when its channel shows a subscriber count within the
// ceiling (the -1 "unknown" sentinel never passes), the video is at least
// the minimum duration, has at least the minimum views, and was published
// inside the recency window ending at now.
func TrendingView(records []Record, rules config.TrendingRules, now time.Time) []Record {
	cutoff := now.UTC().AddDate(0, 0, -rules.WindowDays)

	out := make([]Record, 0)
	for _, r := range records {
		if r.Subscribers < 0 || r.Subscribers > rules.MaxSubscribers {
			continue
		}
		if r.DurationMinutes < rules.MinDurationMinutes {
			continue
		}
		if r.ViewCount < rules.MinViews {
			continue
		}
		if r.PublishedAt.Before(cutoff) {
			continue
		}
		out = append(out, r)
	}

	// Velocity descending; ties broken by views, then by id so equal
	// inputs always rank identically.
	sort.Slice(out, func(i, j int) bool {
		if out[i].ViewsPerDay != out[j].ViewsPerDay {
			return out[i].ViewsPerDay > out[j].ViewsPerDay
		}
		if out[i].ViewCount != out[j].ViewCount {
			return out[i].ViewCount > out[j].ViewCount
		}
		return out[i].VideoID < out[j].VideoID
	})

	return out
}

// GeneralView filters records to small-channel videos above the view and
// duration floors and ranks them by total views.
func GeneralView(records []Record, rules config.GeneralRules) []Record {
	out := make([]Record, 0)
	for _, r := range records {
		if r.ViewCount < rules.MinViews {
			continue
		}
		if r.DurationMinutes < rules.MinDurationMinutes {
			continue
		}
		if r.Subscribers < 0 || r.Subscribers > rules.MaxSubscribers {
			continue
		}
		out = append(out, r)
	}

	// Views descending; ties broken by recency, then by id.
	sort.Slice(out, func(i, j int) bool {
		if out[i].ViewCount != out[j].ViewCount {
			return out[i].ViewCount > out[j].ViewCount
		}
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].VideoID < out[j].VideoID
	})

	return out
}
