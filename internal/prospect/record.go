// Package prospect turns raw video and channel data into ranked prospect
// views: merge, filter, and sort stages plus the Finder that runs a whole
// search end to end.
package prospect

import (
	"time"

	"github.com/gauthierbraillon/tubescout/internal/youtube"
)

// minElapsedDays floors the age used for velocity so a video published
// moments before the run cannot divide by zero.
const minElapsedDays = 1e-6

// Record is one video joined with its channel data, ready for filtering
// and ranking.
type Record struct {
	VideoID         string
	Title           string
	ChannelID       string
	ChannelTitle    string
	CategoryID      string
	Thumbnail       string
	PublishedAt     time.Time
	ViewCount       int64
	LikeCount       int64
	CommentCount    int64
	DurationMinutes float64

	// Channel side of the join. Subscribers is -1 when the channel was
	// not found or hides its count.
	Subscribers   int64
	Country       string
	ChannelVideos int64

	VideoURL   string
	ChannelURL string

	// ElapsedDays and ViewsPerDay are computed against the run-start
	// instant, so a run is a pure function of its inputs.
	ElapsedDays float64
	ViewsPerDay float64
}

// Merge left-joins videos with channels on channel id and derives the
// per-record fields the views rank on.
//
// Videos with an unparseable (zero) publish timestamp are dropped: both
// ranked views depend on the timestamp, so a record without one cannot be
// ordered honestly. All timestamps are normalized to UTC. The display name
// prefers the channel's own title and falls back to the title embedded in
// the video.
func Merge(videos []youtube.Video, channels []youtube.Channel, now time.Time) []Record {
	byChannel := make(map[string]youtube.Channel, len(channels))
	for _, channel := range channels {
		byChannel[channel.ID] = channel
	}

	records := make([]Record, 0, len(videos))
	for _, video := range videos {
		if video.PublishedAt.IsZero() {
			continue
		}
		publishedAt := video.PublishedAt.UTC()

		displayName := video.ChannelTitle
		subscribers := int64(-1)
		country := ""
		channelVideos := int64(0)
		if channel, ok := byChannel[video.ChannelID]; ok {
			if channel.Title != "" {
				displayName = channel.Title
			}
			subscribers = channel.Subscribers
			country = channel.Country
			channelVideos = channel.VideoCount
		}

		elapsedDays := now.UTC().Sub(publishedAt).Hours() / 24
		if elapsedDays < minElapsedDays {
			elapsedDays = minElapsedDays
		}

		records = append(records, Record{
			VideoID:         video.ID,
			Title:           video.Title,
			ChannelID:       video.ChannelID,
			ChannelTitle:    displayName,
			CategoryID:      video.CategoryID,
			Thumbnail:       video.Thumbnail,
			PublishedAt:     publishedAt,
			ViewCount:       video.ViewCount,
			LikeCount:       video.LikeCount,
			CommentCount:    video.CommentCount,
			DurationMinutes: video.DurationMinutes,
			Subscribers:     subscribers,
			Country:         country,
			ChannelVideos:   channelVideos,
			VideoURL:        video.URL,
			ChannelURL:      "https://www.youtube.com/channel/" + video.ChannelID,
			ElapsedDays:     elapsedDays,
			ViewsPerDay:     float64(video.ViewCount) / elapsedDays,
		})
	}

	return records
}
