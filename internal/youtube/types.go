// Package youtube provides an API-key client for the YouTube Data API v3.
//
// This package enables tubescout to:
// - Search videos per keyword, ordered by view count, with pagination
// - Batch-fetch video statistics and content details (50 ids per call)
// - Batch-fetch channel statistics (50 ids per call)
// - Resolve the assignable video category taxonomy per region
package youtube

import "time"

// Video represents a YouTube video with its statistics.
type Video struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	ChannelID       string    `json:"channel_id"`
	ChannelTitle    string    `json:"channel_title"`
	CategoryID      string    `json:"category_id"`
	Thumbnail       string    `json:"thumbnail"`
	PublishedAt     time.Time `json:"published_at"`
	ViewCount       int64     `json:"view_count"`
	LikeCount       int64     `json:"like_count"`
	CommentCount    int64     `json:"comment_count"`
	DurationMinutes float64   `json:"duration_minutes"`
	URL             string    `json:"url"`
}

// Channel represents a YouTube channel with its statistics.
// Subscribers is -1 when the channel hides its subscriber count;
// 0 is a real count.
type Channel struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Country     string `json:"country"`
	Subscribers int64  `json:"subscribers"`
	VideoCount  int64  `json:"video_count"`
}

// SearchOptions configures a keyword search.
type SearchOptions struct {
	Region         string
	PublishedAfter time.Time
	MaxResults     int
}
