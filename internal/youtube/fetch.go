package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxBatchSize is the API maximum for id-list lookups on videos.list and
// channels.list.
const maxBatchSize = 50

// FetchVideos retrieves statistics and content details for the given video
// ids, batching 50 per call. Output order follows input order.
//
// A terminal API failure aborts and returns the videos decoded so far with
// the error. A chunk that still fails after retries is logged and skipped;
// a lossy result beats losing the whole run.
func (c *Client) FetchVideos(ctx context.Context, ids []string) ([]Video, error) {
	videos := make([]Video, 0, len(ids))

	for _, chunk := range chunkIDs(ids, maxBatchSize) {
		params := url.Values{}
		params.Set("part", "snippet,statistics,contentDetails")
		params.Set("id", strings.Join(chunk, ","))
		params.Set("maxResults", strconv.Itoa(maxBatchSize))

		body, err := c.get(ctx, "videos", params)
		if err != nil {
			if !skippableChunkError(ctx, err) {
				return videos, err
			}
			c.logger.Warn().Err(err).Int("chunk_size", len(chunk)).
				Msg("skipping video chunk after exhausted retries")
			continue
		}

		var resp videosResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return videos, fmt.Errorf("failed to parse videos response: %w", err)
		}

		for _, item := range resp.Items {
			videos = append(videos, decodeVideo(item))
		}
	}

	return videos, nil
}

// FetchChannels retrieves statistics for the given channel ids, batching 50
// per call. Chunk failure handling matches FetchVideos.
func (c *Client) FetchChannels(ctx context.Context, ids []string) ([]Channel, error) {
	channels := make([]Channel, 0, len(ids))

	for _, chunk := range chunkIDs(ids, maxBatchSize) {
		params := url.Values{}
		params.Set("part", "snippet,statistics")
		params.Set("id", strings.Join(chunk, ","))
		params.Set("maxResults", strconv.Itoa(maxBatchSize))

		body, err := c.get(ctx, "channels", params)
		if err != nil {
			if !skippableChunkError(ctx, err) {
				return channels, err
			}
			c.logger.Warn().Err(err).Int("chunk_size", len(chunk)).
				Msg("skipping channel chunk after exhausted retries")
			continue
		}

		var resp channelsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return channels, fmt.Errorf("failed to parse channels response: %w", err)
		}

		for _, item := range resp.Items {
			channels = append(channels, decodeChannel(item))
		}
	}

	return channels, nil
}

// skippableChunkError reports whether a failed chunk may be dropped while
// the remaining chunks proceed. Only transient API failures qualify;
// terminal errors and a dead context abort the whole fetch.
func skippableChunkError(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && !apiErr.Terminal()
}

func decodeVideo(item videoResource) Video {
	// A zero PublishedAt marks an unparseable timestamp; the pipeline
	// drops those records instead of guessing a date.
	publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)

	return Video{
		ID:              item.ID,
		Title:           item.Snippet.Title,
		ChannelID:       item.Snippet.ChannelID,
		ChannelTitle:    item.Snippet.ChannelTitle,
		CategoryID:      item.Snippet.CategoryID,
		Thumbnail:       pickThumbnail(item.Snippet.Thumbnails),
		PublishedAt:     publishedAt,
		ViewCount:       parseCount(item.Statistics.ViewCount, 0),
		LikeCount:       parseCount(item.Statistics.LikeCount, 0),
		CommentCount:    parseCount(item.Statistics.CommentCount, 0),
		DurationMinutes: ParseDuration(item.ContentDetails.Duration),
		URL:             fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.ID),
	}
}

func decodeChannel(item channelResource) Channel {
	// -1 means "unknown": hidden counts and missing fields must not pass
	// a subscriber ceiling, while a real 0 still may.
	subscribers := int64(-1)
	if !item.Statistics.HiddenSubscriberCount {
		subscribers = parseCount(item.Statistics.SubscriberCount, -1)
	}

	return Channel{
		ID:          item.ID,
		Title:       item.Snippet.Title,
		Country:     item.Snippet.Country,
		Subscribers: subscribers,
		VideoCount:  parseCount(item.Statistics.VideoCount, 0),
	}
}

// parseCount converts the decimal strings YouTube uses for counters,
// falling back when the field is missing or malformed.
func parseCount(s string, fallback int64) int64 {
	if s == "" {
		return fallback
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// pickThumbnail returns the highest-quality thumbnail present.
func pickThumbnail(t thumbnails) string {
	for _, candidate := range []string{
		t.Maxres.URL, t.Standard.URL, t.High.URL, t.Medium.URL, t.Default.URL,
	} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// chunkIDs partitions ids into contiguous chunks of at most size.
func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// API response types (private - implementation detail)

type thumbnail struct {
	URL string `json:"url"`
}

type thumbnails struct {
	Maxres   thumbnail `json:"maxres"`
	Standard thumbnail `json:"standard"`
	High     thumbnail `json:"high"`
	Medium   thumbnail `json:"medium"`
	Default  thumbnail `json:"default"`
}

type videoResource struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string     `json:"title"`
		PublishedAt  string     `json:"publishedAt"`
		ChannelID    string     `json:"channelId"`
		ChannelTitle string     `json:"channelTitle"`
		CategoryID   string     `json:"categoryId"`
		Thumbnails   thumbnails `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}

type videosResponse struct {
	Items []videoResource `json:"items"`
}

type channelResource struct {
	ID      string `json:"id"`
	Snippet struct {
		Title   string `json:"title"`
		Country string `json:"country"`
	} `json:"snippet"`
	Statistics struct {
		SubscriberCount       string `json:"subscriberCount"`
		HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
		VideoCount            string `json:"videoCount"`
	} `json:"statistics"`
}

type channelsResponse struct {
	Items []channelResource `json:"items"`
}
