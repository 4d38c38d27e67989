package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func videoItem(id string, overrides map[string]interface{}) map[string]interface{} {
	item := map[string]interface{}{
		"id": id,
		"snippet": map[string]interface{}{
			"title":        "Video " + id,
			"publishedAt":  "2026-08-01T12:00:00Z",
			"channelId":    "UC-" + id,
			"channelTitle": "Channel " + id,
			"categoryId":   "22",
			"thumbnails": map[string]interface{}{
				"high": map[string]interface{}{"url": "https://i.ytimg.com/" + id + "/hq.jpg"},
			},
		},
		"statistics": map[string]interface{}{
			"viewCount":    "250000",
			"likeCount":    "1200",
			"commentCount": "80",
		},
		"contentDetails": map[string]interface{}{
			"duration": "PT10M30S",
		},
	}
	for k, v := range overrides {
		item[k] = v
	}
	return item
}

func TestFetchVideos_ChunksFiftyIDsPerRequest(t *testing.T) {
	var mu sync.Mutex
	var idParams []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idParam := r.URL.Query().Get("id")
		mu.Lock()
		idParams = append(idParams, idParam)
		mu.Unlock()

		items := make([]map[string]interface{}, 0)
		for _, id := range strings.Split(idParam, ",") {
			items = append(items, videoItem(id, nil))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": items})
	}))
	defer server.Close()

	ids := make([]string, 120)
	for i := range ids {
		ids[i] = fmt.Sprintf("vid%03d", i)
	}

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	videos, err := client.FetchVideos(context.Background(), ids)

	require.NoError(t, err)
	require.Len(t, videos, 120)
	require.Len(t, idParams, 3, "120 ids need ceil(120/50) = 3 requests")

	assert.Len(t, strings.Split(idParams[0], ","), 50)
	assert.Len(t, strings.Split(idParams[1], ","), 50)
	assert.Len(t, strings.Split(idParams[2], ","), 20)

	// Concatenation preserves input order.
	assert.Equal(t, "vid000", videos[0].ID)
	assert.Equal(t, "vid119", videos[119].ID)
}

func TestFetchVideos_DecodesAllFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "snippet,statistics,contentDetails", r.URL.Query().Get("part"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{videoItem("vid1", nil)},
		})
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	videos, err := client.FetchVideos(context.Background(), []string{"vid1"})

	require.NoError(t, err)
	require.Len(t, videos, 1)

	v := videos[0]
	assert.Equal(t, "vid1", v.ID)
	assert.Equal(t, "Video vid1", v.Title)
	assert.Equal(t, "UC-vid1", v.ChannelID)
	assert.Equal(t, "Channel vid1", v.ChannelTitle)
	assert.Equal(t, "22", v.CategoryID)
	assert.Equal(t, "https://i.ytimg.com/vid1/hq.jpg", v.Thumbnail)
	assert.Equal(t, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), v.PublishedAt)
	assert.Equal(t, int64(250000), v.ViewCount)
	assert.Equal(t, int64(1200), v.LikeCount)
	assert.Equal(t, int64(80), v.CommentCount)
	assert.InDelta(t, 10.5, v.DurationMinutes, 1e-9)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid1", v.URL)
}

func TestFetchVideos_PicksHighestQualityThumbnail(t *testing.T) {
	cases := []struct {
		name       string
		thumbnails map[string]interface{}
		want       string
	}{
		{
			"maxres wins over everything",
			map[string]interface{}{
				"maxres":  map[string]interface{}{"url": "https://img/maxres.jpg"},
				"default": map[string]interface{}{"url": "https://img/default.jpg"},
			},
			"https://img/maxres.jpg",
		},
		{
			"standard beats high",
			map[string]interface{}{
				"standard": map[string]interface{}{"url": "https://img/standard.jpg"},
				"high":     map[string]interface{}{"url": "https://img/high.jpg"},
			},
			"https://img/standard.jpg",
		},
		{
			"high beats medium",
			map[string]interface{}{
				"high":   map[string]interface{}{"url": "https://img/high.jpg"},
				"medium": map[string]interface{}{"url": "https://img/medium.jpg"},
			},
			"https://img/high.jpg",
		},
		{
			"medium beats default",
			map[string]interface{}{
				"medium":  map[string]interface{}{"url": "https://img/medium.jpg"},
				"default": map[string]interface{}{"url": "https://img/default.jpg"},
			},
			"https://img/medium.jpg",
		},
		{
			"default as last resort",
			map[string]interface{}{
				"default": map[string]interface{}{"url": "https://img/default.jpg"},
			},
			"https://img/default.jpg",
		},
		{"no thumbnails at all", map[string]interface{}{}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				item := videoItem("vid1", nil)
				item["snippet"].(map[string]interface{})["thumbnails"] = tc.thumbnails
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"items": []map[string]interface{}{item},
				})
			}))
			defer server.Close()

			client := NewClient("test-api-key", WithBaseURL(server.URL))

			videos, err := client.FetchVideos(context.Background(), []string{"vid1"})

			require.NoError(t, err)
			require.Len(t, videos, 1)
			assert.Equal(t, tc.want, videos[0].Thumbnail)
		})
	}
}

func TestFetchVideos_DefaultsMissingNumericsToZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				videoItem("vid1", map[string]interface{}{
					"statistics":     map[string]interface{}{},
					"contentDetails": map[string]interface{}{"duration": "not-iso"},
				}),
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	videos, err := client.FetchVideos(context.Background(), []string{"vid1"})

	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Zero(t, videos[0].ViewCount)
	assert.Zero(t, videos[0].LikeCount)
	assert.Zero(t, videos[0].CommentCount)
	assert.Zero(t, videos[0].DurationMinutes)
}

func TestFetchVideos_IgnoresUnexpectedFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		item := videoItem("vid1", map[string]interface{}{
			"newFieldFromGoogle": "surprise feature!",
		})
		item["snippet"].(map[string]interface{})["anotherNewField"] = []string{"we", "added", "this"}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{item},
		})
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	videos, err := client.FetchVideos(context.Background(), []string{"vid1"})

	require.NoError(t, err, "new fields from Google must not break decoding")
	require.Len(t, videos, 1)
	assert.Equal(t, "vid1", videos[0].ID)
}

func TestFetchVideos_EmptyInputMakesNoRequests(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	videos, err := client.FetchVideos(context.Background(), nil)

	require.NoError(t, err)
	assert.NotNil(t, videos)
	assert.Empty(t, videos)
	assert.Zero(t, requests)
}

func TestFetchVideos_SkipsFailedChunkAndContinues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idParam := r.URL.Query().Get("id")
		if strings.HasPrefix(idParam, "bad") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		items := make([]map[string]interface{}, 0)
		for _, id := range strings.Split(idParam, ",") {
			items = append(items, videoItem(id, nil))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": items})
	}))
	defer server.Close()

	// First chunk of 50 starts with "bad..." ids and keeps failing; the
	// second chunk must still be fetched.
	ids := make([]string, 60)
	for i := range ids {
		if i < 50 {
			ids[i] = fmt.Sprintf("bad%03d", i)
		} else {
			ids[i] = fmt.Sprintf("good%03d", i)
		}
	}

	client := NewClient("test-api-key",
		WithBaseURL(server.URL),
		WithRetryPolicy(1, time.Millisecond))

	videos, err := client.FetchVideos(context.Background(), ids)

	require.NoError(t, err, "a lost chunk is degradation, not failure")
	assert.Len(t, videos, 10)
	assert.Equal(t, "good050", videos[0].ID)
}

func TestFetchVideos_TerminalErrorAbortsRemainingChunks(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(apiErrorBody(403, "Quota exceeded", "quotaExceeded"))
	}))
	defer server.Close()

	ids := make([]string, 120)
	for i := range ids {
		ids[i] = fmt.Sprintf("vid%03d", i)
	}

	client := NewClient("test-api-key",
		WithBaseURL(server.URL),
		WithRetryPolicy(3, time.Millisecond))

	_, err := client.FetchVideos(context.Background(), ids)

	require.Error(t, err)
	assert.Equal(t, 1, requests, "no point burning quota-limited calls on remaining chunks")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindQuota, apiErr.Kind)
}

func TestFetchChannels_DecodesStatistics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "snippet,statistics", r.URL.Query().Get("part"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				{
					"id": "UC123",
					"snippet": map[string]interface{}{
						"title":   "Small Creator",
						"country": "BR",
					},
					"statistics": map[string]interface{}{
						"subscriberCount":       "4300",
						"hiddenSubscriberCount": false,
						"videoCount":            "87",
					},
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	channels, err := client.FetchChannels(context.Background(), []string{"UC123"})

	require.NoError(t, err)
	require.Len(t, channels, 1)

	ch := channels[0]
	assert.Equal(t, "UC123", ch.ID)
	assert.Equal(t, "Small Creator", ch.Title)
	assert.Equal(t, "BR", ch.Country)
	assert.Equal(t, int64(4300), ch.Subscribers)
	assert.Equal(t, int64(87), ch.VideoCount)
}

func TestFetchChannels_SubscriberSentinel(t *testing.T) {
	cases := []struct {
		name       string
		statistics map[string]interface{}
		want       int64
	}{
		{
			"hidden count",
			map[string]interface{}{"hiddenSubscriberCount": true, "videoCount": "10"},
			-1,
		},
		{
			"missing count",
			map[string]interface{}{"videoCount": "10"},
			-1,
		},
		{
			"zero is a real count",
			map[string]interface{}{"subscriberCount": "0", "videoCount": "10"},
			0,
		},
		{
			"unparseable count",
			map[string]interface{}{"subscriberCount": "many", "videoCount": "10"},
			-1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"items": []map[string]interface{}{
						{
							"id":         "UC123",
							"snippet":    map[string]interface{}{"title": "Channel"},
							"statistics": tc.statistics,
						},
					},
				})
			}))
			defer server.Close()

			client := NewClient("test-api-key", WithBaseURL(server.URL))

			channels, err := client.FetchChannels(context.Background(), []string{"UC123"})

			require.NoError(t, err)
			require.Len(t, channels, 1)
			assert.Equal(t, tc.want, channels[0].Subscribers,
				"hidden or unknown counts must be -1, never a passable 0")
		})
	}
}

func TestChunkIDs(t *testing.T) {
	cases := []struct {
		name       string
		count      int
		wantChunks []int
	}{
		{"empty", 0, nil},
		{"single", 1, []int{1}},
		{"exactly one chunk", 50, []int{50}},
		{"one over", 51, []int{50, 1}},
		{"several chunks", 120, []int{50, 50, 20}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ids := make([]string, tc.count)
			for i := range ids {
				ids[i] = fmt.Sprintf("id%d", i)
			}

			chunks := chunkIDs(ids, 50)

			require.Len(t, chunks, len(tc.wantChunks))
			for i, want := range tc.wantChunks {
				assert.Len(t, chunks[i], want)
			}
		})
	}
}
