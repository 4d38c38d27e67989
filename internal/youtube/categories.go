package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/url"
	"strings"
	"sync"
)

// categoryCache memoizes the category taxonomy per region. The client is
// bound to one API key, so the effective cache key is key+region. Lifetime
// is the process; the taxonomy does not change within a run.
type categoryCache struct {
	mu       sync.Mutex
	byRegion map[string]map[string]string
}

func newCategoryCache() *categoryCache {
	return &categoryCache{byRegion: make(map[string]map[string]string)}
}

func (cc *categoryCache) lookup(region string) (map[string]string, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cached, ok := cc.byRegion[region]
	if !ok {
		return nil, false
	}
	return maps.Clone(cached), true
}

func (cc *categoryCache) store(region string, categories map[string]string) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.byRegion[region] = maps.Clone(categories)
}

// Categories returns the id-to-title mapping of video categories that can
// actually be assigned to videos in the given region. Non-assignable
// taxonomy entries never appear on videos, so they are filtered out.
// Results are fetched once per region and served from memory afterwards.
func (c *Client) Categories(ctx context.Context, region string) (map[string]string, error) {
	if cached, ok := c.categoryCache.lookup(region); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("regionCode", region)

	body, err := c.get(ctx, "videoCategories", params)
	if err != nil {
		return nil, err
	}

	var resp categoriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse video categories response: %w", err)
	}

	categories := make(map[string]string)
	for _, item := range resp.Items {
		if !item.Snippet.Assignable {
			continue
		}
		categories[item.ID] = item.Snippet.Title
	}

	c.categoryCache.store(region, categories)
	return categories, nil
}

// CategoryID resolves a category title to its id, matching
// case-insensitively. The second return value is false when no category
// carries that title.
func CategoryID(categories map[string]string, title string) (string, bool) {
	for id, t := range categories {
		if strings.EqualFold(t, title) {
			return id, true
		}
	}
	return "", false
}

// API response types (private - implementation detail)

type categoriesResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title      string `json:"title"`
			Assignable bool   `json:"assignable"`
		} `json:"snippet"`
	} `json:"items"`
}
