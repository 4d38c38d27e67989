package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// searchPageSize is the API maximum for search.list.
const searchPageSize = 50

// SearchVideoIDs returns up to opts.MaxResults video ids for one keyword,
// ordered by view count, paging with continuation tokens until the cap is
// reached or the API stops returning a next page.
//
// On failure the ids collected so far are returned along with the error,
// so callers can keep a partial page set when the failure is transient.
func (c *Client) SearchVideoIDs(ctx context.Context, query string, opts SearchOptions) ([]string, error) {
	if opts.MaxResults <= 0 {
		return []string{}, nil
	}

	ids := make([]string, 0, opts.MaxResults)
	seenTokens := make(map[string]bool)
	pageToken := ""

	for len(ids) < opts.MaxResults {
		params := url.Values{}
		params.Set("part", "id")
		params.Set("type", "video")
		params.Set("order", "viewCount")
		params.Set("safeSearch", "none")
		params.Set("q", query)
		if opts.Region != "" {
			params.Set("regionCode", opts.Region)
		}
		if !opts.PublishedAfter.IsZero() {
			params.Set("publishedAfter", opts.PublishedAfter.UTC().Format(time.RFC3339))
		}
		remaining := opts.MaxResults - len(ids)
		if remaining > searchPageSize {
			remaining = searchPageSize
		}
		params.Set("maxResults", strconv.Itoa(remaining))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		body, err := c.get(ctx, "search", params)
		if err != nil {
			return ids, err
		}

		var resp searchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return ids, fmt.Errorf("failed to parse search response: %w", err)
		}

		for _, item := range resp.Items {
			if item.ID.VideoID == "" {
				continue
			}
			ids = append(ids, item.ID.VideoID)
			if len(ids) == opts.MaxResults {
				break
			}
		}

		// A repeated token means the API is cycling; stop rather than
		// loop forever.
		if resp.NextPageToken == "" || seenTokens[resp.NextPageToken] {
			break
		}
		seenTokens[resp.NextPageToken] = true
		pageToken = resp.NextPageToken
	}

	return ids, nil
}

// API response types (private - implementation detail)

type searchResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}
