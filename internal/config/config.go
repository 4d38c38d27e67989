// Package config defines the run configuration for tubescout: keyword
// search parameters, view thresholds, and output settings, assembled from
// flags, an optional YAML profile, and the environment.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Defaults for a run. View thresholds follow the tool's premise: find
// small channels (low subscriber ceiling) whose videos outperform.
const (
	DefaultRegion        = "BR"
	DefaultMaxPerKeyword = 100
	DefaultLookbackDays  = 365

	DefaultGeneralMinViews       = 200_000
	DefaultGeneralMaxSubscribers = 10_000

	DefaultTrendingMaxSubscribers     = 10_000
	DefaultTrendingMinDurationMinutes = 2.0
	DefaultTrendingMinViews           = 50_000
	DefaultTrendingWindowDays         = 14

	// MaxPerKeywordLimit caps how many search results one keyword may
	// request; each page of 50 costs 100 quota units.
	MaxPerKeywordLimit = 200
)

// Regions lists the region codes tubescout accepts for search and
// category lookups.
var Regions = []string{"BR", "US", "MX", "ES", "FR", "PL", "IT", "PT", "AR", "CO", "CL"}

// IsSupportedRegion reports whether code is one of Regions. Matching is
// case-insensitive; the canonical form is upper-case.
func IsSupportedRegion(code string) bool {
	for _, region := range Regions {
		if strings.EqualFold(region, code) {
			return true
		}
	}
	return false
}

// GeneralRules are the thresholds for the view-ranked result view.
type GeneralRules struct {
	MinViews           int64
	MinDurationMinutes float64
	MaxSubscribers     int64
}

// TrendingRules are the thresholds for the velocity-ranked result view.
type TrendingRules struct {
	MaxSubscribers     int64
	MinDurationMinutes float64
	MinViews           int64
	WindowDays         int
}

// Config is a fully resolved run configuration.
type Config struct {
	APIKey         string
	Keywords       []string
	Region         string
	PublishedAfter time.Time
	MaxPerKeyword  int

	General  GeneralRules
	Trending TrendingRules

	TrendingOnly bool
	Category     string
	Rollup       bool
	OutputDir    string
}

// Default returns the configuration a run starts from before profile,
// environment, and flag overrides. The published-after default looks back
// one year from now.
func Default(now time.Time) Config {
	return Config{
		Region:         DefaultRegion,
		PublishedAfter: now.UTC().AddDate(0, 0, -DefaultLookbackDays),
		MaxPerKeyword:  DefaultMaxPerKeyword,
		General: GeneralRules{
			MinViews:       DefaultGeneralMinViews,
			MaxSubscribers: DefaultGeneralMaxSubscribers,
		},
		Trending: TrendingRules{
			MaxSubscribers:     DefaultTrendingMaxSubscribers,
			MinDurationMinutes: DefaultTrendingMinDurationMinutes,
			MinViews:           DefaultTrendingMinViews,
			WindowDays:         DefaultTrendingWindowDays,
		},
		Rollup: true,
	}
}

// Validate checks the configuration before any network call is made.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is required: pass --api-key or set TUBESCOUT_API_KEY")
	}
	if len(c.Keywords) == 0 {
		return fmt.Errorf("at least one search keyword is required")
	}
	for _, keyword := range c.Keywords {
		if strings.TrimSpace(keyword) == "" {
			return fmt.Errorf("search keywords must not be blank")
		}
	}
	if !IsSupportedRegion(c.Region) {
		return fmt.Errorf("unsupported region %q: supported regions are %s",
			c.Region, strings.Join(Regions, ", "))
	}
	if c.PublishedAfter.IsZero() {
		return fmt.Errorf("published-after date is required")
	}
	if c.MaxPerKeyword < 1 || c.MaxPerKeyword > MaxPerKeywordLimit {
		return fmt.Errorf("max results per keyword must be between 1 and %d, got %d",
			MaxPerKeywordLimit, c.MaxPerKeyword)
	}
	if c.General.MinViews < 0 || c.Trending.MinViews < 0 {
		return fmt.Errorf("minimum view thresholds must not be negative")
	}
	if c.General.MinDurationMinutes < 0 || c.Trending.MinDurationMinutes < 0 {
		return fmt.Errorf("minimum duration thresholds must not be negative")
	}
	if c.General.MaxSubscribers < 0 || c.Trending.MaxSubscribers < 0 {
		return fmt.Errorf("subscriber ceilings must not be negative")
	}
	if c.Trending.WindowDays < 1 {
		return fmt.Errorf("trending window must be at least 1 day, got %d", c.Trending.WindowDays)
	}
	return nil
}

// Normalize canonicalizes fields that accept loose input: region case and
// keyword whitespace.
func (c *Config) Normalize() {
	c.Region = strings.ToUpper(strings.TrimSpace(c.Region))
	keywords := make([]string, 0, len(c.Keywords))
	for _, keyword := range c.Keywords {
		if trimmed := strings.TrimSpace(keyword); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	c.Keywords = keywords
}

// ParseKeywords splits a comma-separated keyword list, trimming whitespace
// and dropping empty entries.
func ParseKeywords(s string) []string {
	var keywords []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// ParsePublishedAfter accepts a plain date or a full RFC3339 timestamp.
// Plain dates are taken as midnight UTC.
func ParsePublishedAfter(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid published-after date %q: use YYYY-MM-DD or RFC3339", s)
}
