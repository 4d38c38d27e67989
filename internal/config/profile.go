package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a YAML run profile. Every field is optional; pointer fields
// distinguish "not set" from an explicit zero, so a profile can lower a
// threshold to 0 without being mistaken for an omission.
type Profile struct {
	APIKey         *string  `yaml:"api_key"`
	Keywords       []string `yaml:"keywords"`
	Region         *string  `yaml:"region"`
	PublishedAfter *string  `yaml:"published_after"`
	MaxPerKeyword  *int     `yaml:"max_per_keyword"`

	General  *GeneralProfile  `yaml:"general"`
	Trending *TrendingProfile `yaml:"trending"`

	TrendingOnly *bool   `yaml:"trending_only"`
	Category     *string `yaml:"category"`
	Rollup       *bool   `yaml:"rollup"`
	OutputDir    *string `yaml:"output_dir"`
}

// GeneralProfile overrides thresholds of the view-ranked view.
type GeneralProfile struct {
	MinViews           *int64   `yaml:"min_views"`
	MinDurationMinutes *float64 `yaml:"min_duration_minutes"`
	MaxSubscribers     *int64   `yaml:"max_subscribers"`
}

// TrendingProfile overrides thresholds of the velocity-ranked view.
type TrendingProfile struct {
	MaxSubscribers     *int64   `yaml:"max_subscribers"`
	MinDurationMinutes *float64 `yaml:"min_duration_minutes"`
	MinViews           *int64   `yaml:"min_views"`
	WindowDays         *int     `yaml:"window_days"`
}

// LoadProfile reads and parses a YAML run profile.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	return &profile, nil
}

// Apply copies the profile's set fields onto cfg. Fields the profile
// leaves out keep their current values, so flag and default precedence
// stays intact.
func (p *Profile) Apply(cfg *Config) error {
	if p.APIKey != nil {
		cfg.APIKey = *p.APIKey
	}
	if len(p.Keywords) > 0 {
		cfg.Keywords = append([]string(nil), p.Keywords...)
	}
	if p.Region != nil {
		cfg.Region = *p.Region
	}
	if p.PublishedAfter != nil {
		publishedAfter, err := ParsePublishedAfter(*p.PublishedAfter)
		if err != nil {
			return err
		}
		cfg.PublishedAfter = publishedAfter
	}
	if p.MaxPerKeyword != nil {
		cfg.MaxPerKeyword = *p.MaxPerKeyword
	}

	if p.General != nil {
		if p.General.MinViews != nil {
			cfg.General.MinViews = *p.General.MinViews
		}
		if p.General.MinDurationMinutes != nil {
			cfg.General.MinDurationMinutes = *p.General.MinDurationMinutes
		}
		if p.General.MaxSubscribers != nil {
			cfg.General.MaxSubscribers = *p.General.MaxSubscribers
		}
	}
	if p.Trending != nil {
		if p.Trending.MaxSubscribers != nil {
			cfg.Trending.MaxSubscribers = *p.Trending.MaxSubscribers
		}
		if p.Trending.MinDurationMinutes != nil {
			cfg.Trending.MinDurationMinutes = *p.Trending.MinDurationMinutes
		}
		if p.Trending.MinViews != nil {
			cfg.Trending.MinViews = *p.Trending.MinViews
		}
		if p.Trending.WindowDays != nil {
			cfg.Trending.WindowDays = *p.Trending.WindowDays
		}
	}

	if p.TrendingOnly != nil {
		cfg.TrendingOnly = *p.TrendingOnly
	}
	if p.Category != nil {
		cfg.Category = *p.Category
	}
	if p.Rollup != nil {
		cfg.Rollup = *p.Rollup
	}
	if p.OutputDir != nil {
		cfg.OutputDir = *p.OutputDir
	}

	return nil
}
