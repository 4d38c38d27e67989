// Package main provides the tubescout CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/tubescout/internal/config"
	"github.com/gauthierbraillon/tubescout/internal/display"
	"github.com/gauthierbraillon/tubescout/internal/export"
	"github.com/gauthierbraillon/tubescout/internal/prospect"
	"github.com/gauthierbraillon/tubescout/internal/youtube"
	"github.com/gauthierbraillon/tubescout/pkg/browser"
)

// version is injected at build time via:
//
//	go build -ldflags="-X main.version=$(git describe --tags --always --dirty)" ./cmd/tubescout
var version = "dev"

func main() {
	// A missing .env is fine; the file is just one more way to supply
	// TUBESCOUT_API_KEY.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// getAPIURL returns the API base URL (overridable for testing).
func getAPIURL() string {
	if url := os.Getenv("TUBESCOUT_API_URL"); url != "" {
		return url
	}
	return "https://www.googleapis.com"
}

// resolveVersion picks the reported version: an ldflags-injected value wins;
// otherwise the module version recorded by `go install`; otherwise "dev".
func resolveVersion(ldflagsVersion string, info *debug.BuildInfo) string {
	if ldflagsVersion != "dev" {
		return ldflagsVersion
	}
	if info != nil && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

func buildInfo() *debug.BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return info
}

// newRootCmd creates the root command for the tubescout CLI.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tubescout",
		Short: "Find small YouTube channels with outsized videos",
		Long: "Tubescout searches YouTube for your keywords, enriches the matching videos\n" +
			"and their channels, and ranks what it finds into a trending view (views per\n" +
			"day inside a recent window) and a general view (raw views), keeping only\n" +
			"videos from channels under a subscriber ceiling.",
		Version: resolveVersion(version, buildInfo()),
	}

	rootCmd.SetVersionTemplate("tubescout version {{.Version}}\n")

	rootCmd.PersistentFlags().String("api-key", "", "YouTube Data API key (or set TUBESCOUT_API_KEY)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(newFindCmd())
	rootCmd.AddCommand(newCategoriesCmd())

	return rootCmd
}

// findOptions holds the find command's flag values. Only flags the user
// actually set override the profile and environment, so the zero values
// here never clobber anything.
type findOptions struct {
	keywords       string
	region         string
	publishedAfter string
	maxPerKeyword  int

	minViews    int64
	minDuration float64
	maxSubs     int64

	trendingMaxSubs     int64
	trendingMinDuration float64
	trendingMinViews    int64
	trendingWindow      int

	trendingOnly bool
	category     string
	rollup       bool
	top          int
	outputDir    string
	profilePath  string
	openTop      bool
}

// newFindCmd creates the find subcommand, the main pipeline run.
func newFindCmd() *cobra.Command {
	opts := &findOptions{}

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Search keywords and rank small-channel prospects",
		Long: "Find runs the whole pipeline: keyword search, video and channel enrichment,\n" +
			"filtering, and ranking into the trending and general views.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildRunConfig(cmd, opts)
			if err != nil {
				return err
			}

			// Configuration problems are usage errors; anything past
			// this point is not.
			cmd.SilenceUsage = true

			verbose, _ := cmd.Flags().GetBool("verbose")
			logger := newLogger(cmd.ErrOrStderr(), verbose)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client := youtube.NewClient(cfg.APIKey,
				youtube.WithBaseURL(getAPIURL()),
				youtube.WithLogger(logger),
			)
			finder := prospect.NewFinder(client, prospect.WithLogger(logger))

			result, err := finder.Run(ctx, cfg)
			if err != nil {
				var emptyErr *prospect.EmptyStageError
				if errors.As(err, &emptyErr) {
					fmt.Fprintln(cmd.OutOrStdout(), emptyErr.Notice())
					return nil
				}
				return runError(err)
			}

			renderResult(cmd.OutOrStdout(), cfg, result, opts.top)

			if cfg.OutputDir != "" {
				if err := exportResult(cmd.OutOrStdout(), cfg, result); err != nil {
					return err
				}
			}

			if opts.openTop {
				openTopResult(logger, result)
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.keywords, "keywords", "k", "", "Comma-separated search keywords")
	flags.StringVarP(&opts.region, "region", "r", config.DefaultRegion, "Region code for search and categories")
	flags.StringVar(&opts.publishedAfter, "published-after", "", "Only videos published after this date, YYYY-MM-DD or RFC3339 (default: one year ago)")
	flags.IntVar(&opts.maxPerKeyword, "max-per-keyword", config.DefaultMaxPerKeyword, "Search results to collect per keyword")
	flags.Int64Var(&opts.minViews, "min-views", config.DefaultGeneralMinViews, "Minimum views for the general view")
	flags.Float64Var(&opts.minDuration, "min-duration", 0, "Minimum duration in minutes for the general view")
	flags.Int64Var(&opts.maxSubs, "max-subs", config.DefaultGeneralMaxSubscribers, "Subscriber ceiling for the general view")
	flags.Int64Var(&opts.trendingMaxSubs, "trending-max-subs", config.DefaultTrendingMaxSubscribers, "Subscriber ceiling for the trending view")
	flags.Float64Var(&opts.trendingMinDuration, "trending-min-duration", config.DefaultTrendingMinDurationMinutes, "Minimum duration in minutes for the trending view")
	flags.Int64Var(&opts.trendingMinViews, "trending-min-views", config.DefaultTrendingMinViews, "Minimum views for the trending view")
	flags.IntVar(&opts.trendingWindow, "trending-window", config.DefaultTrendingWindowDays, "Trending window in days")
	flags.BoolVar(&opts.trendingOnly, "trending-only", false, "Skip the general view")
	flags.StringVar(&opts.category, "category", "", "Only videos in this category (by title, e.g. \"Music\")")
	flags.BoolVar(&opts.rollup, "rollup", true, "Summarize results per channel")
	flags.IntVar(&opts.top, "top", 20, "Rows to display per table (exports are never capped)")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "Directory for CSV exports (no export when unset)")
	flags.StringVar(&opts.profilePath, "profile", "", "YAML run profile")
	flags.BoolVar(&opts.openTop, "open", false, "Open the top result in the browser")

	return cmd
}

// buildRunConfig assembles the run configuration in precedence order:
// defaults, then environment, then profile, then explicit flags.
func buildRunConfig(cmd *cobra.Command, opts *findOptions) (config.Config, error) {
	cfg := config.Default(time.Now())

	if key := os.Getenv("TUBESCOUT_API_KEY"); key != "" {
		cfg.APIKey = key
	}

	if opts.profilePath != "" {
		profile, err := config.LoadProfile(opts.profilePath)
		if err != nil {
			return config.Config{}, err
		}
		if err := profile.Apply(&cfg); err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.APIKey, _ = flags.GetString("api-key")
	}
	if flags.Changed("keywords") {
		cfg.Keywords = config.ParseKeywords(opts.keywords)
	}
	if flags.Changed("region") {
		cfg.Region = opts.region
	}
	if flags.Changed("published-after") {
		publishedAfter, err := config.ParsePublishedAfter(opts.publishedAfter)
		if err != nil {
			return config.Config{}, err
		}
		cfg.PublishedAfter = publishedAfter
	}
	if flags.Changed("max-per-keyword") {
		cfg.MaxPerKeyword = opts.maxPerKeyword
	}
	if flags.Changed("min-views") {
		cfg.General.MinViews = opts.minViews
	}
	if flags.Changed("min-duration") {
		cfg.General.MinDurationMinutes = opts.minDuration
	}
	if flags.Changed("max-subs") {
		cfg.General.MaxSubscribers = opts.maxSubs
	}
	if flags.Changed("trending-max-subs") {
		cfg.Trending.MaxSubscribers = opts.trendingMaxSubs
	}
	if flags.Changed("trending-min-duration") {
		cfg.Trending.MinDurationMinutes = opts.trendingMinDuration
	}
	if flags.Changed("trending-min-views") {
		cfg.Trending.MinViews = opts.trendingMinViews
	}
	if flags.Changed("trending-window") {
		cfg.Trending.WindowDays = opts.trendingWindow
	}
	if flags.Changed("trending-only") {
		cfg.TrendingOnly = opts.trendingOnly
	}
	if flags.Changed("category") {
		cfg.Category = opts.category
	}
	if flags.Changed("rollup") {
		cfg.Rollup = opts.rollup
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// newLogger builds the run logger: human-readable, on stderr so tables and
// CSVs own stdout. LOG_LEVEL sets the level; --verbose forces debug.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil && parsed != zerolog.NoLevel {
			level = parsed
		}
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().
		Timestamp().
		Str("service", "tubescout").
		Logger()
}

// renderResult prints the enabled tables and the run summary.
func renderResult(out io.Writer, cfg config.Config, result *prospect.Result, top int) {
	formatter := display.NewTerminalFormatter()

	sections := []string{formatter.FormatTrending(result.Trending, top)}
	if !cfg.TrendingOnly {
		sections = append(sections, formatter.FormatGeneral(result.General, top))
	}
	if cfg.Rollup {
		sections = append(sections, formatter.FormatChannels(result.Channels, top))
	}
	sections = append(sections, formatter.FormatSummary(result.Stats))

	fmt.Fprint(out, strings.Join(sections, "\n"))
}

// exportResult writes one CSV per non-empty enabled view.
func exportResult(out io.Writer, cfg config.Config, result *prospect.Result) error {
	at := time.Now().UTC()

	if len(result.Trending) > 0 {
		path, err := export.WriteTrending(cfg.OutputDir, result.Trending, at)
		if err != nil {
			return fmt.Errorf("failed to export trending view: %w", err)
		}
		fmt.Fprintf(out, "Saved %s\n", path)
	}
	if !cfg.TrendingOnly && len(result.General) > 0 {
		path, err := export.WriteGeneral(cfg.OutputDir, result.General, at)
		if err != nil {
			return fmt.Errorf("failed to export general view: %w", err)
		}
		fmt.Fprintf(out, "Saved %s\n", path)
	}
	if cfg.Rollup && len(result.Channels) > 0 {
		path, err := export.WriteChannels(cfg.OutputDir, result.Channels, at)
		if err != nil {
			return fmt.Errorf("failed to export channel rollup: %w", err)
		}
		fmt.Fprintf(out, "Saved %s\n", path)
	}

	return nil
}

// openTopResult opens the best-ranked video in the browser: the top
// trending row, falling back to the top general row. Failure to launch is
// a warning, never a run failure.
func openTopResult(logger zerolog.Logger, result *prospect.Result) {
	url := ""
	switch {
	case len(result.Trending) > 0:
		url = result.Trending[0].VideoURL
	case len(result.General) > 0:
		url = result.General[0].VideoURL
	}
	if url == "" {
		logger.Warn().Msg("no result to open in the browser")
		return
	}
	if err := browser.Open(url); err != nil {
		logger.Warn().Err(err).Str("url", url).Msg("could not open the browser")
	}
}

// runError rephrases a failed run for the user. The client already
// classified the failure; this is the only place kinds become words.
func runError(err error) error {
	var apiErr *youtube.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Kind {
	case youtube.KindQuota:
		return fmt.Errorf("YouTube API quota exhausted: the key's daily request budget is spent, retry after the quota resets: %w", err)
	case youtube.KindCredential:
		return fmt.Errorf("YouTube API rejected the key: check TUBESCOUT_API_KEY and the key's restrictions: %w", err)
	case youtube.KindBadRequest:
		return fmt.Errorf("YouTube API rejected the request: %w", err)
	default:
		return fmt.Errorf("YouTube API unreachable after retries: %w", err)
	}
}

// newCategoriesCmd creates the categories subcommand, which lists the
// assignable video categories for a region so --category values can be
// looked up.
func newCategoriesCmd() *cobra.Command {
	var region string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List assignable video categories for a region",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiKey, _ := cmd.Flags().GetString("api-key")
			if apiKey == "" {
				apiKey = os.Getenv("TUBESCOUT_API_KEY")
			}
			if apiKey == "" {
				return fmt.Errorf("API key is required: pass --api-key or set TUBESCOUT_API_KEY")
			}

			region = strings.ToUpper(strings.TrimSpace(region))
			if !config.IsSupportedRegion(region) {
				return fmt.Errorf("unsupported region %q: supported regions are %s",
					region, strings.Join(config.Regions, ", "))
			}

			cmd.SilenceUsage = true

			verbose, _ := cmd.Flags().GetBool("verbose")
			logger := newLogger(cmd.ErrOrStderr(), verbose)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client := youtube.NewClient(apiKey,
				youtube.WithBaseURL(getAPIURL()),
				youtube.WithLogger(logger),
			)
			categories, err := client.Categories(ctx, region)
			if err != nil {
				return runError(err)
			}

			ids := make([]string, 0, len(categories))
			for id := range categories {
				ids = append(ids, id)
			}
			sort.Slice(ids, func(i, j int) bool {
				a, errA := strconv.Atoi(ids[i])
				b, errB := strconv.Atoi(ids[j])
				if errA != nil || errB != nil {
					return ids[i] < ids[j]
				}
				return a < b
			})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Video categories for %s:\n", region)
			for _, id := range ids {
				fmt.Fprintf(out, "%4s  %s\n", id, categories[id])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&region, "region", "r", config.DefaultRegion, "Region code for the category taxonomy")

	return cmd
}
