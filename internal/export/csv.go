// Package export writes prospect views to timestamped CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gauthierbraillon/tubescout/internal/prospect"
)

// column pairs a CSV header with the extractor for one row's cell.
type column struct {
	header string
	value  func(row int) string
}

// WriteTrending writes the velocity-ranked view to
// <dir>/tubescout_trending_<timestamp>.csv and returns the path.
func WriteTrending(dir string, records []prospect.Record, at time.Time) (string, error) {
	cols := []column{
		{"title", func(i int) string { return records[i].Title }},
		{"views", func(i int) string { return strconv.FormatInt(records[i].ViewCount, 10) }},
		{"views_per_day", func(i int) string { return formatFloat(records[i].ViewsPerDay) }},
		{"duration_minutes", func(i int) string { return formatFloat(records[i].DurationMinutes) }},
		{"published_at", func(i int) string { return records[i].PublishedAt.UTC().Format(time.RFC3339) }},
		{"channel", func(i int) string { return records[i].ChannelTitle }},
		{"subscribers", func(i int) string { return strconv.FormatInt(records[i].Subscribers, 10) }},
		{"video_url", func(i int) string { return records[i].VideoURL }},
		{"channel_url", func(i int) string { return records[i].ChannelURL }},
		{"thumbnail_url", func(i int) string { return records[i].Thumbnail }},
	}

	path := filepath.Join(dir, fileName("trending", at))
	return path, writeFile(path, cols, len(records))
}

// WriteGeneral writes the view-ranked view to
// <dir>/tubescout_general_<timestamp>.csv and returns the path.
func WriteGeneral(dir string, records []prospect.Record, at time.Time) (string, error) {
	cols := []column{
		{"title", func(i int) string { return records[i].Title }},
		{"views", func(i int) string { return strconv.FormatInt(records[i].ViewCount, 10) }},
		{"duration_minutes", func(i int) string { return formatFloat(records[i].DurationMinutes) }},
		{"published_at", func(i int) string { return records[i].PublishedAt.UTC().Format(time.RFC3339) }},
		{"channel", func(i int) string { return records[i].ChannelTitle }},
		{"subscribers", func(i int) string { return strconv.FormatInt(records[i].Subscribers, 10) }},
		{"video_url", func(i int) string { return records[i].VideoURL }},
		{"channel_url", func(i int) string { return records[i].ChannelURL }},
	}

	path := filepath.Join(dir, fileName("general", at))
	return path, writeFile(path, cols, len(records))
}

// WriteChannels writes the per-channel rollup to
// <dir>/tubescout_channels_<timestamp>.csv and returns the path.
func WriteChannels(dir string, summaries []prospect.ChannelSummary, at time.Time) (string, error) {
	cols := []column{
		{"channel_id", func(i int) string { return summaries[i].ChannelID }},
		{"channel", func(i int) string { return summaries[i].ChannelTitle }},
		{"subscribers", func(i int) string { return strconv.FormatInt(summaries[i].Subscribers, 10) }},
		{"country", func(i int) string { return summaries[i].Country }},
		{"top_video_views", func(i int) string { return strconv.FormatInt(summaries[i].TopVideoViews, 10) }},
		{"qualifying_videos", func(i int) string { return strconv.Itoa(summaries[i].VideoCount) }},
		{"channel_url", func(i int) string { return summaries[i].ChannelURL }},
	}

	path := filepath.Join(dir, fileName("channels", at))
	return path, writeFile(path, cols, len(summaries))
}

func fileName(view string, at time.Time) string {
	return fmt.Sprintf("tubescout_%s_%s.csv", view, at.UTC().Format("20060102_150405"))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// writeFile renders the columns for rows records and writes them to path.
// A column that is empty on every row is dropped entirely rather than
// emitted as a blank column.
func writeFile(path string, cols []column, rows int) error {
	cols = populatedColumns(cols, rows)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.header
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	record := make([]string, len(cols))
	for row := 0; row < rows; row++ {
		for i, col := range cols {
			record[i] = col.value(row)
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return f.Close()
}

// populatedColumns keeps the columns that carry a value on at least one
// row. With zero rows nothing is proven empty, so every column stays.
func populatedColumns(cols []column, rows int) []column {
	if rows == 0 {
		return cols
	}
	kept := make([]column, 0, len(cols))
	for _, col := range cols {
		for row := 0; row < rows; row++ {
			if col.value(row) != "" {
				kept = append(kept, col)
				break
			}
		}
	}
	return kept
}
