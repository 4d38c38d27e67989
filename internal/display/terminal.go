// Package display renders ranked prospect tables and the run summary for
// the terminal.
package display

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gauthierbraillon/tubescout/internal/prospect"
)

const (
	titleWidth   = 46
	channelWidth = 24
)

// TerminalFormatter formats prospect results for terminal display. Counts
// are printed with thousands separators so six-figure view counts stay
// readable.
type TerminalFormatter struct {
	printer *message.Printer
}

// NewTerminalFormatter creates a new terminal formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{printer: message.NewPrinter(language.English)}
}

// FormatTrending renders the velocity-ranked view. A limit > 0 caps the
// rows shown; exports are never capped, so a note points there.
func (f *TerminalFormatter) FormatTrending(records []prospect.Record, limit int) string {
	if len(records) == 0 {
		return "No videos qualified for the trending view.\n"
	}

	rows := make([][]string, 0, len(records))
	for i, r := range capped(records, limit) {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			f.TruncateText(r.Title, titleWidth),
			f.printer.Sprintf("%d", r.ViewCount),
			f.printer.Sprintf("%.0f", r.ViewsPerDay),
			formatLength(r.DurationMinutes),
			f.FormatTimestamp(r.PublishedAt),
			f.TruncateText(r.ChannelTitle, channelWidth),
			f.formatSubscribers(r.Subscribers),
		})
	}

	var b strings.Builder
	b.WriteString("Trending prospects (ranked by views per day)\n")
	writeTable(&b, []string{"#", "TITLE", "VIEWS", "VIEWS/DAY", "LENGTH", "PUBLISHED", "CHANNEL", "SUBS"}, rows)
	f.writeOverflowNote(&b, len(records), limit)
	return b.String()
}

// FormatGeneral renders the view-ranked result set.
func (f *TerminalFormatter) FormatGeneral(records []prospect.Record, limit int) string {
	if len(records) == 0 {
		return "No videos qualified for the general view.\n"
	}

	rows := make([][]string, 0, len(records))
	for i, r := range capped(records, limit) {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			f.TruncateText(r.Title, titleWidth),
			f.printer.Sprintf("%d", r.ViewCount),
			formatLength(r.DurationMinutes),
			f.FormatTimestamp(r.PublishedAt),
			f.TruncateText(r.ChannelTitle, channelWidth),
			f.formatSubscribers(r.Subscribers),
		})
	}

	var b strings.Builder
	b.WriteString("General prospects (ranked by views)\n")
	writeTable(&b, []string{"#", "TITLE", "VIEWS", "LENGTH", "PUBLISHED", "CHANNEL", "SUBS"}, rows)
	f.writeOverflowNote(&b, len(records), limit)
	return b.String()
}

// FormatChannels renders the per-channel rollup.
func (f *TerminalFormatter) FormatChannels(summaries []prospect.ChannelSummary, limit int) string {
	if len(summaries) == 0 {
		return "No channels to summarize.\n"
	}

	rows := make([][]string, 0, len(summaries))
	for i, s := range capped(summaries, limit) {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			f.TruncateText(s.ChannelTitle, channelWidth),
			f.formatSubscribers(s.Subscribers),
			f.printer.Sprintf("%d", s.TopVideoViews),
			fmt.Sprintf("%d", s.VideoCount),
			s.Country,
		})
	}

	var b strings.Builder
	b.WriteString("Channels (ranked by qualifying videos)\n")
	writeTable(&b, []string{"#", "CHANNEL", "SUBS", "TOP VIDEO", "VIDEOS", "COUNTRY"}, rows)
	f.writeOverflowNote(&b, len(summaries), limit)
	return b.String()
}

// FormatSummary renders what each pipeline stage kept.
func (f *TerminalFormatter) FormatSummary(stats prospect.Stats) string {
	p := f.printer
	lines := []string{
		"Run summary",
		fmt.Sprintf("  keywords searched      %d", stats.Keywords),
		p.Sprintf("  candidate videos       %d (%d unique)", stats.CandidateIDs, stats.UniqueVideos),
		p.Sprintf("  enriched               %d", stats.Enriched),
		p.Sprintf("  above thresholds       %d", stats.AboveThresholds),
		p.Sprintf("  channels fetched       %d", stats.ChannelsFetched),
		p.Sprintf("  within subscriber cap  %d", stats.WithinSubscriberCap),
		p.Sprintf("  trending / general     %d / %d", stats.Trending, stats.General),
		p.Sprintf("  channels ranked        %d", stats.RankedChannels),
	}
	return strings.Join(lines, "\n") + "\n"
}

// FormatTimestamp formats a timestamp as relative time.
func (f *TerminalFormatter) FormatTimestamp(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return pluralize(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return pluralize(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return pluralize(int(diff.Hours()/24), "day")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// pluralize returns "N unit ago" or "N units ago" based on count.
func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// TruncateText truncates text to maxLen, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return text[:maxLen-3] + "..."
}

func (f *TerminalFormatter) formatSubscribers(subscribers int64) string {
	if subscribers < 0 {
		return "hidden"
	}
	return f.printer.Sprintf("%d", subscribers)
}

func (f *TerminalFormatter) writeOverflowNote(b *strings.Builder, total, limit int) {
	if limit > 0 && total > limit {
		b.WriteString(f.printer.Sprintf("(showing the top %d of %d; exports carry every row)\n", limit, total))
	}
}

// formatLength renders a duration in minutes the way a viewer would say it.
func formatLength(minutes float64) string {
	if minutes < 1 {
		return fmt.Sprintf("%.0fs", minutes*60)
	}
	return fmt.Sprintf("%.0f min", minutes)
}

// capped returns at most limit items; limit <= 0 means everything.
func capped[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// writeTable renders rows as space-aligned columns under a header row.
func writeTable(b *strings.Builder, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow(b, headers, widths)
	for _, row := range rows {
		writeRow(b, row, widths)
	}
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		// The last column runs ragged; padding it would only add
		// trailing spaces.
		if i == len(cells)-1 {
			b.WriteString(cell)
			continue
		}
		fmt.Fprintf(b, "%-*s", widths[i], cell)
	}
	b.WriteString("\n")
}
