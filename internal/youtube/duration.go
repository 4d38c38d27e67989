package youtube

import (
	"regexp"
	"strconv"
)

// iso8601Duration matches the duration strings YouTube emits, e.g.
// "PT4M13S", "PT1H2M", "P1DT2H", "P2W". Date components below days
// (months, years) never appear in video durations.
var iso8601Duration = regexp.MustCompile(
	`^P(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseDuration converts an ISO-8601 duration to total minutes.
// Malformed or empty input yields 0.0; enrichment must never fail on a
// single bad duration.
func ParseDuration(iso string) float64 {
	m := iso8601Duration.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}

	weeks, _ := strconv.ParseFloat(zeroIfEmpty(m[1]), 64)
	days, _ := strconv.ParseFloat(zeroIfEmpty(m[2]), 64)
	hours, _ := strconv.ParseFloat(zeroIfEmpty(m[3]), 64)
	minutes, _ := strconv.ParseFloat(zeroIfEmpty(m[4]), 64)
	seconds, _ := strconv.ParseFloat(zeroIfEmpty(m[5]), 64)

	return weeks*7*24*60 + days*24*60 + hours*60 + minutes + seconds/60
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
