package extract

import (
	"math"
	"strconv"
	"strings"
)

// ParseCount expands platform engagement-count shorthand. "1.2万" → 12000,
// "3千" → 3000, "500" → 500. Unparseable input yields 0; counts are never
// negative.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "万"):
		multiplier = 10000
		s = strings.TrimSuffix(s, "万")
	case strings.HasSuffix(s, "千"):
		multiplier = 1000
		s = strings.TrimSuffix(s, "千")
	case strings.HasSuffix(s, "w"), strings.HasSuffix(s, "W"):
		// Some platforms latinize 万 as "w".
		multiplier = 10000
		s = s[:len(s)-1]
	}

	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return 0
	}
	return int(math.Round(value * multiplier))
}

// ParseDurationSeconds parses video durations in "HH:MM:SS" or "MM:SS" form.
// Returns 0 for anything else.
func ParseDurationSeconds(s string) int {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}
