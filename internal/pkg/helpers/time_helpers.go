package helpers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrInvalidDate is returned when a date matches none of the accepted layouts
var ErrInvalidDate = errors.New("invalid date")

// DateLayouts are the accepted input layouts for calendar dates, tried in order.
// ISO first, then day-first with slash or dash separators.
var DateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
}

// ParseDate parses a calendar date using DateLayouts. A blank input returns
// (nil, nil) so optional dates can be cleared.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	// Accept full timestamps from clients that serialise dates as ISO-8601.
	if len(value) > 10 && value[4] == '-' && (value[10] == 'T' || value[10] == ' ') {
		value = value[:10]
	}

	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q, expected YYYY-MM-DD or DD/MM/YYYY", ErrInvalidDate, value)
}

// FormatDate renders a date in ISO layout, or "" for nil
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}
