package date

import (
	"strconv"
	"time"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
)

// OutputLayout is the canonical timestamp layout (MM/DD/YYYY HH:MM:SS).
const OutputLayout = "01/02/2006 15:04:05"

// FormatEpoch converts a count of seconds since the Unix epoch into a
// timestamp in the local time zone.
func FormatEpoch(s string) string {
	return formatEpochIn(s, time.Local)
}

func formatEpochIn(s string, loc *time.Location) string {
	if s == "" {
		return domain.InvalidDate
	}
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return domain.InvalidDate
	}
	return time.Unix(secs, 0).In(loc).Format(OutputLayout)
}
