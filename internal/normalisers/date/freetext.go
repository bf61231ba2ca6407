package date

import (
	"regexp"
	"strconv"
	"time"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
)

// inputFormat pairs a layout name with the fixed-width shape a value must
// have before its fields are resolved.
type inputFormat struct {
	layout string
	shape  *regexp.Regexp
}

// inputFormats are the accepted free-text formats in priority order.
// Month names are case-sensitive English abbreviations.
var inputFormats = []inputFormat{
	{
		layout: "02 Jan 2006 15:04:05",
		shape:  regexp.MustCompile(`^(?P<day>\d{2}) (?P<month>[A-Z][a-z]{2}) (?P<year>\d{4}) (?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})$`),
	},
	{
		layout: "02 Jan 2006 15:04",
		shape:  regexp.MustCompile(`^(?P<day>\d{2}) (?P<month>[A-Z][a-z]{2}) (?P<year>\d{4}) (?P<hour>\d{2}):(?P<minute>\d{2})$`),
	},
	{
		layout: "2006-01-02 15:04:05",
		shape:  regexp.MustCompile(`^(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2}) (?P<hour>\d{2}):(?P<minute>\d{2}):(?P<second>\d{2})$`),
	},
	{
		layout: "2006-01-02 15:04",
		shape:  regexp.MustCompile(`^(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2}) (?P<hour>\d{2}):(?P<minute>\d{2})$`),
	},
}

// InputLayouts names the accepted free-text layouts in priority order.
var InputLayouts = func() []string {
	layouts := make([]string, len(inputFormats))
	for i, f := range inputFormats {
		layouts[i] = f.layout
	}
	return layouts
}()

var monthAbbrevs = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

// FormatFreeText resolves s with the first matching format of InputLayouts
// and reformats it with OutputLayout. Seconds default to zero. A day of
// month up to 31 is clamped to the last day of the month, so 2023-02-30
// resolves to February 28th.
func FormatFreeText(s string) string {
	if s == "" {
		return domain.InvalidDate
	}
	for _, f := range inputFormats {
		t, ok := f.resolve(s)
		if !ok {
			continue
		}
		return t.Format(OutputLayout)
	}
	return domain.InvalidDate
}

func (f inputFormat) resolve(s string) (time.Time, bool) {
	m := f.shape.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	fields := make(map[string]string, len(m))
	for i, name := range f.shape.SubexpNames() {
		if name != "" {
			fields[name] = m[i]
		}
	}

	month, ok := monthAbbrevs[fields["month"]]
	if !ok {
		n, err := strconv.Atoi(fields["month"])
		if err != nil || n < 1 || n > 12 {
			return time.Time{}, false
		}
		month = time.Month(n)
	}

	year := atoi(fields["year"])
	day := atoi(fields["day"])
	hour := atoi(fields["hour"])
	minute := atoi(fields["minute"])
	second := atoi(fields["second"])

	switch {
	case year < 1, day < 1, day > 31:
		return time.Time{}, false
	case hour > 23, minute > 59, second > 59:
		return time.Time{}, false
	}

	if last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day(); day > last {
		day = last
	}
	return time.Date(year, month, day, hour, minute, second, 0, time.UTC), true
}

// atoi reads a digit-only field; a missing field is zero.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
