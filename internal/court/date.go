package court

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SiteDateLayout is the date format the reservation site expects.
const SiteDateLayout = "01/02/2006"

var relativeDayPattern = regexp.MustCompile(`^[+-]\d+$`)

// alternate layouts accepted on input and normalized to SiteDateLayout
var inputDateLayouts = []string{
	"2006-01-02",
	"01-02-2006",
	"2006/01/02",
}

// ParseDateInput resolves a user-supplied date expression to MM/DD/YYYY.
// Supported forms: empty/"today"/"now", "tomorrow", "yesterday", relative
// offsets like "+3" or "-2", MM/DD/YYYY, and a few common alternate
// layouts (YYYY-MM-DD, MM-DD-YYYY, YYYY/MM/DD).
func ParseDateInput(input string) (string, error) {
	return parseDateInputAt(input, time.Now())
}

func parseDateInputAt(input string, now time.Time) (string, error) {
	trimmed := strings.TrimSpace(input)
	lower := strings.ToLower(trimmed)

	switch {
	case trimmed == "" || lower == "today" || lower == "now":
		return now.Format(SiteDateLayout), nil
	case lower == "tomorrow":
		return now.AddDate(0, 0, 1).Format(SiteDateLayout), nil
	case lower == "yesterday":
		return now.AddDate(0, 0, -1).Format(SiteDateLayout), nil
	}

	if relativeDayPattern.MatchString(trimmed) {
		offset, err := strconv.Atoi(trimmed)
		if err != nil {
			return "", fmt.Errorf("invalid relative date %q: %w", input, err)
		}
		return now.AddDate(0, 0, offset).Format(SiteDateLayout), nil
	}

	if t, err := time.Parse(SiteDateLayout, trimmed); err == nil {
		return t.Format(SiteDateLayout), nil
	}

	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(SiteDateLayout), nil
		}
	}

	return "", fmt.Errorf("invalid date %q: supported formats are MM/DD/YYYY, today, tomorrow, yesterday, +N, -N", input)
}
