// Tolerant parsing of the date strings job boards actually render:
// relative Spanish ("hace 2 dias", "ayer"), relative English ("3 days ago"),
// ISO dates, a handful of absolute layouts, and month-name fragments with
// no year ("feb 04"). Unparseable input yields ok=false, never a panic.

package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	spanishRelativeRegex = regexp.MustCompile(`^hace\s+(\d+)\s+(horas?|dias?|semanas?)$`)
	englishRelativeRegex = regexp.MustCompile(`^(\d+)\s+(minutes?|hours?|days?|weeks?)\s+ago$`)
	monthDayRegex        = regexp.MustCompile(`^([a-zñ]+)\s+(\d{1,2})(?:,?\s*(\d{4}))?$`)
)

// absoluteLayouts are tried in order. 01/02 before 02/01 means an ambiguous
// "03/04/2024" reads as March 4th, same as the boards we track render it.
var absoluteLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// monthNumbers covers full and abbreviated month names in English and
// Spanish (diacritics already stripped by cleanup, so "día"/"miércoles"
// style accents never reach the lookup).
var monthNumbers = map[string]time.Month{
	"jan": time.January, "january": time.January, "ene": time.January, "enero": time.January,
	"feb": time.February, "february": time.February, "febrero": time.February,
	"mar": time.March, "march": time.March, "marzo": time.March,
	"apr": time.April, "april": time.April, "abr": time.April, "abril": time.April,
	"may": time.May, "mayo": time.May,
	"jun": time.June, "june": time.June, "junio": time.June,
	"jul": time.July, "july": time.July, "julio": time.July,
	"aug": time.August, "august": time.August, "ago": time.August, "agosto": time.August,
	"sep": time.September, "sept": time.September, "september": time.September, "septiembre": time.September,
	"oct": time.October, "october": time.October, "octubre": time.October,
	"nov": time.November, "november": time.November, "noviembre": time.November,
	"dec": time.December, "december": time.December, "dic": time.December, "diciembre": time.December,
}

// Parse normalizes a free-form posting date into an absolute timestamp.
// Returns ok=false when nothing in the cascade matches.
func Parse(raw string) (time.Time, bool) {
	return parseAt(raw, time.Now())
}

func parseAt(raw string, now time.Time) (time.Time, bool) {
	cleaned := cleanup(raw)
	if cleaned == "" {
		return time.Time{}, false
	}

	//exact Spanish tokens first
	switch cleaned {
	case "ayer":
		return now.Add(-24 * time.Hour), true
	case "hoy":
		return now, true
	}

	//"hace 2 dias", "hace 1 semana"
	if m := spanishRelativeRegex.FindStringSubmatch(cleaned); m != nil {
		amount, _ := strconv.Atoi(m[1])
		switch {
		case strings.HasPrefix(m[2], "hora"):
			return now.Add(-time.Duration(amount) * time.Hour), true
		case strings.HasPrefix(m[2], "dia"):
			return now.Add(-time.Duration(amount) * 24 * time.Hour), true
		case strings.HasPrefix(m[2], "semana"):
			return now.Add(-time.Duration(amount) * 7 * 24 * time.Hour), true
		}
	}

	//"2 days ago", "30 minutes ago"
	if m := englishRelativeRegex.FindStringSubmatch(cleaned); m != nil {
		amount, _ := strconv.Atoi(m[1])
		switch {
		case strings.HasPrefix(m[2], "minute"):
			return now.Add(-time.Duration(amount) * time.Minute), true
		case strings.HasPrefix(m[2], "hour"):
			return now.Add(-time.Duration(amount) * time.Hour), true
		case strings.HasPrefix(m[2], "day"):
			return now.Add(-time.Duration(amount) * 24 * time.Hour), true
		case strings.HasPrefix(m[2], "week"):
			return now.Add(-time.Duration(amount) * 7 * 24 * time.Hour), true
		}
	}

	//full ISO-8601 timestamps ("2024-01-28T10:30:00Z"); the layout's literal
	//T and Z need the uppercase form back after cleanup
	if t, err := time.Parse(time.RFC3339, strings.ToUpper(cleaned)); err == nil {
		return t, true
	}

	//absolute layouts, fixed order
	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}

	//"feb 04", "ene 29", "march 3, 2024" - year defaults to the current one
	if m := monthDayRegex.FindStringSubmatch(cleaned); m != nil {
		if month, ok := monthNumbers[m[1]]; ok {
			day, _ := strconv.Atoi(m[2])
			year := now.Year()
			if m[3] != "" {
				year, _ = strconv.Atoi(m[3])
			}
			return time.Date(year, month, day, 0, 0, 0, 0, time.Local), true
		}
	}

	return time.Time{}, false
}

// WithinDays reports whether t falls inside the last N days. Dates slightly
// in the future are allowed: relative parses land a hair past "now" on some
// clock reads.
func WithinDays(t time.Time, days int) bool {
	diff := time.Since(t)
	if diff > time.Duration(days)*24*time.Hour {
		return false
	}
	if diff < -24*time.Hour {
		return false
	}
	return true
}

// cleanup lowercases, trims, collapses whitespace and strips diacritics so
// "Hace  5  Horas" and "hace 5 horas" take the same path.
func cleanup(raw string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, _ := transform.String(t, raw)
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}
