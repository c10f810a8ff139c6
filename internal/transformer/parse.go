package transformer

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Representable year range for a nanosecond timestamp. Parsed dates outside
// it are treated as missing.
const (
	minYear = 1677
	maxYear = 2262
)

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2",
	"2006/1/2 15:04:05",
	"2006/1/2",
}

var monthFirstLayouts = []string{
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1-2-2006",
	"1.2.2006",
	"1/2/06",
}

var dayFirstLayouts = []string{
	"2/1/2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
}

var textualLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
	"Mon, 02 Jan 2006 15:04:05 MST",
	"Mon Jan 2 15:04:05 2006",
	"20060102",
}

// DateParser converts text to a date using a fixed, ordered list of layouts.
// The first layout that parses wins.
type DateParser struct {
	layouts  []string
	dayFirst bool
}

// NewDateParser returns a parser that tries layout first (when non-empty),
// then the built-in layouts. dayFirst switches slash-, dash- and
// dot-separated dates from month-first to day-first.
func NewDateParser(layout string, dayFirst bool) *DateParser {
	var ls []string
	if layout != "" {
		ls = append(ls, layout)
	}
	ls = append(ls, isoLayouts...)
	if dayFirst {
		ls = append(ls, dayFirstLayouts...)
	} else {
		ls = append(ls, monthFirstLayouts...)
	}
	ls = append(ls, textualLayouts...)
	return &DateParser{layouts: ls, dayFirst: dayFirst}
}

// Parse returns the date for s, or false when no layout matches or the year
// is out of range. It never fails otherwise.
func (p *DateParser) Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if p.dayFirst {
		if t, ok := parseDottedDayFirst(s); ok {
			return inRange(t)
		}
	}
	for _, l := range p.layouts {
		if t, err := time.Parse(l, s); err == nil {
			return inRange(t)
		}
	}
	return time.Time{}, false
}

func inRange(t time.Time) (time.Time, bool) {
	if y := t.Year(); y < minYear || y > maxYear {
		return time.Time{}, false
	}
	return t, true
}

// parseDottedDayFirst is a zero-allocation parser for "02.01.2006"
// (DD.MM.YYYY). It returns false on any invalid input.
func parseDottedDayFirst(s string) (time.Time, bool) {
	if len(s) != 10 || s[2] != '.' || s[5] != '.' {
		return time.Time{}, false
	}
	d1, d0 := s[0]-'0', s[1]-'0'
	m1, m0 := s[3]-'0', s[4]-'0'
	y3, y2, y1, y0 := s[6]-'0', s[7]-'0', s[8]-'0', s[9]-'0'
	if d1 > 9 || d0 > 9 || m1 > 9 || m0 > 9 || y3 > 9 || y2 > 9 || y1 > 9 || y0 > 9 {
		return time.Time{}, false
	}
	day := int(d1)*10 + int(d0)
	mon := int(m1)*10 + int(m0)
	year := int(y3)*1000 + int(y2)*100 + int(y1)*10 + int(y0)
	if mon < 1 || mon > 12 || day < 1 || day > daysIn(time.Month(mon), year) {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(mon), day, 0, 0, 0, 0, time.UTC), true
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseNumber parses s as a decimal float. Surrounding whitespace is ignored;
// NaN, hexadecimal literals and digit separators are reported as missing.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
