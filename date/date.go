// Package date provides a day-granularity date and the permissive parsing
// needed for the "as of" dates printed on portfolio statements.
package date

import (
	"fmt"
	"regexp"
	"time"
)

// Format is the ISO-8601 representation used everywhere dates are written.
const Format = "2006-01-02"

// Date represents a date with no lower than day granularity.
// The zero value means "no date".
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

func (d Date) time() time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC)
}

func (d Date) Year() int         { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int          { return d.d }
func (d Date) IsZero() bool      { return d == Date{} }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(Format)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// layouts are tried in order. Statements mix ISO, European dotted and
// written-out conventions, frequently within the same document family.
var layouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2.1.2006",
	"02/01/2006",
	"2 January 2006",
	"January 2, 2006",
	"02 Jan 2006",
}

// Parse reads a date in any supported layout.
func Parse(s string) (Date, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return New(t.Year(), t.Month(), t.Day()), nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

// MustParse is Parse for tests and constants; it panics on failure.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

var scanRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{1,2}[./]\d{1,2}[./]\d{4}|\d{1,2} (?:January|February|March|April|May|June|July|August|September|October|November|December) \d{4}`)

// Scan finds the first parseable date inside free text, typically the
// statement's "as of" line. ok is false when no date is found.
func Scan(text string) (Date, bool) {
	for _, match := range scanRe.FindAllString(text, -1) {
		if d, err := Parse(match); err == nil {
			return d, true
		}
	}
	return Date{}, false
}
