package dateparser

import (
	"fmt"
	"strings"
	"time"
)

// Directive groups used to decide whether a candidate can satisfy a format:
// a candidate missing its year cannot render a format that prints the year.
var (
	YearDirectives   = []string{"%y", "%Y"}
	MonthDirectives  = []string{"%b", "%B", "%m"}
	DayDirectives    = []string{"%a", "%A", "%w", "%d"}
	HourDirectives   = []string{"%H", "%I", "%p"}
	MinuteDirectives = []string{"%M"}
	SecondDirectives = []string{"%S"}
)

// ContainsDirective reports whether the format uses any of the directives.
func ContainsDirective(format string, directives []string) bool {
	for _, d := range directives {
		if strings.Contains(format, d) {
			return true
		}
	}
	return false
}

var weekdayAbbrev = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
var weekdayFull = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
var monthAbbrev = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
var monthFull = [...]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}

// Strftime renders a time using strftime-style directives. Task files carry
// formats in that notation, so they are interpreted directly rather than
// translated to a reference layout.
//
// Supported directives: %Y %y %m %d %H %I %M %S %p %a %A %w %b %B %j %%.
// Unknown directives are emitted verbatim.
func Strftime(t time.Time, format string) string {
	var b strings.Builder
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' || i+1 >= len(runes) {
			b.WriteRune(runes[i])
			continue
		}
		i++
		switch runes[i] {
		case 'Y':
			fmt.Fprintf(&b, "%04d", t.Year())
		case 'y':
			fmt.Fprintf(&b, "%02d", t.Year()%100)
		case 'm':
			fmt.Fprintf(&b, "%02d", int(t.Month()))
		case 'd':
			fmt.Fprintf(&b, "%02d", t.Day())
		case 'H':
			fmt.Fprintf(&b, "%02d", t.Hour())
		case 'I':
			h := t.Hour() % 12
			if h == 0 {
				h = 12
			}
			fmt.Fprintf(&b, "%02d", h)
		case 'M':
			fmt.Fprintf(&b, "%02d", t.Minute())
		case 'S':
			fmt.Fprintf(&b, "%02d", t.Second())
		case 'p':
			if t.Hour() < 12 {
				b.WriteString("AM")
			} else {
				b.WriteString("PM")
			}
		case 'a':
			b.WriteString(weekdayAbbrev[int(t.Weekday())])
		case 'A':
			b.WriteString(weekdayFull[int(t.Weekday())])
		case 'w':
			fmt.Fprintf(&b, "%d", int(t.Weekday()))
		case 'b':
			b.WriteString(monthAbbrev[int(t.Month())-1])
		case 'B':
			b.WriteString(monthFull[int(t.Month())-1])
		case 'j':
			fmt.Fprintf(&b, "%03d", t.YearDay())
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			b.WriteRune(runes[i])
		}
	}
	return b.String()
}

// Format renders a candidate with a strftime format, filling missing
// date fields with 1 and missing time fields with 0. It fails when the format
// prints a field the candidate did not resolve.
func (c Candidate) Format(format string) (string, error) {
	year, month, day := 1, 1, 1
	hour, minute, second := 0, 0, 0

	switch {
	case c.Year != nil:
		year = *c.Year
	case ContainsDirective(format, YearDirectives):
		return "", fmt.Errorf("format needs a year")
	}
	switch {
	case c.Month != nil:
		month = *c.Month
	case ContainsDirective(format, MonthDirectives):
		return "", fmt.Errorf("format needs a month")
	}
	switch {
	case c.Day != nil:
		day = *c.Day
	case ContainsDirective(format, DayDirectives):
		return "", fmt.Errorf("format needs a day")
	}
	switch {
	case c.Hour != nil:
		hour = *c.Hour
	case ContainsDirective(format, HourDirectives):
		return "", fmt.Errorf("format needs an hour")
	}
	switch {
	case c.Minute != nil:
		minute = *c.Minute
	case ContainsDirective(format, MinuteDirectives):
		return "", fmt.Errorf("format needs a minute")
	}
	switch {
	case c.Second != nil:
		second = *c.Second
	case ContainsDirective(format, SecondDirectives):
		return "", fmt.Errorf("format needs a second")
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", fmt.Errorf("date out of range")
	}
	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	if int(t.Month()) != month || t.Day() != day {
		return "", fmt.Errorf("date out of range")
	}
	return Strftime(t, format), nil
}

// FormatDate renders only the date part of a candidate, with time fields
// forced to zero.
func (c Candidate) FormatDate(format string) (string, error) {
	dateOnly := Candidate{Year: c.Year, Month: c.Month, Day: c.Day}
	zero := 0
	dateOnly.Hour, dateOnly.Minute, dateOnly.Second = &zero, &zero, &zero
	return dateOnly.Format(format)
}
