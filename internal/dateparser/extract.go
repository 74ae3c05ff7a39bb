package dateparser

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/dlclark/regexp2"
)

// Kind classifies an extraction result.
type Kind string

// Extraction result kinds.
const (
	// KindExcelDate means the whole text was an Excel serial date.
	KindExcelDate Kind = "EXCEL_DATE"
	// KindSpan means the text contained a date range.
	KindSpan Kind = "SPAN"
	// KindDatetime means the text contained one or more dates.
	KindDatetime Kind = "DATETIME"
	// KindNotDatetime means no date expression was found.
	KindNotDatetime Kind = "NOT_DATETIME"
)

// Candidate is one extracted date or time. Fields the text did not pin down
// to a number are nil; a vague expression such as 未明 resolves no hour.
type Candidate struct {
	Year   *int
	Month  *int
	Day    *int
	Hour   *int
	Minute *int
	Second *int
}

// Result is the outcome of extracting dates from one text value.
type Result struct {
	// Kind classifies what was found.
	Kind Kind
	// Text is the matched expression, or the normalized input when nothing
	// matched.
	Text string
	// Candidates lists every date found, in text order.
	Candidates []Candidate
}

// excelEpoch is the day-zero of Excel serial dates (the 1900 date system
// with its leap-year quirk already absorbed).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// GetDatetime extracts date and time expressions from free text.
//
// The text is normalized, URLs are masked and whitespace is removed, then the
// value is classified: an Excel serial date, a date span, one or more plain
// dates, or no date at all.
func GetDatetime(s string) Result {
	datestr := normalizeText(strings.TrimSpace(s))
	text := strings.TrimSpace(reURL.ReplaceAllString(datestr, "<URL>"))
	text = stripSpace(text)

	if ok, _ := reExcelDate.MatchString(text); ok {
		serial, err := strconv.ParseFloat(text, 64)
		if err == nil {
			return Result{
				Kind:       KindExcelDate,
				Text:       text,
				Candidates: []Candidate{excelCandidate(serial)},
			}
		}
	}

	if m, _ := reDateSpan.FindStringMatch(text); m != nil {
		return Result{
			Kind:       KindSpan,
			Text:       m.String(),
			Candidates: allCandidates(text),
		}
	}

	if m, _ := reDate.FindStringMatch(text); m != nil {
		return Result{
			Kind:       KindDatetime,
			Text:       m.String(),
			Candidates: allCandidates(text),
		}
	}

	return Result{Kind: KindNotDatetime, Text: text}
}

// stripSpace removes all whitespace, including full-width spaces.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// excelCandidate converts an Excel serial date into a candidate.
func excelCandidate(serial float64) Candidate {
	secs := serial * 86400
	t := excelEpoch.Add(time.Duration(math.Round(secs)) * time.Second)
	y, mo, d := t.Year(), int(t.Month()), t.Day()
	h, mi, se := t.Hour(), t.Minute(), t.Second()
	return Candidate{Year: &y, Month: &mo, Day: &d, Hour: &h, Minute: &mi, Second: &se}
}

// allCandidates collects every date match in the text.
func allCandidates(text string) []Candidate {
	var out []Candidate
	m, _ := reDate.FindStringMatch(text)
	for m != nil {
		out = append(out, candidateFromMatch(m))
		m, _ = reDate.FindNextMatch(m)
	}
	return out
}

// group returns the capture for a named group, or "" when it did not match.
func group(m *regexp2.Match, name string) string {
	g := m.GroupByName(name)
	if g == nil || len(g.Captures) == 0 {
		return ""
	}
	return g.String()
}

// groupJoin concatenates the captures of several named groups. The grammar
// guarantees at most one of the listed groups matches per date, so the join
// recovers that single value.
func groupJoin(m *regexp2.Match, names ...string) string {
	var b strings.Builder
	for _, name := range names {
		b.WriteString(group(m, name))
	}
	return b.String()
}

// candidateFromMatch resolves the year through second fields of one match.
func candidateFromMatch(m *regexp2.Match) Candidate {
	year := groupJoin(m,
		"year_ymd_8digits", "year_ymd_delimiter", "year_ymd_jp",
		"year_y_md", "year_ym_d",
		"year_mdy_delimiter", "year_mdy_jp",
		"year_ym_6digits", "year_ym_delimiter", "year_ym_jp",
		"year_jp", "year_era", "year_4digits",
	)
	month := groupJoin(m,
		"month_ymd_8digits", "month_ymd_delimiter", "month_ymd_jp",
		"month_y_md", "month_ym_d",
		"month_mdy_delimiter", "month_mdy_jp",
		"month_ym_6digits", "month_ym_delimiter", "month_ym_jp",
		"month_md_delimiter", "month_md_jp",
		"month_jp",
	)
	day := groupJoin(m,
		"day_ymd_8digits", "day_ymd_delimiter", "day_ymd_jp",
		"day_y_md", "day_ym_d",
		"day_mdy_delimiter", "day_mdy_jp",
		"day_md_delimiter", "day_md_jp",
		"day_jp",
	)
	hour := groupJoin(m,
		"hour_time_num", "hour_hms_jp", "hour_time_special", "hour_2digits",
	)
	minute := groupJoin(m, "minute_time_num", "minute_hms_jp")
	second := groupJoin(m, "second_time_num", "second_hms_jp")

	return Candidate{
		Year:   convertYear(year),
		Month:  convertMonth(month),
		Day:    convertDay(day),
		Hour:   convertHour(hour),
		Minute: convertMinute(minute),
		Second: convertSecond(second),
	}
}
