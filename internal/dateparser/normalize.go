package dateparser

import (
	"strconv"
	"strings"
)

// replacement is one text normalization rule.
type replacement struct {
	from, to string
}

// convertTable folds the input into the shape the grammar expects.
// Rules are applied in order: "R." must collapse to "R" before era years are
// parsed, and 元年 becomes 1年 only after era names are shortened.
var convertTable = []replacement{
	{"０", "0"},
	{"１", "1"},
	{"２", "2"},
	{"３", "3"},
	{"４", "4"},
	{"５", "5"},
	{"６", "6"},
	{"７", "7"},
	{"８", "8"},
	{"９", "9"},

	{"．", "."},
	{"（", "("},
	{"）", ")"},

	{"Ｒ", "R"},
	{"Ｈ", "H"},
	{"Ｓ", "S"},
	{"Ｔ", "T"},
	{"Ｍ", "M"},
	{"R.", "R"},
	{"H.", "H"},
	{"S.", "S"},
	{"T.", "T"},
	{"M.", "M"},
	{"令和", "R"},
	{"平成", "H"},
	{"昭和", "S"},
	{"大正", "T"},
	{"明治", "M"},

	{"元年", "1年"},
	{"元.", "1."},

	{"January", "1"},
	{"February", "2"},
	{"March", "3"},
	{"April", "4"},
	{"May", "5"},
	{"June", "6"},
	{"July", "7"},
	{"August", "8"},
	{"September", "9"},
	{"October", "10"},
	{"November", "11"},
	{"December", "12"},
	{"Jan", "1"},
	{"Feb", "2"},
	{"Mar", "3"},
	{"Apr", "4"},
	{"Jun", "6"},
	{"Jul", "7"},
	{"Aug", "8"},
	{"Sep", "9"},
	{"Oct", "10"},
	{"Nov", "11"},
	{"Dec", "12"},

	{"-年", "年"},
	{"-月", "月"},
	{"-日", "日"},
}

// eraBase maps an era marker to the western year preceding year 1 of that era.
// Normalization has already shortened 令和 etc. to their Latin letters, but
// the single-kanji markers still occur in raw era years.
var eraBase = []struct {
	marker string
	base   int
}{
	{"令", 2018},
	{"平", 1988},
	{"昭", 1925},
	{"大", 1911},
	{"明", 1867},

	{"R", 2018},
	{"H", 1988},
	{"S", 1925},
	{"T", 1911},
	{"M", 1867},
}

// normalizeText applies the replacement table in order.
func normalizeText(s string) string {
	for _, r := range convertTable {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	return s
}

// parseInt parses a decimal integer, also accepting surrounding spaces.
func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// convertYear resolves a year expression to a western year.
// Era years add the era base to the in-era year, with 元 treated as year 1.
// Relative forms such as 本年 or 来年度 have no absolute value and yield nil.
func convertYear(y string) *int {
	for _, e := range eraBase {
		if !strings.Contains(y, e.marker) {
			continue
		}
		rest := strings.ReplaceAll(y, e.marker, "")
		rest = strings.ReplaceAll(rest, "年度", "")
		rest = strings.ReplaceAll(rest, "年", "")
		rest = strings.ReplaceAll(rest, "元", "1")
		n, ok := parseInt(rest)
		if !ok {
			return nil
		}
		n += e.base
		return &n
	}
	rest := strings.ReplaceAll(y, "年度", "")
	rest = strings.ReplaceAll(rest, "年", "")
	if n, ok := parseInt(rest); ok {
		return &n
	}
	return nil
}

// convertMonth resolves a month expression, nil for relative forms.
func convertMonth(m string) *int {
	if n, ok := parseInt(strings.ReplaceAll(m, "月", "")); ok {
		return &n
	}
	return nil
}

// convertDay resolves a day expression, nil for special forms.
func convertDay(d string) *int {
	if n, ok := parseInt(strings.ReplaceAll(d, "日", "")); ok {
		return &n
	}
	return nil
}

// convertHour resolves an hour expression; 午後 shifts to the 24-hour clock.
// Vague forms such as 未明 or a bare 午後 yield nil.
func convertHour(h string) *int {
	if strings.Contains(h, "午後") {
		rest := strings.ReplaceAll(h, "午後", "")
		rest = strings.ReplaceAll(rest, "時", "")
		if n, ok := parseInt(rest); ok {
			n += 12
			return &n
		}
	}
	rest := strings.ReplaceAll(h, "午前", "")
	rest = strings.ReplaceAll(rest, "時", "")
	if n, ok := parseInt(rest); ok {
		return &n
	}
	return nil
}

// convertMinute resolves a minute expression; 半 means 30.
func convertMinute(m string) *int {
	if m == "半" {
		n := 30
		return &n
	}
	if n, ok := parseInt(strings.ReplaceAll(m, "分", "")); ok {
		return &n
	}
	return nil
}

// convertSecond resolves a second expression.
func convertSecond(s string) *int {
	if n, ok := parseInt(strings.ReplaceAll(s, "秒", "")); ok {
		return &n
	}
	return nil
}
