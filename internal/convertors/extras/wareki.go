package extras

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
)

// Japanese eras since the Meiji restoration. Base is the gregorian year of
// the year before era year 1, so gregorian = base + era year. Start bounds
// to_wareki; boundary dates within a start year are not distinguished.
var eras = []struct {
	name  string
	base  int
	start int
}{
	{"令和", 2018, 2019},
	{"平成", 1988, 1989},
	{"昭和", 1925, 1926},
	{"大正", 1911, 1912},
	{"明治", 1867, 1868},
}

// reWarekiYear captures a two-character era name with a year, the trailing
// 年 optional. Non-era text that happens to match is skipped by the era
// lookup.
var reWarekiYear = regexp.MustCompile(`(..(元|\d+)年?)`)

// reSeirekiYear captures a 4-digit gregorian year with an optional 西暦
// prefix and optional trailing 年.
var reSeirekiYear = regexp.MustCompile(`((西暦)?([12]\d{3})年?)`)

var toSeirekiMeta = convertor.Meta{
	Key:         "to_seireki",
	Name:        "和暦西暦変換",
	Description: "和暦表記の年を西暦に変換します。",
	Params:      convertor.IOParams(),
}

// ToSeireki rewrites era-notation years inside free text to gregorian
// years. Text that does not parse as an era year is left alone.
type ToSeireki struct {
	convertor.InputOutput
}

// NewToSeireki creates a to_seireki convertor.
func NewToSeireki() convertor.Convertor {
	c := &ToSeireki{}
	c.Value = c.rewrite
	return c
}

// Meta implements convertor.Convertor.
func (c *ToSeireki) Meta() *convertor.Meta { return &toSeirekiMeta }

func (c *ToSeireki) rewrite(record []string, ctx *convertor.Context) (string, error) {
	result := record[c.InputColIdx]
	for _, m := range reWarekiYear.FindAllStringSubmatch(result, -1) {
		year, ok := eraToGregorian(m[1])
		if !ok {
			continue
		}
		result = strings.Replace(result, m[1], strconv.Itoa(year)+"年", 1)
	}
	return result, nil
}

// eraToGregorian parses strings like 平成3年 or 令和元年.
func eraToGregorian(s string) (int, bool) {
	for _, era := range eras {
		rest, found := strings.CutPrefix(s, era.name)
		if !found {
			continue
		}
		rest = strings.TrimSuffix(rest, "年")
		if rest == "元" {
			return era.base + 1, true
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 {
			return 0, false
		}
		return era.base + n, true
	}
	return 0, false
}

var toWarekiMeta = convertor.Meta{
	Key:         "to_wareki",
	Name:        "西暦和暦変換",
	Description: "西暦表記の年を和暦に変換します。",
	Params:      convertor.IOParams(),
}

// ToWareki rewrites gregorian years inside free text to era notation.
// A trailing 年 is kept; a 西暦 prefix is dropped. Years before the Meiji
// era are left alone.
type ToWareki struct {
	convertor.InputOutput
}

// NewToWareki creates a to_wareki convertor.
func NewToWareki() convertor.Convertor {
	c := &ToWareki{}
	c.Value = c.rewrite
	return c
}

// Meta implements convertor.Convertor.
func (c *ToWareki) Meta() *convertor.Meta { return &toWarekiMeta }

func (c *ToWareki) rewrite(record []string, ctx *convertor.Context) (string, error) {
	result := record[c.InputColIdx]
	for _, m := range reSeirekiYear.FindAllStringSubmatch(result, -1) {
		year, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		wareki, ok := gregorianToEra(year)
		if !ok {
			continue
		}
		if strings.HasSuffix(m[1], "年") {
			wareki += "年"
		}
		result = strings.Replace(result, m[1], wareki, 1)
	}
	return result, nil
}

// gregorianToEra renders a year in the era current at January 1st.
func gregorianToEra(year int) (string, bool) {
	for _, era := range eras {
		if year >= era.start {
			return era.name + strconv.Itoa(year-era.base), true
		}
	}
	return "", false
}
