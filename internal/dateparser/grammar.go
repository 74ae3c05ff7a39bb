// Package dateparser extracts Japanese date and time expressions from text.
//
// # Overview
//
// The extractor matches free text against a layered regular-expression
// grammar covering western and Japanese calendar forms: era-prefixed years
// (明治/大正/昭和/平成/令和 and their M/T/S/H/R abbreviations), kanji
// month/day/time forms, delimiter-separated numeric dates, Excel serial
// dates, and spans joined by range connectors. Text is normalized first
// (full-width digits and punctuation folded, era names shortened, English
// month names replaced) so the grammar itself only deals with one shape of
// each token.
//
// Era arithmetic uses fixed base years (令和→2018, 平成→1988, 昭和→1925,
// 大正→1911, 明治→1867); the year of an era boundary is attributed to the
// newer era regardless of the month, which is precise enough for year-level
// extraction and deliberately ignores boundary dates.
//
// The grammar needs in-pattern backreferences (a numeric date must reuse
// the same delimiter between all its parts) and reuses group names across
// alternatives, so it runs on the regexp2 engine rather than the stdlib
// regexp package.
package dateparser

import (
	"regexp"

	"github.com/dlclark/regexp2"
)

// Grammar fragments, innermost first. Group names carry a suffix naming the
// enclosing composite pattern so each capture can be traced back to the
// alternative that produced it.
const (
	urlPattern = `https?://[\w/:%#$&?()~.=+\-]+`

	excelDate = `[34]\d{4}(?:\.\d*)?`

	era         = `[MTSHR明大昭平令]`
	yearSpecial = `(?:本|今|再?来|一?昨)年度?`
	year4Digits = `(?:1[356789]|2[01])\d{2}`
	year2Digits = `(?:\d{2}| ?\d)`
	yearEra     = era + `(?: \d|\d{1,2})`
	yearEra1st  = era + `元`
	yearNum     = `(?:` + year4Digits + `|` + yearEra + `)`
	yearJP      = `(?:` + yearNum + `年度?|` + yearSpecial + `)`
	year        = `(?:` + yearNum + `|` + yearJP + `)`

	monthSpecial = `(?:今|再?来|先)月`
	month2Digits = `(?: [1-9]|0[1-9]|1[0-2])`
	month1Digit  = `[1-9]`
	monthNum     = `(?:` + month2Digits + `|` + month1Digit + `)`
	monthJP      = `(?:` + monthNum + `月|` + monthSpecial + `)`
	month        = `(?:` + monthNum + `|` + monthJP + `)`

	youbiChar = `[日月火水木金土]`
	youbiOne  = youbiChar + `曜日?`
	youbiPar  = `(?:\(` + youbiChar + `\))`
	youbi     = `(?:(?:毎週|(?:毎月)?第[1-5一二三四五](?:[,\.・〜]?第?[1-5一二三四五])*週?)?(?:` +
		youbiChar + `・)*` + youbiOne + `|` + youbiPar + `)`

	daySpecial = `(?:(?:初|上|中|下)旬(?:頃|ころ|ごろ)?|(?:本|今|明(?:明?後)?|(?:一咋?)?昨|翌|毎|祝休?|休|末|同)日|年末年始|お盆)`
	day2Digits = `(?: [1-9]|0[1-9]|[12]\d|3[01])`
	day1Digit  = `[1-9]`
	dayNum     = `(?:` + day2Digits + `|` + day1Digit + `)`
	dayJP      = `(?:` + dayNum + `日|` + daySpecial + `|` + youbi + `)`
	day        = `(?:` + dayNum + `|` + dayJP + `)`

	timeSpecial = `(?<hour_time_special>正午(?:過ぎ|すぎ)?(?:頃|ころ|ごろ)?|午前中?|昼間帯|午後|夕方(?:頃|ころ|ごろ)?|夜間?|未明)`

	hour2Digits = `(?:[01]\d|2[0-4])`
	hour1Digit  = `\d`
	hourNum     = `(?:` + hour2Digits + `|` + hour1Digit + `)`
	hourJP      = `(?:(?:午前|午後)?1?\d|2[0-4])時`

	minuteNum = `(?:[0-5]\d|60)`
	minuteJP  = `(?:(?:[0-5]?\d|60)分|半)`

	secondNum = `(?:[0-5]\d|60)`
	secondJP  = `(?:[0-5]?\d|60)秒`

	timeNum = `T?(?<hour_time_num>` + hourNum + `):(?<minute_time_num>` + minuteNum +
		`)(?::(?<second_time_num>` + secondNum + `))?(?:\+\d[2]:\d[2])?`

	hmsJP = `(?<hour_hms_jp>` + hourJP + `)((?<minute_hms_jp>` + minuteJP +
		`)(?<second_hms_jp>` + secondJP + `)?)?(?:過ぎ|すぎ)?(?:頃|ころ|ごろ)?`

	timeJP   = `(?:` + hmsJP + `|` + timeSpecial + `)`
	timeExpr = `(?:` + timeNum + `|` + timeJP + `)`

	ym6Digits = `(?<year_ym_6digits>` + year4Digits + `)(?<month_ym_6digits>` + month2Digits + `)`
	ymDelim   = `(?<year_ym_delimiter>` + year + `)[-/\.](?<month_ym_delimiter>` + month + `)`
	ymJP      = `(?<year_ym_jp>` + yearJP + `(?:頃|ころ|ごろ)?)(?<month_ym_jp>` + monthJP + `)`
	ym        = `(?:` + ym6Digits + `|` + ymDelim + `|` + ymJP + `)`

	mdDelim = `(?<month_md_delimiter>` + month + `)[-/\.](?<day_md_delimiter>` + day + `)`
	mdJP    = `(?<month_md_jp>` + monthJP + `)(?<day_md_jp>` + dayJP + `)` + youbiPar + `?`
	md      = `(?:` + mdDelim + `|` + mdJP + `(?:頃|ころ|ごろ)?(?:[ の]?` + timeJP + `)?)`

	mdyDelim = `(?<month_mdy_delimiter>` + month + `)(?<delimiter_mdy>[-/\.])(?<day_mdy_delimiter>` + day +
		`)\k<delimiter_mdy>(?<year_mdy_delimiter>` + year + `)`
	mdyJP = `(?<month_mdy_jp>` + monthJP + `)(?<day_mdy_jp>` + dayJP + `)(?<year_mdy_jp>` + yearJP + `)`
	mdy   = `(?:` + mdyDelim + `|` + mdyJP + `)`

	ymD = `(?<year_ym_d>` + yearEra1st + `)(?<month_ym_d>` + monthNum + `)\.(?<day_ym_d>` + dayNum + `)`

	yMD = `(?<year_y_md>` + yearNum + `)-(?<month_y_md>` + monthJP + `|` + month2Digits +
		`)(?<day_y_md>` + daySpecial + `)`

	ymd8Digits = `(?<year_ymd_8digits>` + year4Digits + `)(?<month_ymd_8digits>` + month2Digits +
		`)(?<day_ymd_8digits>` + day2Digits + `)`
	ymdDelim = `(?<year_ymd_delimiter>` + year + `|` + year2Digits +
		`)(?<delimiter_ymd>[-/\.,])(?<month_ymd_delimiter>` + month +
		`)\k<delimiter_ymd>(?<day_ymd_delimiter>` + day + `)`
	ymdJP = `(?<year_ymd_jp>` + yearJP + `)(?<month_ymd_jp>` + monthJP + `)(?<day_ymd_jp>` + dayJP +
		`)` + youbiPar + `?(?:頃|ころ|ごろ)?`
	ymd = `(?:` + ymd8Digits + `(?<hour_2digits>` + hour2Digits + `)?|` +
		ymdDelim + `(?: ?` + timeNum + `)?|` +
		ymdJP + `(?:[ の]?` + timeJP + `)?)`

	datePattern = `(` + ymd + `|` + yMD + `|` + ymD + `|` + mdy + `|` + md + `|` + ym +
		`|(?<day_jp>` + dayJP + `)` + youbiPar + `?(?:` + timeJP + `)?` +
		`|(?<month_jp>` + monthJP + `)` +
		`|(?<year_jp>` + yearJP + `)` +
		`|(?<year_era>` + yearEra + `)` +
		`|(?<year_4digits>` + year4Digits + `)(?![号番])` +
		`|` + timeExpr + `)`

	dateSpanPattern = `(` + datePattern + `(?:(?:〜|～|~|から|及び|および|と|、|・)` + datePattern + `)+)`
)

var (
	reURL       = regexp.MustCompile(urlPattern)
	reExcelDate = regexp2.MustCompile(`\A(?:`+excelDate+`)\z`, 0)
	reDate      = regexp2.MustCompile(datePattern, 0)
	reDateSpan  = regexp2.MustCompile(dateSpanPattern, 0)
)
