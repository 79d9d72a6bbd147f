package clean

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// eraBase maps era names to the Gregorian year of that era's year 1.
// Records older than Meiji do not occur in election data.
var eraBase = map[string]int{
	"明治": 1868,
	"大正": 1912,
	"昭和": 1926,
	"平成": 1989,
	"令和": 2019,
}

var (
	eraDateRe      = regexp.MustCompile(`(明治|大正|昭和|平成|令和)(元|\d{1,2})年(\d{1,2})月(\d{1,2})日`)
	japaneseDateRe = regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`)
	westernDateRe  = regexp.MustCompile(`(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})`)
)

// CanonicalDate extracts a date from loosely formatted Japanese or Western
// text and returns it as YYYY-MM-DD. Supported forms, tried in order:
// era notation (令和3年7月4日, 元年 for year 1), YYYY年MM月DD日, and
// YYYY-MM-DD / YYYY/MM/DD / YYYY.MM.DD. Returns ok=false when no supported
// form is present or the extracted values are not a real calendar date.
func CanonicalDate(text string) (string, bool) {
	if m := eraDateRe.FindStringSubmatch(text); m != nil {
		eraYear := 1
		if m[2] != "元" {
			eraYear, _ = strconv.Atoi(m[2])
		}
		year := eraBase[m[1]] + eraYear - 1
		month, _ := strconv.Atoi(m[3])
		day, _ := strconv.Atoi(m[4])
		return formatDate(year, month, day)
	}

	for _, re := range []*regexp.Regexp{japaneseDateRe, westernDateRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			year, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			day, _ := strconv.Atoi(m[3])
			return formatDate(year, month, day)
		}
	}

	return "", false
}

// formatDate validates the components against the real calendar. time.Date
// normalizes out-of-range values (month 13 becomes January), so a round trip
// that changes anything means the input was not a valid date.
func formatDate(year, month, day int) (string, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}
