package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var dateInTextRe = regexp.MustCompile(`\d{4}年\d{1,2}月\d{1,2}日|(明治|大正|昭和|平成|令和)(元|\d{1,2})年\d{1,2}月\d{1,2}日|\d{4}[-/]\d{1,2}[-/]\d{1,2}`)

// cellText returns the whitespace-normalized text of a selection.
func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// dateInText returns the first date-looking substring, Japanese era
// notation included, or "". The cleaner canonicalizes it later.
func dateInText(text string) string {
	return dateInTextRe.FindString(text)
}

// Column header keyword groups for table-shaped sources.
var (
	nameHeaders         = []string{"氏名", "名前", "候補者", "当選人"}
	partyHeaders        = []string{"党派", "政党", "会派", "所属"}
	jurisdictionHeaders = []string{"選挙区", "都道府県", "市区町村", "地域", "自治体", "選挙名"}
	dateHeaders         = []string{"投票日", "告示日", "期日", "日付", "年月日", "選挙期日"}
)

// columnMap locates well-known columns in a table's first row. Missing
// columns map to -1.
type columnMap struct {
	name, party, jurisdiction, date int
}

// mapColumns reads the header row (th cells, or the td cells of the first
// row when the table has no th).
func mapColumns(table *goquery.Selection) columnMap {
	cols := columnMap{name: -1, party: -1, jurisdiction: -1, date: -1}

	header := table.Find("tr").First().Find("th")
	if header.Length() == 0 {
		header = table.Find("tr").First().Find("td")
	}

	header.Each(func(i int, cell *goquery.Selection) {
		text := cellText(cell)
		switch {
		case cols.name == -1 && containsAny(text, nameHeaders):
			cols.name = i
		case cols.party == -1 && containsAny(text, partyHeaders):
			cols.party = i
		case cols.jurisdiction == -1 && containsAny(text, jurisdictionHeaders):
			cols.jurisdiction = i
		case cols.date == -1 && containsAny(text, dateHeaders):
			cols.date = i
		}
	})

	return cols
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// cellAt returns the normalized text of the i-th cell, or "" when the row
// is shorter than that.
func cellAt(cells *goquery.Selection, i int) string {
	if i < 0 || i >= cells.Length() {
		return ""
	}
	return cellText(cells.Eq(i))
}
