package clean

import "strings"

// partyNames expands the abbreviated party labels that election tables use
// to the official party name. Checked as substrings: 自民党 and 自民 both map.
var partyNames = []struct {
	short, full string
}{
	{"自民", "自由民主党"},
	{"立憲", "立憲民主党"},
	{"公明", "公明党"},
	{"共産", "共産党"},
	{"維新", "日本維新の会"},
	{"社民", "社会民主党"},
	{"れいわ", "れいわ新選組"},
	{"国民", "国民民主党"},
}

// affiliationPlaceholders are labels that mean "independent" or "unknown"
// rather than a party. They normalize to the empty string.
var affiliationPlaceholders = map[string]bool{
	"無所属": true,
	"不明":  true,
	"なし":  true,
	"-":   true,
	"－":   true,
	"―":   true,
}

// NormalizeAffiliation standardizes a party/faction label. Placeholders
// collapse to "", abbreviations expand to the full party name, anything else
// passes through with whitespace normalized.
func NormalizeAffiliation(s string) string {
	s = NormalizeText(s)
	if s == "" || affiliationPlaceholders[s] {
		return ""
	}
	for _, p := range partyNames {
		if strings.Contains(s, p.short) && !strings.Contains(s, p.full) {
			return p.full
		}
	}
	return s
}
