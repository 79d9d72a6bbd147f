package extract

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const pageURL = "https://example.jp/senkyo"

func mustParse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := ParseDocument(html)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	return doc
}

func TestRegistryFindAdapter(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		source string
		want   string
	}{
		{"elections", "elections"},
		{"results", "results"},
		{"officials", "officials"},
		{"", "generic"},
		{"unknown-template", "generic"},
	}

	for _, tt := range tests {
		if got := r.FindAdapter(tt.source).Name(); got != tt.want {
			t.Errorf("FindAdapter(%q) = %s, want %s", tt.source, got, tt.want)
		}
	}
}

func TestDateInText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"投票日は2021年7月4日です", "2021年7月4日"},
		{"令和3年7月4日執行", "令和3年7月4日"},
		{"2021/07/04 開票", "2021/07/04"},
		{"日程未定", ""},
	}

	for _, tt := range tests {
		if got := dateInText(tt.in); got != tt.want {
			t.Errorf("dateInText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResultsAdapter(t *testing.T) {
	doc := mustParse(t, `<html><head><title>選挙結果 2021年7月4日</title></head><body>
<table>
  <tr><th>氏名</th><th>党派</th><th>得票数</th></tr>
  <tr><td>山田太郎</td><td>自民</td><td>12345</td></tr>
  <tr><td>鈴木花子</td><td>無所属</td><td>9876</td></tr>
</table>
</body></html>`)

	records := NewResultsAdapter().Extract(doc, pageURL)
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Name != "山田太郎" || records[0].Affiliation != "自民" {
		t.Errorf("Unexpected first record: %+v", records[0])
	}
	if records[0].Date != "2021年7月4日" {
		t.Errorf("Expected page-level date on the record, got %q", records[0].Date)
	}
	if records[0].Source != "results" || records[0].SourceURL != pageURL {
		t.Errorf("Unexpected provenance: %+v", records[0])
	}
	if records[0].ScrapedAt.IsZero() {
		t.Error("Expected ScrapedAt to be set")
	}
}

func TestResultsAdapterFirstColumnFallback(t *testing.T) {
	doc := mustParse(t, `<table>
  <tr><td>佐藤一郎</td><td>8000票</td></tr>
  <tr><td>田中二郎</td><td>7000票</td></tr>
</table>`)

	// No th header: the first row is consumed as the header, the rest use
	// column 0 as the name.
	records := NewResultsAdapter().Extract(doc, pageURL)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Name != "田中二郎" {
		t.Errorf("Expected first-column name, got %q", records[0].Name)
	}
}

func TestElectionsAdapterTable(t *testing.T) {
	doc := mustParse(t, `<html><body><h1>千葉県選挙管理委員会</h1>
<table>
  <tr><th>選挙名</th><th>候補者</th><th>投票日</th></tr>
  <tr><td>知事選</td><td>山田太郎</td><td>令和3年3月21日</td></tr>
</table>
</body></html>`)

	records := NewElectionsAdapter().Extract(doc, pageURL)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Name != "山田太郎" {
		t.Errorf("Unexpected name: %q", records[0].Name)
	}
	if records[0].Date != "令和3年3月21日" {
		t.Errorf("Unexpected date: %q", records[0].Date)
	}
	if records[0].Jurisdiction != "知事選" {
		t.Errorf("Unexpected jurisdiction: %q", records[0].Jurisdiction)
	}
}

func TestElectionsAdapterListFallback(t *testing.T) {
	doc := mustParse(t, `<html><body><h1>千葉県の選挙</h1>
<ul>
  <li>ホーム</li>
  <li>千葉県知事選挙 山田太郎 2021年3月21日</li>
</ul>
</body></html>`)

	records := NewElectionsAdapter().Extract(doc, pageURL)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d: %+v", len(records), records)
	}
	if records[0].Date != "2021年3月21日" {
		t.Errorf("Unexpected date: %q", records[0].Date)
	}
	if records[0].Jurisdiction != "千葉県" {
		t.Errorf("Expected jurisdiction from heading, got %q", records[0].Jurisdiction)
	}
}

func TestOfficialsAdapterRoster(t *testing.T) {
	doc := mustParse(t, `<html><body><h1>大阪府議会</h1>
<table>
  <tr><th>氏名</th><th>会派</th><th>選挙区</th></tr>
  <tr><td>山田太郎</td><td>自民</td><td>大阪市北区</td></tr>
  <tr><td>鈴木花子</td><td>公明</td><td></td></tr>
</table>
</body></html>`)

	records := NewOfficialsAdapter().Extract(doc, pageURL)
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Jurisdiction != "大阪市北区" {
		t.Errorf("Unexpected jurisdiction: %q", records[0].Jurisdiction)
	}
	if records[1].Jurisdiction != "大阪府" {
		t.Errorf("Expected page jurisdiction fallback, got %q", records[1].Jurisdiction)
	}
}

func TestOfficialsAdapterProfilePage(t *testing.T) {
	doc := mustParse(t, `<html><head><title>山田太郎 | 市長の部屋</title></head>
<body><h1>山田太郎</h1><p>昭和40年生まれ。</p></body></html>`)

	records := NewOfficialsAdapter().Extract(doc, pageURL)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Name != "山田太郎" {
		t.Errorf("Unexpected name: %q", records[0].Name)
	}
}

func TestOfficialsAdapterProfileTitleFallback(t *testing.T) {
	doc := mustParse(t, `<html><head><title>鈴木花子｜議員紹介</title></head><body><p>経歴</p></body></html>`)

	records := NewOfficialsAdapter().Extract(doc, pageURL)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Name != "鈴木花子" {
		t.Errorf("Expected site-name tail stripped, got %q", records[0].Name)
	}
}

func TestGenericAdapterRequiresNameColumn(t *testing.T) {
	doc := mustParse(t, `<body>
<table>
  <tr><th>項目</th><th>値</th></tr>
  <tr><td>人口</td><td>10000</td></tr>
</table>
<table>
  <tr><th>氏名</th><th>所属</th></tr>
  <tr><td>山田太郎</td><td>自民</td></tr>
</table>
</body>`)

	records := NewGenericAdapter().Extract(doc, pageURL)
	if len(records) != 1 {
		t.Fatalf("Expected only the name-column table extracted, got %d", len(records))
	}
	if records[0].Name != "山田太郎" || records[0].Affiliation != "自民" {
		t.Errorf("Unexpected record: %+v", records[0])
	}
}

func TestAdaptersTolerateEmptyPages(t *testing.T) {
	doc := mustParse(t, "<html><body></body></html>")

	adapters := []Adapter{
		NewElectionsAdapter(), NewResultsAdapter(), NewGenericAdapter(),
	}
	for _, a := range adapters {
		if got := a.Extract(doc, pageURL); len(got) != 0 {
			t.Errorf("%s: expected no records from empty page, got %d", a.Name(), len(got))
		}
	}
}
