// Package rules provides the noise-filter rule set consumed by the cleaner.
// The built-in rules are a maintained list grown from noise actually observed
// in scraped election tables; a config-referenced YAML file can extend them
// without rebuilding.
package rules

import (
	"fmt"
	"os"

	"github.com/giinscan/giinscan/internal/model"
	"gopkg.in/yaml.v3"
)

// Rejection reasons used by the built-in rules.
const (
	ReasonTableHeader          = "table_header"
	ReasonMetadataLabel        = "metadata_label"
	ReasonLocationName         = "location_name"
	ReasonElectionLabel        = "election_label"
	ReasonOccupationLabel      = "occupation_label"
	ReasonBusinessEntitySuffix = "business_entity_suffix"
	ReasonOrganizationSuffix   = "organization_suffix"
	ReasonGenericPlaceholder   = "generic_placeholder"
	ReasonDateLike             = "date_like"
	ReasonTooManyDigits        = "too_many_digits"
	ReasonSymbolNoise          = "symbol_noise"
)

// substrings builds one substring rule per pattern, all against name.
func substrings(reason string, patterns ...string) []model.FilterRule {
	out := make([]model.FilterRule, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, model.FilterRule{Field: "name", Pattern: p, Kind: model.RuleKindSubstring, Reason: reason})
	}
	return out
}

// Default returns the built-in rule set, in evaluation order. Order matters
// only for which reason gets reported when several rules would match.
func Default() []model.FilterRule {
	var out []model.FilterRule

	// Column headers scraped as rows when a table has no thead.
	out = append(out, substrings(ReasonTableHeader,
		"氏名", "写真", "性別", "党派", "新旧", "年齢", "得票",
		"主な肩書", "肩書", "所属", "当落", "結果")...)

	// Page furniture and election metadata labels.
	out = append(out, substrings(ReasonMetadataLabel,
		"執行理由", "任期満了", "関連情報", "選挙情報",
		"投票日", "告示日", "投票率", "有権者", "開票",
		"ページ", "一覧", "速報", "詳細", "情報", "公報", "データ", "記事", "特集")...)

	// Administrative-area strings that show up in name columns.
	out = append(out, substrings(ReasonLocationName,
		"都道府県", "市区町村", "北海道", "青森県", "岩手県",
		"宮城県", "秋田県", "山形県", "福島県", "茨城県",
		"栃木県", "群馬県", "埼玉県", "千葉県", "東京都",
		"神奈川県", "新潟県", "富山県", "石川県", "福井県")...)

	// Election-type strings.
	out = append(out, substrings(ReasonElectionLabel,
		"選挙", "市長選", "知事選", "議員選", "町長選", "村長選")...)

	// Candidate-status and occupation labels that appear as standalone rows.
	out = append(out, substrings(ReasonOccupationLabel,
		"会社員", "無職", "元職", "前職", "新人", "現職",
		"会社役員", "団体職員", "会社取締役", "取締役",
		"公衆浴場業", "浴場業", "教室主宰", "音楽教室", "塾経営", "店主",
		"自営業", "農業", "漁業", "林業", "商店主",
		"会社経営", "商店経営", "飲食店", "不動産",
		"建設業", "製造業", "運送業", "販売業",
		"理容", "美容", "整骨", "接骨", "鍼灸",
		"税理士", "行政書士", "司法書士", "弁護士",
		"医師", "歯科医", "薬剤師", "看護師",
		"教員", "講師", "塾長", "校長", "園長",
		"僧侶", "住職", "宮司", "神主")...)

	// Corporate entities.
	out = append(out, substrings(ReasonBusinessEntitySuffix,
		"株式会社", "有限会社", "合同会社", "合名会社", "合資会社", "商事", "商店")...)

	// Organizations and title-only entries.
	out = append(out, substrings(ReasonOrganizationSuffix,
		"農協", "漁協", "商工会", "観光協会",
		"NPO", "法人", "協会", "組合", "連合会")...)

	// Role words with no person attached.
	out = append(out, substrings(ReasonGenericPlaceholder,
		"主宰", "経営", "経営者", "代表", "代表者", "理事", "会長", "副会長",
		"顧問", "相談役", "社長", "専務", "常務", "職員")...)

	// Date fragments and digit-heavy strings are never names.
	out = append(out,
		model.FilterRule{Field: "name", Pattern: `\d{4}年|\d+月|\d+日`, Kind: model.RuleKindRegex, Reason: ReasonDateLike},
		model.FilterRule{Field: "name", Pattern: `(\D*\d){4,}`, Kind: model.RuleKindRegex, Reason: ReasonTooManyDigits},
		model.FilterRule{Field: "name", Pattern: `【|】|…|・・|/`, Kind: model.RuleKindRegex, Reason: ReasonSymbolNoise},
	)

	return out
}

// ruleFile is the on-disk YAML shape.
type ruleFile struct {
	Rules []model.FilterRule `yaml:"rules"`
}

// LoadFile reads additional rules from a YAML file.
func LoadFile(path string) ([]model.FilterRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	for i, r := range f.Rules {
		if r.Pattern == "" {
			return nil, fmt.Errorf("rules file %s: rule %d has no pattern", path, i)
		}
		if r.Reason == "" {
			return nil, fmt.Errorf("rules file %s: rule %d has no reason", path, i)
		}
		if f.Rules[i].Kind == "" {
			f.Rules[i].Kind = model.RuleKindSubstring
		}
	}

	return f.Rules, nil
}

// ForConfig returns the effective rule set: built-ins first, then any rules
// from the configured file. File rules therefore only add reasons; they
// cannot shadow a built-in match.
func ForConfig(rulesFile string) ([]model.FilterRule, error) {
	out := Default()
	if rulesFile == "" {
		return out, nil
	}

	extra, err := LoadFile(rulesFile)
	if err != nil {
		return nil, err
	}
	return append(out, extra...), nil
}
