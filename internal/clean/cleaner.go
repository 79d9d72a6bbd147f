// Package clean turns raw scraped records into a deduplicated, noise-filtered
// set ready for export. It performs no I/O: rule loading and CSV writing are
// the callers' concern.
package clean

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/giinscan/giinscan/internal/model"
)

// dedupSep joins the dedup key components. A unit separator cannot appear in
// normalized field text, so keys never collide across field boundaries.
const dedupSep = "\x1f"

// Options control the structural checks applied before the filter rules.
type Options struct {
	MinNameLength   int  // In runes; names shorter than this are rejected
	MaxNameLength   int  // In runes; 0 disables the check
	RequireJapanese bool // Reject names without kanji or kana
}

// DefaultOptions matches the cleaner settings the scraped sources need.
func DefaultOptions() Options {
	return Options{MinNameLength: 2, MaxNameLength: 10, RequireJapanese: true}
}

// compiledRule is a FilterRule with its pattern ready to evaluate.
type compiledRule struct {
	field  string
	reason string
	substr string
	re     *regexp.Regexp // Set only for regex rules
}

func (r *compiledRule) matches(value string) bool {
	if r.re != nil {
		return r.re.MatchString(value)
	}
	return strings.Contains(value, r.substr)
}

// Cleaner applies normalization, validation, noise filtering and
// deduplication to batches of raw records. Safe to reuse across batches;
// the dedup seen-set is scoped to a single Clean call.
type Cleaner struct {
	opts  Options
	rules []compiledRule
}

// New compiles the rule set. It fails when a rule names an unknown field or
// carries an invalid regex, so misconfiguration surfaces before any fetching.
func New(opts Options, rules []model.FilterRule) (*Cleaner, error) {
	if opts.MinNameLength <= 0 {
		opts.MinNameLength = 2
	}

	compiled := make([]compiledRule, 0, len(rules))
	for i, rule := range rules {
		switch rule.Field {
		case "name", "affiliation", "jurisdiction":
		default:
			return nil, fmt.Errorf("rule %d (%s): unknown field %q", i, rule.Reason, rule.Field)
		}

		cr := compiledRule{field: rule.Field, reason: rule.Reason, substr: rule.Pattern}
		if rule.Kind == model.RuleKindRegex {
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %d (%s): compile pattern: %w", i, rule.Reason, err)
			}
			cr.re = re
		}
		compiled = append(compiled, cr)
	}

	return &Cleaner{opts: opts, rules: compiled}, nil
}

// Result is the disposition of one batch. Every input record lands in
// exactly one of the two slices, both in first-seen input order.
type Result struct {
	Clean    []model.CleanRecord
	Rejected []model.Rejection
}

// Clean processes the batch in input order. Duplicates are detected across
// the whole call; the earliest record with a given dedup key wins.
func (c *Cleaner) Clean(records []model.RawRecord) Result {
	res := Result{
		Clean:    []model.CleanRecord{},
		Rejected: []model.Rejection{},
	}
	seen := make(map[string]bool, len(records))

	for _, raw := range records {
		name := NormalizeName(raw.Name)
		jurisdiction := NormalizeText(raw.Jurisdiction)
		date := NormalizeText(raw.Date)
		affiliation := NormalizeAffiliation(raw.Affiliation)

		if reason, ok := c.validateName(name); !ok {
			res.Rejected = append(res.Rejected, model.Rejection{Record: raw, Reason: reason})
			continue
		}

		if reason, ok := c.applyRules(name, affiliation, jurisdiction); !ok {
			res.Rejected = append(res.Rejected, model.Rejection{Record: raw, Reason: reason})
			continue
		}

		var flags []string
		canonical, parsed := "", false
		if date != "" {
			canonical, parsed = CanonicalDate(date)
			if !parsed {
				flags = append(flags, model.FlagDateUnparsed)
			}
		}
		if jurisdiction == "" {
			flags = append(flags, model.FlagJurisdictionMissing)
		}
		if affiliation == "" {
			flags = append(flags, model.FlagAffiliationMissing)
		}

		dateKey := canonical
		if !parsed {
			dateKey = date
		}
		key := strings.ToLower(name) + dedupSep + jurisdiction + dedupSep + dateKey
		if seen[key] {
			res.Rejected = append(res.Rejected, model.Rejection{Record: raw, Reason: model.ReasonDuplicate})
			continue
		}
		seen[key] = true

		res.Clean = append(res.Clean, model.CleanRecord{
			Name:          name,
			Jurisdiction:  jurisdiction,
			Date:          date,
			CanonicalDate: canonical,
			Affiliation:   affiliation,
			QualityFlags:  flags,
			DedupKey:      key,
			Source:        raw.Source,
			SourceURL:     raw.SourceURL,
			ScrapedAt:     raw.ScrapedAt,
		})
	}

	return res
}

// validateName applies the structural minimum checks, cheapest first.
func (c *Cleaner) validateName(name string) (string, bool) {
	if name == "" {
		return model.ReasonMissingName, false
	}
	length := utf8.RuneCountInString(name)
	if length < c.opts.MinNameLength {
		return model.ReasonNameTooShort, false
	}
	if c.opts.MaxNameLength > 0 && length > c.opts.MaxNameLength {
		return model.ReasonNameTooLong, false
	}
	if c.opts.RequireJapanese && !ContainsJapanese(name) {
		return model.ReasonNoJapaneseText, false
	}
	return "", true
}

// applyRules tests the rules in configured order; the first match decides
// the rejection reason.
func (c *Cleaner) applyRules(name, affiliation, jurisdiction string) (string, bool) {
	for i := range c.rules {
		rule := &c.rules[i]
		var value string
		switch rule.field {
		case "name":
			value = name
		case "affiliation":
			value = affiliation
		case "jurisdiction":
			value = jurisdiction
		}
		if value != "" && rule.matches(value) {
			return rule.reason, false
		}
	}
	return "", true
}

// QualityScore is the share of records that survived cleaning. An empty
// batch counts as fully clean by convention.
func QualityScore(clean, total int) float64 {
	if total == 0 {
		return 1.0
	}
	return float64(clean) / float64(total)
}
