// Package score summarizes a category run and raises diagnostic signals.
// Signals are reporting only; they never change what gets exported.
package score

import (
	"fmt"

	"github.com/giinscan/giinscan/internal/clean"
	"github.com/giinscan/giinscan/internal/model"
)

// Thresholds for the diagnostic signals.
const (
	lowQualityBelow    = 0.5
	duplicateRateAbove = 0.3
	unparsedRateAbove  = 0.2
)

// Summarize builds the category summary from the cleaning result and the
// fetch counters.
func Summarize(category string, fetched, fetchErrors int, res clean.Result) model.CategorySummary {
	extracted := len(res.Clean) + len(res.Rejected)

	byReason := make(map[string]int, 8)
	for _, rej := range res.Rejected {
		byReason[rej.Reason]++
	}

	summary := model.CategorySummary{
		Category:         category,
		Fetched:          fetched,
		FetchErrors:      fetchErrors,
		Extracted:        extracted,
		Clean:            len(res.Clean),
		Rejected:         len(res.Rejected),
		RejectedByReason: byReason,
		QualityScore:     clean.QualityScore(len(res.Clean), extracted),
	}
	summary.Signals = signals(summary, res)

	return summary
}

// signals inspects the summary for conditions worth flagging to the
// operator. Each signal carries the inputs behind it.
func signals(s model.CategorySummary, res clean.Result) []model.QualitySignal {
	var out []model.QualitySignal

	if s.Fetched > 0 && s.Extracted == 0 {
		out = append(out, model.QualitySignal{
			Type:        model.SignalNoRecords,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("%d pages fetched but no records extracted; source templates may have changed", s.Fetched),
			Data:        map[string]interface{}{"fetched": s.Fetched},
		})
		return out
	}

	if s.Extracted > 0 && s.QualityScore < lowQualityBelow {
		out = append(out, model.QualitySignal{
			Type:        model.SignalLowQuality,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("only %.0f%% of extracted records survived cleaning", s.QualityScore*100),
			Data: map[string]interface{}{
				"quality_score": s.QualityScore,
				"threshold":     lowQualityBelow,
			},
		})
	}

	if s.Extracted > 0 {
		dupRate := float64(s.RejectedByReason[model.ReasonDuplicate]) / float64(s.Extracted)
		if dupRate > duplicateRateAbove {
			out = append(out, model.QualitySignal{
				Type:        model.SignalHighDuplicateRate,
				Severity:    model.SeverityInfo,
				Description: fmt.Sprintf("%.0f%% of records were duplicates; sources overlap heavily", dupRate*100),
				Data: map[string]interface{}{
					"duplicate_rate": dupRate,
					"threshold":      duplicateRateAbove,
				},
			})
		}
	}

	if len(res.Clean) > 0 {
		unparsed := 0
		for _, rec := range res.Clean {
			for _, flag := range rec.QualityFlags {
				if flag == model.FlagDateUnparsed {
					unparsed++
					break
				}
			}
		}
		rate := float64(unparsed) / float64(len(res.Clean))
		if rate > unparsedRateAbove {
			out = append(out, model.QualitySignal{
				Type:        model.SignalUnparsedDates,
				Severity:    model.SeverityInfo,
				Description: fmt.Sprintf("%.0f%% of clean records carry dates the canonicalizer does not recognize", rate*100),
				Data: map[string]interface{}{
					"unparsed_rate": rate,
					"threshold":     unparsedRateAbove,
				},
			})
		}
	}

	return out
}
