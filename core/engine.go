package core

import (
	"github.com/roadworks/tachoscan/schema"
)

// AnalyzeCard runs the full analysis pipeline on a decoded card: reconstruct
// intervals per recorded day across both card generations, aggregate daily
// summaries, and evaluate the compliance rules. Any malformed day aborts the
// whole run; no partial report is returned.
func AnalyzeCard(card *schema.DecodedCard) (*schema.CardAnalysis, error) {
	byDate := make(map[string]*schema.DailySummary)
	var stream []schema.ActivityInterval

	for _, rec := range card.Records() {
		intervals, err := ReconstructDay(rec)
		if err != nil {
			return nil, err
		}
		FoldIntervals(byDate, intervals)
		stream = append(stream, intervals...)
	}
	SortIntervals(stream)

	return &schema.CardAnalysis{
		Driver:      card.Driver(),
		Days:        FinalizeSummaries(byDate),
		Infractions: AnalyzeCompliance(stream),
	}, nil
}
