package core

import (
	"context"
	"fmt"
	"time"

	"github.com/roadworks/tachoscan/internal/contract"
	"github.com/roadworks/tachoscan/internal/outwriter"
	"github.com/roadworks/tachoscan/schema"
)

// ExecutorFunc defines the function signature for executing different analysis commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// ExecuteAnalyzeReport runs the full card analysis and prints the combined
// report. It serves as the main entry point for the 'analyze' command.
func ExecuteAnalyzeReport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	analysis, err := runCardAnalysis(ctx, cfg)
	if err != nil {
		return err
	}
	persistAnalysis(mgr, start, analysis)
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteReport(analysis, cfg, duration)
}

// ExecuteAnalyzeDays runs the card analysis and prints the per-day summaries.
// It serves as the main entry point for the 'days' command.
func ExecuteAnalyzeDays(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	analysis, err := runCardAnalysis(ctx, cfg)
	if err != nil {
		return err
	}
	persistAnalysis(mgr, start, analysis)
	days := analysis.Days
	if len(days) > cfg.ResultLimit {
		days = days[:cfg.ResultLimit]
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteDays(days, cfg, duration)
}

// ExecuteAnalyzeInfractions runs the card analysis and prints the detected
// infractions. It serves as the main entry point for the 'infractions' command.
func ExecuteAnalyzeInfractions(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	analysis, err := runCardAnalysis(ctx, cfg)
	if err != nil {
		return err
	}
	persistAnalysis(mgr, start, analysis)
	infractions := analysis.Infractions
	if len(infractions) > cfg.ResultLimit {
		infractions = infractions[:cfg.ResultLimit]
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteInfractions(infractions, cfg, duration)
}

// runCardAnalysis decodes the configured card file, runs the analysis pipeline
// and applies the configured date range.
func runCardAnalysis(ctx context.Context, cfg *contract.Config) (*schema.CardAnalysis, error) {
	if cfg.CardPath == "" {
		return nil, fmt.Errorf("no card file provided")
	}

	decoder := contract.NewLocalCardDecoder(cfg.DecoderPath)
	card, err := decoder.DecodeFile(ctx, cfg.CardPath)
	if err != nil {
		return nil, err
	}

	analysis, err := AnalyzeCard(card)
	if err != nil {
		return nil, err
	}
	return FilterAnalysis(analysis, cfg.StartDate, cfg.EndDate), nil
}

// persistAnalysis records the run in the report store when one is configured.
// Persistence failures are reported as warnings; the analysis output itself
// must not depend on a reachable database.
func persistAnalysis(mgr contract.StoreManager, start time.Time, analysis *schema.CardAnalysis) {
	if mgr == nil {
		return
	}
	store := mgr.GetReportStore()
	if store == nil {
		return
	}

	runID, err := store.BeginRun(start, analysis.Driver)
	if err != nil {
		contract.LogWarn("beginning analysis run", err)
		return
	}
	if runID == 0 {
		// No-op store
		return
	}
	if err := store.SaveAnalysis(runID, analysis); err != nil {
		contract.LogWarn("saving analysis results", err)
		return
	}
	if err := store.EndRun(runID, time.Now(), len(analysis.Days), len(analysis.Infractions)); err != nil {
		contract.LogWarn("finalizing analysis run", err)
	}
}
