package usecase

import (
	"context"
	"fmt"
	"time"

	"WaveStage/internal/domain/models"
	drepo "WaveStage/internal/domain/repository"
	"WaveStage/internal/services/indicators"
	"WaveStage/internal/services/stages"
	"WaveStage/pkg/logger"
)

// AnalyzeUseCase runs the full pipeline for one symbol: fetch bars, derive
// indicator series, replay the stage classifier over history, and classify
// the latest bar.
type AnalyzeUseCase struct {
	source  drepo.BarSource
	engine  *indicators.Engine
	labeler *stages.Labeler
	metrics drepo.Metrics
	log     *logger.Logger
	timeout time.Duration
}

func NewAnalyzeUseCase(source drepo.BarSource, engine *indicators.Engine, labeler *stages.Labeler, m drepo.Metrics, log *logger.Logger) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		source:  source,
		engine:  engine,
		labeler: labeler,
		metrics: m,
		log:     log,
		timeout: 15 * time.Second,
	}
}

type AnalyzeParams struct {
	Symbol string
	Range  drepo.Range
}

func (uc *AnalyzeUseCase) Analyze(ctx context.Context, p AnalyzeParams) (*models.LabeledSeries, error) {
	if p.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	p.Range = drepo.NormalizeRange(string(p.Range))

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	started := time.Now()
	md, err := uc.source.GetMarketData(ctx, p.Symbol, p.Range)
	if err != nil {
		uc.metrics.RecordError("fetch")
		return nil, fmt.Errorf("analyze %s: %w", p.Symbol, err)
	}
	uc.metrics.RecordLatency("fetch", time.Since(started).Seconds())

	vix := indicators.AlignAux(md.Bars, md.Aux)
	series := uc.engine.Compute(md.Bars, vix)

	bars := uc.labeler.Run(md.Bars, series)
	latest := uc.labeler.ClassifyAt(md.Bars, series, len(md.Bars)-1)

	counts := make(map[models.Stage]int)
	for _, b := range bars {
		if b.Stage != "" {
			counts[b.Stage]++
		}
	}

	last := md.Bars[len(md.Bars)-1]
	uc.metrics.RecordAnalysis(p.Symbol, string(latest.Stage))
	uc.metrics.RecordLastPrice(p.Symbol, last.Close)
	uc.metrics.RecordLatency("analyze", time.Since(started).Seconds())

	uc.log.Debug("analysis complete",
		logger.String("symbol", p.Symbol),
		logger.String("range", string(p.Range)),
		logger.Int("bars", len(bars)),
		logger.String("stage", string(latest.Stage)))

	return &models.LabeledSeries{
		Symbol:      p.Symbol,
		Range:       string(p.Range),
		Bars:        bars,
		Latest:      latest,
		StageCounts: counts,
	}, nil
}
