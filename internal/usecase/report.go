package usecase

import (
	"context"
	"time"

	"WaveStage/internal/domain/models"
	"WaveStage/internal/services/report"
)

// ReportUseCase turns an analysis run into the human-oriented report.
type ReportUseCase struct {
	analyze *AnalyzeUseCase
	now     func() time.Time
}

func NewReportUseCase(analyze *AnalyzeUseCase) *ReportUseCase {
	return &ReportUseCase{analyze: analyze, now: time.Now}
}

func (uc *ReportUseCase) GetReport(ctx context.Context, p AnalyzeParams) (*models.Report, error) {
	ls, err := uc.analyze.Analyze(ctx, p)
	if err != nil {
		return nil, err
	}
	r := report.Build(ls, uc.now())
	return &r, nil
}
