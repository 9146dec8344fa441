package usecase

import (
	"context"

	"WaveStage/internal/domain/models"
)

// ChartUseCase assembles the render-ready chart payload from an analysis
// run: four index-aligned panels plus stage-colored bands over the price.
type ChartUseCase struct {
	analyze *AnalyzeUseCase
}

func NewChartUseCase(analyze *AnalyzeUseCase) *ChartUseCase {
	return &ChartUseCase{analyze: analyze}
}

const (
	stochOverbought = 80
	stochOversold   = 20
)

func (uc *ChartUseCase) GetChart(ctx context.Context, p AnalyzeParams) (*models.ChartData, error) {
	ls, err := uc.analyze.Analyze(ctx, p)
	if err != nil {
		return nil, err
	}

	n := len(ls.Bars)
	cd := &models.ChartData{
		Symbol:     ls.Symbol,
		Range:      ls.Range,
		Timestamps: make([]int64, n),
	}

	closes := make([]float64, n)
	sma20 := make([]float64, n)
	sma50 := make([]float64, n)
	k := make([]float64, n)
	d := make([]float64, n)
	fg := make([]float64, n)
	vix := make([]float64, n)
	vol := make([]float64, n)
	spike := make([]bool, n)

	for i, b := range ls.Bars {
		cd.Timestamps[i] = b.Timestamp.Unix()
		closes[i] = b.Close
		sma20[i] = b.Indicators.SMA20
		sma50[i] = b.Indicators.SMA50
		k[i] = b.Indicators.StochRSIK
		d[i] = b.Indicators.StochRSID
		fg[i] = b.Indicators.FearGreed
		vix[i] = b.Indicators.VIX
		vol[i] = b.Volume
		spike[i] = b.Indicators.VolumeSpike
	}

	cd.Price = models.PricePanel{
		Close: closes,
		SMA20: models.NullableFloats(sma20),
		SMA50: models.NullableFloats(sma50),
		Bands: stageBands(ls.Bars),
	}
	cd.StochRSI = models.StochPanel{
		K:          models.NullableFloats(k),
		D:          models.NullableFloats(d),
		Overbought: stochOverbought,
		Oversold:   stochOversold,
	}
	cd.Sentiment = models.SentiPanel{
		FearGreed: models.NullableFloats(fg),
		VIX:       models.NullableFloats(vix),
	}
	cd.Volume = models.VolumePanel{
		Volume: vol,
		Spike:  spike,
	}
	return cd, nil
}

// stageBands compresses the per-bar labels into contiguous same-stage runs.
// Unlabeled warm-up bars produce no band. ToIndex is exclusive.
func stageBands(bars []models.LabeledBar) []models.StageBand {
	var bands []models.StageBand
	for i := 0; i < len(bars); {
		stage := bars[i].Stage
		if stage == "" {
			i++
			continue
		}
		j := i + 1
		for j < len(bars) && bars[j].Stage == stage {
			j++
		}
		bands = append(bands, models.StageBand{
			FromIndex: i,
			ToIndex:   j,
			Stage:     stage,
			Color:     stage.Info().Color,
		})
		i = j
	}
	return bands
}
