package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"WaveStage/internal/domain/models"
)

// Build renders the detailed report for the latest classification of a
// labeled series: stage headline, indicator values, short- and medium-term
// trend, warnings, and the recommended-action playbook.
func Build(ls *models.LabeledSeries, now time.Time) models.Report {
	res := ls.Latest
	info := res.Stage.Info()

	change5 := trailingReturn(ls.Bars, 5)
	change20 := trailingReturn(ls.Bars, 20)
	trend := maTrend(res.Indicators)
	actions := Actions(res.Stage)

	r := models.Report{
		Symbol:      ls.Symbol,
		GeneratedAt: now,
		Stage:       res.Stage,
		StageName:   info.Name,
		Risk:        info.Risk,
		Confidence:  res.Confidence,
		Change5Pct:  models.NullableFloat(change5),
		Change20Pct: models.NullableFloat(change20),
		MATrend:     trend,
		Warnings:    res.Warnings,
		Actions:     actions,
	}
	r.Text = renderText(ls, res, info, change5, change20, trend, actions, now)
	return r
}

func renderText(ls *models.LabeledSeries, res models.ClassificationResult, info models.StageInfo, change5, change20 float64, trend string, actions []string, now time.Time) string {
	var b strings.Builder
	line := strings.Repeat("=", 70)

	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "Wave Cycle Stage Analysis - Detailed Report")
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Symbol: %s (%s)\n\n", ls.Symbol, ls.Range)

	fmt.Fprintln(&b, "[Current stage]")
	fmt.Fprintf(&b, "  Stage: %s - %s\n", res.Stage, info.Name)
	fmt.Fprintf(&b, "  Confidence: %.1f%%\n", res.Confidence*100)
	fmt.Fprintf(&b, "  Risk tier: %s\n\n", info.Risk)

	ind := res.Indicators
	fmt.Fprintln(&b, "[Key indicators]")
	fmt.Fprintf(&b, "  Stoch RSI (K/D): %s / %s\n", fmtVal(ind.StochRSIK, 1), fmtVal(ind.StochRSID, 1))
	fmt.Fprintf(&b, "  HLT: %s\n", fmtVal(ind.HLT, 1))
	fmt.Fprintf(&b, "  RSI: %s\n", fmtVal(ind.RSI, 1))
	fmt.Fprintf(&b, "  Fear & Greed: %s\n", fmtVal(ind.FearGreed, 0))
	fmt.Fprintf(&b, "  VIX: %s\n", fmtVal(ind.VIX, 1))
	fmt.Fprintf(&b, "  Volume spike: %s\n\n", yesNo(ind.VolumeSpike))

	fmt.Fprintln(&b, "[Trend]")
	fmt.Fprintf(&b, "  5-bar change: %s\n", fmtPct(change5))
	fmt.Fprintf(&b, "  20-bar change: %s\n", fmtPct(change20))
	fmt.Fprintf(&b, "  Moving average trend: %s\n\n", trend)

	if len(res.Warnings) > 0 {
		fmt.Fprintln(&b, "[Warnings]")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
		fmt.Fprintln(&b)
	}

	if len(actions) > 0 {
		fmt.Fprintln(&b, "[Recommended actions]")
		for _, a := range actions {
			fmt.Fprintf(&b, "  - %s\n", a)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, line)
	return b.String()
}

// trailingReturn is the n-bar fractional return ending at the last bar.
func trailingReturn(bars []models.LabeledBar, n int) float64 {
	last := len(bars) - 1
	if last < n {
		return math.NaN()
	}
	base := bars[last-n].Close
	if base == 0 {
		return math.NaN()
	}
	return bars[last].Close/base - 1
}

// maTrend reads the fast/slow moving-average relation: "up", "down", or
// "n/a" while either average is undefined.
func maTrend(snap models.IndicatorSnapshot) string {
	if math.IsNaN(snap.SMA20) || math.IsNaN(snap.SMA50) {
		return "n/a"
	}
	if snap.SMA20 > snap.SMA50 {
		return "up"
	}
	return "down"
}

func fmtVal(v float64, prec int) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", prec, v)
}

func fmtPct(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", v*100)
}

func yesNo(b bool) string {
	if b {
		return "detected"
	}
	return "normal"
}
