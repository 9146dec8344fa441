package report

import "WaveStage/internal/domain/models"

// actionMap holds the fixed recommended-action playbook per stage.
var actionMap = map[models.Stage][]string{
	models.StageA: {
		"consider scaling into a position gradually",
		"confirm the weekly stochastic RSI has bottomed",
		"keep position size conservative",
	},
	models.StageB: {
		"buy aggressively with the trend",
		"add on pullbacks",
		"set a profit-taking line",
	},
	models.StageC: {
		"hold off on new buying",
		"consider dip buys while HLT sits in the 30-50 band",
		"keep existing positions",
	},
	models.StageD: {
		"start taking profit in stages",
		"watch volume and the fear-greed gauge closely",
		"use a trailing stop",
	},
	models.StageDBC: {
		"take profit on most of the position immediately",
		"confirm the upper wick and the volume surge",
		"a contrarian short is also on the table",
	},
	models.StageE: {
		"close out long positions",
		"consider shorting into rebound highs",
		"raise the cash ratio",
	},
	models.StageF: {
		"treat rallies as selling opportunities",
		"confirm overhead supply is capping price",
		"beware the bull trap",
	},
	models.StageG: {
		"stay short or in cash",
		"wait for a selling-climax signal",
		"contrarian buying is premature",
	},
	models.StageGSC: {
		"start buying in stages",
		"confirm the volume surge and the volatility spike",
		"a chance for medium- to long-term entries",
	},
}

// Actions returns the recommended-action list for a stage. Nil for the
// empty (unclassified) stage.
func Actions(stage models.Stage) []string {
	acts, ok := actionMap[stage]
	if !ok {
		return nil
	}
	out := make([]string, len(acts))
	copy(out, acts)
	return out
}
