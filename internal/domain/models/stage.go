package models

// Stage is one of the nine wave-cycle phase labels produced by the
// classifier. The empty string means "not yet classified" (warm-up).
type Stage string

const (
	StageA   Stage = "A"
	StageB   Stage = "B"
	StageC   Stage = "C"
	StageD   Stage = "D"
	StageDBC Stage = "D-BC"
	StageE   Stage = "E"
	StageF   Stage = "F"
	StageG   Stage = "G"
	StageGSC Stage = "G-SC"
)

// RiskTier grades how dangerous it is to hold or open exposure in a stage.
type RiskTier string

const (
	RiskLow         RiskTier = "low"
	RiskMedium      RiskTier = "medium"
	RiskHigh        RiskTier = "high"
	RiskVeryHigh    RiskTier = "very_high"
	RiskOpportunity RiskTier = "opportunity"
)

// StageInfo is the static metadata attached to each stage. Color is the
// background band color chart consumers should use for the stage.
type StageInfo struct {
	Name  string
	Risk  RiskTier
	Color string
}

var stageInfos = map[Stage]StageInfo{
	StageA:   {Name: "Early Advance (Wave 1)", Risk: RiskLow, Color: "lightblue"},
	StageB:   {Name: "Accelerating Advance (Wave 3)", Risk: RiskLow, Color: "green"},
	StageC:   {Name: "Correction (Wave 4)", Risk: RiskMedium, Color: "yellow"},
	StageD:   {Name: "Overheated Advance (Wave 5)", Risk: RiskHigh, Color: "orange"},
	StageDBC: {Name: "Buying Climax", Risk: RiskVeryHigh, Color: "red"},
	StageE:   {Name: "Corrective Wave A", Risk: RiskHigh, Color: "darkred"},
	StageF:   {Name: "Rebound Wave B", Risk: RiskMedium, Color: "lightyellow"},
	StageG:   {Name: "Markdown Wave C", Risk: RiskHigh, Color: "darkred"},
	StageGSC: {Name: "Selling Climax", Risk: RiskOpportunity, Color: "darkblue"},
}

// stageOrder is the canonical evaluation/display order of the nine stages.
var stageOrder = []Stage{
	StageA, StageB, StageC, StageD, StageDBC, StageE, StageF, StageG, StageGSC,
}

// Stages returns all stages in canonical order.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// Info returns the static metadata for the stage. The zero StageInfo is
// returned for an unknown or empty stage.
func (s Stage) Info() StageInfo {
	return stageInfos[s]
}

// Valid reports whether s is one of the nine defined stages.
func (s Stage) Valid() bool {
	_, ok := stageInfos[s]
	return ok
}
