// Package parser turns free-form manufacturing instructions into
// structured commands. The rule-based path (normalize, classify, extract)
// is deterministic and has no error cases; an optional AI path produces
// the same canonical shape.
package parser

// Action identifies the manufacturing operation requested by an instruction.
type Action string

const (
	ActionExtrude       Action = "extrude"
	ActionCreateHole    Action = "create_hole"
	ActionFillet        Action = "fillet"
	ActionChamfer       Action = "chamfer"
	ActionPattern       Action = "pattern"
	ActionCreateFeature Action = "create_feature"
)

// Shape identifies the solid the instruction refers to. ShapeUnknown means
// no shape keyword was recognized.
type Shape string

const (
	ShapeUnknown  Shape = ""
	ShapeCylinder Shape = "cylinder"
	ShapeBlock    Shape = "block"
	ShapeSphere   Shape = "sphere"
)

// Source records which parsing path produced a command. It is observability
// metadata only: the command schema is identical for both sources.
type Source string

const (
	SourceRule Source = "rule"
	SourceAI   Source = "ai"
)

// Parameters is the closed set of dimension parameters a command can carry.
// Every field is optional; nil means "not detected", never zero. All
// dimensions are millimeters.
type Parameters struct {
	Count      *int     `json:"count"`
	DiameterMM *float64 `json:"diameter_mm"`
	HeightMM   *float64 `json:"height_mm"`
	WidthMM    *float64 `json:"width_mm"`
	LengthMM   *float64 `json:"length_mm"`
	RadiusMM   *float64 `json:"radius_mm"`
}

// PatternType distinguishes circular from linear arrangements.
type PatternType string

const (
	PatternCircular PatternType = "circular"
	PatternLinear   PatternType = "linear"
)

// Pattern describes a repeated-feature arrangement. Present on a command
// only when the action is pattern or pattern keywords were found.
type Pattern struct {
	Type     PatternType `json:"type"`
	Count    *int        `json:"count"`
	AngleDeg *float64    `json:"angle_deg"`
}

// Command is the canonical result of parsing one instruction. Both parsing
// paths produce this exact shape; consumers never branch on Source except
// for logging and response metadata.
type Command struct {
	Action  Action     `json:"action"`
	Shape   Shape      `json:"shape,omitempty"`
	Params  Parameters `json:"parameters"`
	Pattern *Pattern   `json:"pattern"`
	Source  Source     `json:"source"`
}

// Float returns a pointer to v. Convenience for building commands in tests
// and for the AI response conversion.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
