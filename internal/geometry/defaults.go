// Package geometry selects and runs a build strategy for a parsed command
// and exports the result to an exchange format. It is a deliberately
// simplified stand-in for a full solid-modeling kernel: solids are
// triangle meshes and hole features are positioned markers rather than
// boolean cuts.
package geometry

import "github.com/rmoreno/cadet/internal/parser"

// Builder-boundary defaults. Applied only when resolving parameters for a
// build; the parsed command itself is never mutated, so plans and audit
// records keep the values the user actually said.
const (
	defaultPlateLength    = 100.0
	defaultPlateWidth     = 80.0
	defaultPlateThickness = 10.0
	defaultHoleDiameter   = 5.0
	defaultHoleCount      = 4
	defaultDiameter       = 20.0
	defaultHeight         = 30.0
)

// BuildParams carries fully-resolved values for every strategy. Unlike
// parser.Parameters nothing here is optional: each field went through its
// documented fallback chain.
type BuildParams struct {
	Length    float64
	Width     float64
	Thickness float64
	Diameter  float64
	Height    float64

	HoleDiameter float64
	HoleCount    int

	PatternType  parser.PatternType
	PatternCount int
	AngleDeg     float64
}

// ResolveParams fills builder defaults for cmd. Fallback chains:
//
//	length:        length -> width -> 100
//	width:         width -> length -> 80
//	thickness:     height -> 10
//	diameter:      diameter -> 2*radius -> 20
//	height:        height -> 30
//	hole diameter: diameter -> 2*radius -> 5
//	hole count:    count -> pattern count -> 4
//	pattern:       type -> circular, count -> hole count,
//	               angle -> 360/count
func ResolveParams(cmd parser.Command) BuildParams {
	p := cmd.Params

	// Radius converts to diameter before any chain runs.
	diameter := p.DiameterMM
	if diameter == nil && p.RadiusMM != nil {
		d := 2 * *p.RadiusMM
		diameter = &d
	}

	out := BuildParams{
		Length:       chain(p.LengthMM, p.WidthMM, defaultPlateLength),
		Width:        chain(p.WidthMM, p.LengthMM, defaultPlateWidth),
		Thickness:    chain(p.HeightMM, nil, defaultPlateThickness),
		Diameter:     chain(diameter, nil, defaultDiameter),
		Height:       chain(p.HeightMM, nil, defaultHeight),
		HoleDiameter: chain(diameter, nil, defaultHoleDiameter),
	}

	out.HoleCount = defaultHoleCount
	if p.Count != nil {
		out.HoleCount = *p.Count
	} else if cmd.Pattern != nil && cmd.Pattern.Count != nil {
		out.HoleCount = *cmd.Pattern.Count
	}

	out.PatternType = parser.PatternCircular
	out.PatternCount = out.HoleCount
	if cmd.Pattern != nil {
		if cmd.Pattern.Type != "" {
			out.PatternType = cmd.Pattern.Type
		}
		if cmd.Pattern.Count != nil {
			out.PatternCount = *cmd.Pattern.Count
		}
		if cmd.Pattern.AngleDeg != nil {
			out.AngleDeg = *cmd.Pattern.AngleDeg
		}
	}
	if out.AngleDeg == 0 && out.PatternCount > 0 {
		out.AngleDeg = 360.0 / float64(out.PatternCount)
	}

	return out
}

// chain returns the first present value, then the fallback constant.
func chain(first, second *float64, def float64) float64 {
	if first != nil {
		return *first
	}
	if second != nil {
		return *second
	}
	return def
}
