// Package plan renders a parsed command into an ordered list of
// human-readable build steps. Rendering is a pure view over the command:
// it reads the values the user actually said, before any builder defaults
// are filled in, so previews and audit logs reflect the instruction as
// given.
package plan

import (
	"fmt"
	"strconv"

	"github.com/rmoreno/cadet/internal/parser"
)

// fallbackStep is returned when no more specific description applies, so a
// plan is never empty.
const fallbackStep = "Create a feature from the instruction as given"

// Render produces the step descriptions for cmd. The result is
// deterministic for a given command and always has at least one element.
func Render(cmd parser.Command) []string {
	var steps []string

	switch cmd.Action {
	case parser.ActionExtrude:
		steps = append(steps, extrudeStep(cmd))
	case parser.ActionCreateHole:
		steps = append(steps, holeStep(cmd))
	case parser.ActionFillet:
		steps = append(steps, edgeStep("Fillet", cmd.Params.RadiusMM))
	case parser.ActionChamfer:
		steps = append(steps, edgeStep("Chamfer", cmd.Params.RadiusMM))
	case parser.ActionPattern:
		steps = append(steps, "Repeat the selected feature")
	default:
		steps = append(steps, featureStep(cmd))
	}

	// Hole and pattern commands describe their arrangement on a second
	// line when one was recognized.
	if cmd.Pattern != nil &&
		(cmd.Action == parser.ActionCreateHole || cmd.Action == parser.ActionPattern) {
		steps = append(steps, arrangementStep(cmd.Pattern))
	}

	if len(steps) == 0 {
		steps = []string{fallbackStep}
	}
	return steps
}

func extrudeStep(cmd parser.Command) string {
	profile := "the sketched profile"
	if cmd.Shape != parser.ShapeUnknown {
		profile = "a " + string(cmd.Shape) + " profile"
	}
	if cmd.Params.HeightMM != nil {
		return fmt.Sprintf("Extrude %s to a height of %smm", profile, fmtMM(*cmd.Params.HeightMM))
	}
	return "Extrude " + profile
}

func holeStep(cmd parser.Command) string {
	subject := "a hole"
	if cmd.Params.Count != nil {
		subject = fmt.Sprintf("%d holes", *cmd.Params.Count)
	}
	if cmd.Params.DiameterMM != nil {
		return fmt.Sprintf("Drill %s with a diameter of %smm", subject, fmtMM(*cmd.Params.DiameterMM))
	}
	return "Drill " + subject
}

func edgeStep(verb string, radius *float64) string {
	if radius != nil {
		return fmt.Sprintf("%s the selected edges with a %smm radius", verb, fmtMM(*radius))
	}
	return verb + " the selected edges"
}

func featureStep(cmd parser.Command) string {
	switch cmd.Shape {
	case parser.ShapeCylinder:
		return dimensionedStep("Create a cylinder", cmd.Params.DiameterMM, cmd.Params.HeightMM)
	case parser.ShapeBlock:
		return dimensionedStep("Create a block", cmd.Params.LengthMM, cmd.Params.HeightMM)
	case parser.ShapeSphere:
		if cmd.Params.DiameterMM != nil {
			return fmt.Sprintf("Create a sphere %smm in diameter", fmtMM(*cmd.Params.DiameterMM))
		}
		return "Create a sphere"
	default:
		return fallbackStep
	}
}

// dimensionedStep appends whichever of the two dimensions are present.
func dimensionedStep(base string, first, height *float64) string {
	if first != nil {
		base += fmt.Sprintf(" %smm", fmtMM(*first))
	}
	if height != nil {
		base += fmt.Sprintf(" with a height of %smm", fmtMM(*height))
	}
	return base
}

func arrangementStep(p *parser.Pattern) string {
	desc := fmt.Sprintf("Arrange in a %s pattern", p.Type)
	if p.Count != nil {
		desc = fmt.Sprintf("Arrange %d instances in a %s pattern", *p.Count, p.Type)
	}
	if p.AngleDeg != nil {
		desc += fmt.Sprintf(" spaced %s degrees apart", fmtMM(*p.AngleDeg))
	}
	return desc
}

// fmtMM formats a dimension without a trailing ".0" for whole values.
func fmtMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
