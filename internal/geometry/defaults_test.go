package geometry

import (
	"testing"

	"github.com/rmoreno/cadet/internal/parser"
)

func TestResolveParamsDefaults(t *testing.T) {
	p := ResolveParams(parser.Command{})

	if p.Length != 100 || p.Width != 80 || p.Thickness != 10 {
		t.Errorf("plate defaults = %v x %v x %v, want 100 x 80 x 10", p.Length, p.Width, p.Thickness)
	}
	if p.HoleDiameter != 5 {
		t.Errorf("hole diameter = %v, want 5", p.HoleDiameter)
	}
	if p.HoleCount != 4 {
		t.Errorf("hole count = %d, want 4", p.HoleCount)
	}
	if p.Diameter != 20 || p.Height != 30 {
		t.Errorf("cylinder defaults = %v x %v, want 20 x 30", p.Diameter, p.Height)
	}
	if p.PatternType != parser.PatternCircular {
		t.Errorf("pattern type = %q, want circular", p.PatternType)
	}
	if p.AngleDeg != 90 {
		t.Errorf("angle = %v, want 360/4 = 90", p.AngleDeg)
	}
}

func TestResolveParamsRadiusDoubling(t *testing.T) {
	cmd := parser.Command{
		Params: parser.Parameters{RadiusMM: parser.Float(12.5)},
	}

	p := ResolveParams(cmd)
	if p.Diameter != 25 {
		t.Errorf("diameter = %v, want 2*12.5 = 25", p.Diameter)
	}
	if p.HoleDiameter != 25 {
		t.Errorf("hole diameter = %v, want 25", p.HoleDiameter)
	}
}

func TestResolveParamsExplicitDiameterWins(t *testing.T) {
	cmd := parser.Command{
		Params: parser.Parameters{
			DiameterMM: parser.Float(8),
			RadiusMM:   parser.Float(100),
		},
	}

	if p := ResolveParams(cmd); p.Diameter != 8 {
		t.Errorf("diameter = %v, want 8", p.Diameter)
	}
}

func TestResolveParamsPlateChains(t *testing.T) {
	t.Run("width falls back to length", func(t *testing.T) {
		cmd := parser.Command{Params: parser.Parameters{LengthMM: parser.Float(60)}}
		p := ResolveParams(cmd)
		if p.Length != 60 || p.Width != 60 {
			t.Errorf("got %v x %v, want 60 x 60", p.Length, p.Width)
		}
	})

	t.Run("length falls back to width", func(t *testing.T) {
		cmd := parser.Command{Params: parser.Parameters{WidthMM: parser.Float(45)}}
		p := ResolveParams(cmd)
		if p.Length != 45 || p.Width != 45 {
			t.Errorf("got %v x %v, want 45 x 45", p.Length, p.Width)
		}
	})
}

func TestResolveParamsCountChain(t *testing.T) {
	cmd := parser.Command{
		Pattern: &parser.Pattern{
			Type:  parser.PatternCircular,
			Count: parser.Int(6),
		},
	}

	p := ResolveParams(cmd)
	if p.HoleCount != 6 {
		t.Errorf("hole count = %d, want pattern count 6", p.HoleCount)
	}
	if p.AngleDeg != 60 {
		t.Errorf("angle = %v, want 360/6 = 60", p.AngleDeg)
	}
}

func TestResolveParamsDoesNotMutateCommand(t *testing.T) {
	cmd := parser.ParseRule("create a 5mm hole")

	_ = ResolveParams(cmd)

	if cmd.Params.Count != nil {
		t.Error("ResolveParams filled a default into the parsed command")
	}
	if cmd.Params.HeightMM != nil {
		t.Error("ResolveParams filled a default height into the parsed command")
	}
}
