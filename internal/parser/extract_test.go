package parser

import "testing"

func floatVal(t *testing.T, p *float64, field string) float64 {
	t.Helper()
	if p == nil {
		t.Fatalf("%s is nil, want a value", field)
	}
	return *p
}

func TestExtractDimensions(t *testing.T) {
	// Diameter and height must come out right regardless of the order the
	// two dimensions appear in the sentence.
	tests := []struct {
		instruction string
		diameter    float64
		height      float64
	}{
		{"create a cylinder 25mm diameter 15mm tall", 25, 15},
		{"create a 20mm diameter cylinder 50mm tall", 20, 50},
		{"make a cylinder diameter 30mm height 40mm", 30, 40},
		{"create cylinder 10mm wide 20mm high", 10, 20},
		{"create a 15mm cylinder 30mm tall", 15, 30},
	}

	for _, tc := range tests {
		t.Run(tc.instruction, func(t *testing.T) {
			params, _ := Extract(Normalize(tc.instruction), ActionCreateFeature)
			if got := floatVal(t, params.DiameterMM, "diameter"); got != tc.diameter {
				t.Errorf("diameter = %v, want %v", got, tc.diameter)
			}
			if got := floatVal(t, params.HeightMM, "height"); got != tc.height {
				t.Errorf("height = %v, want %v", got, tc.height)
			}
		})
	}
}

func TestExtractHole(t *testing.T) {
	params, pattern := Extract(Normalize("create a 5mm hole"), ActionCreateHole)

	if got := floatVal(t, params.DiameterMM, "diameter"); got != 5 {
		t.Errorf("diameter = %v, want 5", got)
	}
	if params.Count != nil {
		t.Errorf("count = %d, want nil", *params.Count)
	}
	if pattern != nil {
		t.Errorf("pattern = %+v, want nil", pattern)
	}
}

func TestExtractCircularPattern(t *testing.T) {
	params, pattern := Extract(Normalize("create 4 holes in a circular pattern"), ActionCreateHole)

	if params.Count == nil || *params.Count != 4 {
		t.Fatalf("count = %v, want 4", params.Count)
	}
	if pattern == nil {
		t.Fatal("pattern is nil, want circular pattern")
	}
	if pattern.Type != PatternCircular {
		t.Errorf("pattern type = %q, want circular", pattern.Type)
	}
	if pattern.Count == nil || *pattern.Count != 4 {
		t.Errorf("pattern count = %v, want 4", pattern.Count)
	}
	if pattern.AngleDeg != nil {
		t.Errorf("angle = %v, want nil", *pattern.AngleDeg)
	}
}

func TestExtractPatternVariants(t *testing.T) {
	t.Run("explicit angle", func(t *testing.T) {
		_, pattern := Extract(Normalize("pattern 6 holes every 60 degrees"), ActionCreateHole)
		if pattern == nil {
			t.Fatal("pattern is nil")
		}
		if pattern.AngleDeg == nil || *pattern.AngleDeg != 60 {
			t.Errorf("angle = %v, want 60", pattern.AngleDeg)
		}
		if pattern.Count == nil || *pattern.Count != 6 {
			t.Errorf("count = %v, want 6", pattern.Count)
		}
	})

	t.Run("linear pattern has no angle", func(t *testing.T) {
		_, pattern := Extract(Normalize("pattern 3 holes in a straight row"), ActionCreateHole)
		if pattern == nil {
			t.Fatal("pattern is nil")
		}
		if pattern.Type != PatternLinear {
			t.Errorf("type = %q, want linear", pattern.Type)
		}
		if pattern.AngleDeg != nil {
			t.Errorf("angle = %v, want nil", *pattern.AngleDeg)
		}
	})

	t.Run("pattern action without keywords defaults circular", func(t *testing.T) {
		_, pattern := Extract(Normalize("array the boss 6 times"), ActionPattern)
		if pattern == nil {
			t.Fatal("pattern is nil")
		}
		if pattern.Type != PatternCircular {
			t.Errorf("type = %q, want circular", pattern.Type)
		}
	})

	t.Run("no trigger means no pattern", func(t *testing.T) {
		_, pattern := Extract(Normalize("drill 4 holes"), ActionCreateHole)
		if pattern != nil {
			t.Errorf("pattern = %+v, want nil", pattern)
		}
	})
}

func TestExtractPlate(t *testing.T) {
	params, _ := Extract(Normalize("create 80mm base plate 6mm thick"), ActionCreateFeature)

	if got := floatVal(t, params.LengthMM, "length"); got != 80 {
		t.Errorf("length = %v, want 80", got)
	}
	if got := floatVal(t, params.HeightMM, "height"); got != 6 {
		t.Errorf("height = %v, want 6", got)
	}
	if params.DiameterMM != nil {
		t.Errorf("diameter = %v, want nil", *params.DiameterMM)
	}
}

func TestExtractRadius(t *testing.T) {
	params, _ := Extract(Normalize("a disc with radius of 12.5mm"), ActionCreateFeature)
	if got := floatVal(t, params.RadiusMM, "radius"); got != 12.5 {
		t.Errorf("radius = %v, want 12.5", got)
	}
}

func TestExtractAbsentFieldsAreNil(t *testing.T) {
	params, pattern := Extract(Normalize("do something"), ActionCreateFeature)

	if params.Count != nil || params.DiameterMM != nil || params.HeightMM != nil ||
		params.WidthMM != nil || params.LengthMM != nil || params.RadiusMM != nil {
		t.Errorf("expected all fields nil, got %+v", params)
	}
	if pattern != nil {
		t.Errorf("pattern = %+v, want nil", pattern)
	}
}

func TestExtractWidthPrecedence(t *testing.T) {
	// An explicit diameter keyword wins; the width reading then stays in
	// its own field instead of overriding the diameter.
	params, _ := Extract(Normalize("a plate 40mm wide with a 10mm diameter hole"), ActionCreateHole)

	if got := floatVal(t, params.DiameterMM, "diameter"); got != 10 {
		t.Errorf("diameter = %v, want 10", got)
	}
	if got := floatVal(t, params.WidthMM, "width"); got != 40 {
		t.Errorf("width = %v, want 40", got)
	}
}
