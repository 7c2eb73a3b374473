package geometry

import (
	"fmt"
	"math"

	"github.com/rmoreno/cadet/internal/parser"
)

const cylinderSegments = 48

// buildExtrudedCylinder makes a cylinder from a circular profile.
func buildExtrudedCylinder(p BuildParams) (*Mesh, error) {
	if p.Diameter <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("cylinder needs positive dimensions, got diameter=%v height=%v", p.Diameter, p.Height)
	}

	m := &Mesh{Name: "extruded_cylinder"}
	m.addCylinder(Vec3{}, p.Diameter/2, p.Height, cylinderSegments)
	return m, nil
}

// buildExtrudedBlock makes a rectangular solid from the plate dimensions
// and the extrusion height.
func buildExtrudedBlock(p BuildParams) (*Mesh, error) {
	if p.Length <= 0 || p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("block needs positive dimensions, got length=%v width=%v height=%v", p.Length, p.Width, p.Height)
	}

	m := &Mesh{Name: "extruded_block"}
	m.addBox(Vec3{}, p.Length, p.Width, p.Height)
	return m, nil
}

func buildSphere(p BuildParams) (*Mesh, error) {
	if p.Diameter <= 0 {
		return nil, fmt.Errorf("sphere needs a positive diameter, got %v", p.Diameter)
	}

	m := &Mesh{Name: "sphere"}
	m.addSphere(Vec3{}, p.Diameter/2, 24, 48)
	return m, nil
}

// buildPlateWithHoles makes a base plate with hole markers arranged on the
// top face. Markers are thin cylinders at the drill positions; a real
// kernel would cut them out instead.
func buildPlateWithHoles(p BuildParams) (*Mesh, error) {
	if p.Length <= 0 || p.Width <= 0 || p.Thickness <= 0 {
		return nil, fmt.Errorf("plate needs positive dimensions, got length=%v width=%v thickness=%v", p.Length, p.Width, p.Thickness)
	}
	if p.HoleDiameter <= 0 {
		return nil, fmt.Errorf("hole diameter must be positive, got %v", p.HoleDiameter)
	}
	count := p.PatternCount
	if count <= 0 {
		count = p.HoleCount
	}
	if count <= 0 {
		return nil, fmt.Errorf("hole count must be positive, got %d", count)
	}

	m := &Mesh{Name: "plate_with_holes"}
	m.addBox(Vec3{}, p.Length, p.Width, p.Thickness)

	for _, pos := range holePositions(p, count) {
		m.addCylinder(Vec3{pos.X, pos.Y, 0}, p.HoleDiameter/2, p.Thickness*1.1, cylinderSegments)
	}
	return m, nil
}

// holePositions computes drill centers for the arrangement. Circular
// patterns sit on a ring at 30% of the smaller plate dimension; linear
// patterns spread over 80% of the plate length along the center line.
func holePositions(p BuildParams, count int) []Vec3 {
	positions := make([]Vec3, 0, count)

	if p.PatternType == parser.PatternLinear {
		if count == 1 {
			return append(positions, Vec3{})
		}
		spacing := p.Length * 0.8 / float64(count-1)
		startX := -p.Length * 0.4
		for i := 0; i < count; i++ {
			positions = append(positions, Vec3{X: startX + float64(i)*spacing})
		}
		return positions
	}

	ringRadius := math.Min(p.Length, p.Width) * 0.3
	step := p.AngleDeg
	if step == 0 {
		step = 360.0 / float64(count)
	}
	for i := 0; i < count; i++ {
		angle := float64(i) * step * math.Pi / 180
		positions = append(positions, Vec3{
			X: ringRadius * math.Cos(angle),
			Y: ringRadius * math.Sin(angle),
		})
	}
	return positions
}
