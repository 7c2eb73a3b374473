package geometry

import "github.com/rmoreno/cadet/internal/parser"

// Strategy names a geometry-building procedure.
type Strategy string

const (
	StrategyExtrudedCylinder Strategy = "extruded_cylinder"
	StrategyExtrudedBlock    Strategy = "extruded_block"
	StrategySphere           Strategy = "sphere"
	StrategyPlateWithHoles   Strategy = "plate_with_holes"
)

// Resolve maps an action/shape pair to exactly one strategy. Resolution
// order:
//
//  1. explicit action+shape pairs (extrude on a cylinder or block family)
//  2. hole, pattern and feature actions, regardless of shape
//  3. shape-only matches
//  4. the universal default, plate with holes
//
// The order is a total precedence: every input resolves, dispatch never
// fails.
func Resolve(action parser.Action, shape parser.Shape) Strategy {
	if action == parser.ActionExtrude {
		switch shape {
		case parser.ShapeCylinder:
			return StrategyExtrudedCylinder
		case parser.ShapeBlock:
			return StrategyExtrudedBlock
		}
	}

	switch action {
	case parser.ActionCreateHole, parser.ActionPattern, parser.ActionCreateFeature:
		return StrategyPlateWithHoles
	}

	switch shape {
	case parser.ShapeCylinder:
		return StrategyExtrudedCylinder
	case parser.ShapeBlock:
		return StrategyExtrudedBlock
	case parser.ShapeSphere:
		return StrategySphere
	}

	return StrategyPlateWithHoles
}

// Build runs the strategy for cmd with defaults resolved at this boundary.
func Build(cmd parser.Command) (*Mesh, error) {
	return BuildStrategy(Resolve(cmd.Action, cmd.Shape), ResolveParams(cmd))
}

// BuildStrategy constructs the mesh for an already-selected strategy.
func BuildStrategy(strategy Strategy, params BuildParams) (*Mesh, error) {
	switch strategy {
	case StrategyExtrudedCylinder:
		return buildExtrudedCylinder(params)
	case StrategyExtrudedBlock:
		return buildExtrudedBlock(params)
	case StrategySphere:
		return buildSphere(params)
	default:
		return buildPlateWithHoles(params)
	}
}
