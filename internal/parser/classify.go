package parser

import "strings"

// Action keyword tables. Order matters: multiple sets can co-occur in one
// sentence ("drill a round hole" hits both hole and fillet keywords), so
// classification walks actionPriority and the first set with any substring
// match wins.
var actionKeywords = map[Action][]string{
	ActionExtrude:    {"extrude", "extrusion", "boss"},
	ActionCreateHole: {"hole", "holes", "drill", "bore"},
	ActionFillet:     {"fillet", "round"},
	ActionChamfer:    {"chamfer", "bevel"},
	ActionPattern:    {"pattern", "array"},
}

var actionPriority = []Action{
	ActionExtrude,
	ActionCreateHole,
	ActionFillet,
	ActionChamfer,
	ActionPattern,
}

// Shape keyword tables, disjoint from the action sets and with their own
// priority order.
var shapeKeywords = map[Shape][]string{
	ShapeCylinder: {"cylinder", "cylindrical", "rod", "shaft"},
	ShapeBlock:    {"block", "cube", "box", "plate", "slab"},
	ShapeSphere:   {"sphere", "ball"},
}

var shapePriority = []Shape{
	ShapeCylinder,
	ShapeBlock,
	ShapeSphere,
}

// ClassifyAction determines the action for normalized text. Keyword sets
// are tested in fixed priority order and the first match wins; text with
// no recognized keyword classifies as create_feature, so every input maps
// to an action.
func ClassifyAction(text string) Action {
	for _, action := range actionPriority {
		for _, kw := range actionKeywords[action] {
			if strings.Contains(text, kw) {
				return action
			}
		}
	}
	return ActionCreateFeature
}

// ClassifyShape determines the shape for normalized text, independently of
// the action. No match leaves the shape unknown.
func ClassifyShape(text string) Shape {
	for _, shape := range shapePriority {
		for _, kw := range shapeKeywords[shape] {
			if strings.Contains(text, kw) {
				return shape
			}
		}
	}
	return ShapeUnknown
}
