package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Extraction works as ordered cascades: for each field the candidate
// patterns are tried in order and the first match wins. Fields are
// independent; a match for one never blocks another. All numbers are
// millimeters, no unit conversion happens anywhere.

var heightPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:height|tall|length|depth|thickness)\s+(?:of\s+)?([0-9]*\.?[0-9]+)\s*(?:mm|millimeters?)?`),
	regexp.MustCompile(`([0-9]*\.?[0-9]+)\s*(?:mm|millimeters?)?\s+(?:tall|high|long|deep|thick)(?:\s|$)`),
}

// Diameter-specific keywords only. Width keywords are a separate cascade:
// an explicit diameter always wins, and a width reading feeds the diameter
// only when no diameter pattern matched anywhere in the text.
var diameterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([0-9]*\.?[0-9]+)\s*(?:mm|millimeters?)?\s+(?:diameter|dia)(?:\s|$)`),
	regexp.MustCompile(`(?:diameter|dia)\s*(?:of\s*)?([0-9]*\.?[0-9]+)\s*(?:mm|millimeters?)?`),
	regexp.MustCompile(`([0-9]*\.?[0-9]+)\s*(?:mm|millimeters?)?\s+(?:across|around)(?:\s|$)`),
	regexp.MustCompile(`([0-9]*\.?[0-9]+)\s*(?:mm|millimeters?)\s+(?:cylinder|rod|shaft)`),
	regexp.MustCompile(`([0-9]*\.?[0-9]+)\s*(?:mm|millimeters?)\s+holes?`),
}

var widthPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([0-9]*\.?[0-9]+)\s*(?:mm|millimeters?)?\s+(?:wide|width)(?:\s|$)`),
	regexp.MustCompile(`(?:width|wide)\s*(?:of\s*)?([0-9]*\.?[0-9]+)\s*(?:mm|millimeters?)?`),
}

var lengthPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([0-9]*\.?[0-9]+)\s*(?:mm|millimeters?)\s+(?:base\s+)?plate`),
	regexp.MustCompile(`plate\s+(?:of\s+)?([0-9]*\.?[0-9]+)\s*(?:mm|millimeters?)`),
}

var radiusPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:radius|rad)\b\s*(?:of\s*)?([0-9]*\.?[0-9]+)\s*(?:mm|millimeters?)?`),
	regexp.MustCompile(`([0-9]*\.?[0-9]+)\s*(?:mm|millimeters?)?\s+radius`),
}

var countPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([0-9]+)\s*(?:x\s*)?(?:holes?|instances?|copies|times)`),
	regexp.MustCompile(`(?:count|number)\s*(?:of\s*)?([0-9]+)`),
}

var anglePatterns = []*regexp.Regexp{
	regexp.MustCompile(`([0-9]*\.?[0-9]+)\s*(?:°|deg|degrees?)`),
	regexp.MustCompile(`(?:angle|every|spaced)\s*(?:of\s*)?([0-9]*\.?[0-9]+)`),
}

var patternCountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:pattern|array)\s+of\s+([0-9]+)`),
}

// Circular keywords are tested before linear ones; with a pattern trigger
// present but neither set matching, the arrangement defaults to circular.
var circularKeywords = []string{"circular", "circle", "radial", "polar"}
var linearKeywords = []string{"linear", "line", "row", "straight"}

// firstFloat runs a cascade against text and returns the first pattern's
// first captured group as a float. Capture groups that fail to parse are
// skipped rather than aborting the cascade.
func firstFloat(patterns []*regexp.Regexp, text string) *float64 {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}

func firstInt(patterns []*regexp.Regexp, text string) *int {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Extract pulls dimension and pattern parameters out of normalized text.
// The action decides whether pattern sub-extraction runs: it does when the
// action is pattern or when pattern keywords occur in the text, so a
// sentence like "create 4 holes in a circular pattern" keeps its
// arrangement even though it classifies as create_hole.
func Extract(text string, action Action) (Parameters, *Pattern) {
	params := Parameters{
		HeightMM: firstFloat(heightPatterns, text),
		WidthMM:  firstFloat(widthPatterns, text),
		LengthMM: firstFloat(lengthPatterns, text),
		RadiusMM: firstFloat(radiusPatterns, text),
		Count:    firstInt(countPatterns, text),
	}

	params.DiameterMM = firstFloat(diameterPatterns, text)
	if params.DiameterMM == nil && params.WidthMM != nil {
		// "10mm wide cylinder" reads as a diameter when nothing more
		// explicit is present.
		d := *params.WidthMM
		params.DiameterMM = &d
	}

	var pattern *Pattern
	if action == ActionPattern || containsAny(text, actionKeywords[ActionPattern]) {
		pattern = extractPattern(text, params.Count)
	}

	return params, pattern
}

func extractPattern(text string, count *int) *Pattern {
	p := &Pattern{Type: PatternCircular}
	switch {
	case containsAny(text, circularKeywords):
		p.Type = PatternCircular
	case containsAny(text, linearKeywords):
		p.Type = PatternLinear
	}

	p.Count = firstInt(patternCountPatterns, text)
	if p.Count == nil && count != nil {
		c := *count
		p.Count = &c
	}

	// Angle only makes sense for circular arrangements.
	if p.Type == PatternCircular {
		p.AngleDeg = firstFloat(anglePatterns, text)
	}

	return p
}
