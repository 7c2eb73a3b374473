package parser

import (
	"regexp"
	"strings"
)

// Instructions may describe several operations at once, either on separate
// lines or chained in one sentence ("create a base plate ... create a
// cylinder ..."). Each occurrence of a leading verb after the first starts
// a new operation.
var operationVerbs = regexp.MustCompile(`\b(?:create|make|add|build|drill)\b`)

// SplitOperations breaks raw instruction text into individual operation
// strings. Input is normalized first so verb matching is case-insensitive.
// Blank segments are dropped. Text with a single operation comes back as a
// one-element slice; empty input yields nil.
func SplitOperations(raw string) []string {
	var ops []string
	for _, line := range strings.Split(Normalize(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ops = append(ops, splitLine(line)...)
	}
	return ops
}

// splitLine cuts a single line at every verb occurrence after the first.
// A verb at position 0 does not start a new segment, it just opens the
// current one.
func splitLine(line string) []string {
	locs := operationVerbs.FindAllStringIndex(line, -1)
	if len(locs) <= 1 {
		return []string{line}
	}

	var segments []string
	start := 0
	for _, loc := range locs {
		if loc[0] == 0 || loc[0] <= start {
			continue
		}
		seg := strings.TrimSpace(line[start:loc[0]])
		if seg != "" {
			segments = append(segments, seg)
		}
		start = loc[0]
	}
	if tail := strings.TrimSpace(line[start:]); tail != "" {
		segments = append(segments, tail)
	}
	if len(segments) == 0 {
		return []string{line}
	}
	return segments
}
