package textproc

import (
	"regexp"
	"strings"
)

// Problem is one detected fragment of a submission. Type stays empty at
// segmentation time; classification fills it in later.
type Problem struct {
	Text  string `json:"text"`
	Order int    `json:"order"`
	Type  string `json:"type,omitempty"`
}

// Enumeration markers: "1.", "2)", "Question 1:" at the start of the text
// or of a line. Known to over-split prose like "Section 2: intro"; that is
// the documented behavior of the heuristic, not something to fix silently.
var problemMarkerRe = regexp.MustCompile(`(?:^|\n)(?:\d+[.)]|\w+\s+\d+:)`)

// DetectProblems splits text into ordered problem fragments. If the marker
// heuristic finds at most one non-empty chunk, the whole input becomes a
// single fragment so no content is ever lost.
func DetectProblems(text string) []Problem {
	splits := problemMarkerRe.Split(text, -1)

	var problems []Problem
	for idx, chunk := range splits {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		problems = append(problems, Problem{
			Text:  strings.TrimSpace(chunk),
			Order: idx,
		})
	}

	if len(problems) <= 1 {
		problems = []Problem{{
			Text:  strings.TrimSpace(text),
			Order: 0,
		}}
	}
	return problems
}
