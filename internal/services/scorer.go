package services

import (
	"regexp"
	"sort"
	"strings"
)

// contextLimit caps how many corpus lines are fed to the model.
const contextLimit = 12

var tokenSplit = regexp.MustCompile(`[^a-z0-9]+`)

// ScoreLine counts how many query tokens appear as substrings of line. Both
// sides are expected lower-cased. Substring containment, not term frequency;
// the crude scoring is kept as-is because changing it changes observable
// assistant behavior.
func ScoreLine(line string, tokens []string) int {
	score := 0
	for _, t := range tokens {
		if t != "" && strings.Contains(line, t) {
			score++
		}
	}
	return score
}

// QueryTokens lower-cases the query and splits it on non-alphanumeric runs.
func QueryTokens(query string) []string {
	return tokenSplit.Split(strings.ToLower(query), -1)
}

// TopMatches ranks the non-empty corpus lines by token-overlap score and
// returns at most contextLimit of them. The sort is stable so equal scores
// keep corpus order, which keeps output deterministic.
func TopMatches(query string, corpus []string) []string {
	tokens := QueryTokens(query)

	type scored struct {
		line  string
		score int
	}
	lines := make([]scored, 0, len(corpus))
	for _, line := range corpus {
		if line == "" {
			continue
		}
		lines = append(lines, scored{line: line, score: ScoreLine(strings.ToLower(line), tokens)})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].score > lines[j].score
	})

	if len(lines) > contextLimit {
		lines = lines[:contextLimit]
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.line
	}
	return out
}

// RetrieveContext joins the top-ranked corpus lines into the context blob
// prepended to the model prompt.
func RetrieveContext(query string, corpus []string) string {
	return strings.Join(TopMatches(query, corpus), "\n")
}
