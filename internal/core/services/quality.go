package services

import (
	"strings"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
)

// placeholderMarkers are substrings that only appear when the model
// echoed the prompt template or filled in boilerplate instead of real
// content. Matched case-insensitively against both fields.
var placeholderMarkers = []string{
	"[specific question",
	"[detailed answer",
	"[another question",
	"[another answer",
	"[insert",
	"[your",
	"lorem ipsum",
	"example text",
}

// questionIndicators are substrings at least one of which a genuine
// question contains. A candidate with none of them is usually a
// fragment of the answer that landed on the wrong side of a marker.
var questionIndicators = []string{
	"?", "how", "what", "when", "where", "why", "which",
	"describe", "explain", "list", "identify",
}

// sentenceEnders are the characters a cleaned field may already end
// with; anything else gets a full stop appended.
const sentenceEnders = ".!?:;"

// QualityGate applies heuristic checks to parsed candidates before
// they are persisted. The rules are conservative on purpose: they
// catch structurally broken generations (template echoes, truncated
// fragments, degenerate repetition), not subtle factual problems.
type QualityGate struct {
	minQuestionChars int
	minAnswerChars   int
	minAnswerWords   int
	minDistinctRatio float64
}

// NewQualityGate creates a quality gate with the given thresholds.
func NewQualityGate(cfg domain.QualitySettings) *QualityGate {
	return &QualityGate{
		minQuestionChars: cfg.MinQuestionChars,
		minAnswerChars:   cfg.MinAnswerChars,
		minAnswerWords:   cfg.MinAnswerWords,
		minDistinctRatio: cfg.MinDistinctRatio,
	}
}

// Accept reports whether a candidate pair passes the heuristic checks.
// Checks run on the raw parsed fields; Clean is applied afterwards to
// the pairs that survive.
func (g *QualityGate) Accept(question, answer string) bool {
	if len(question) < g.minQuestionChars {
		return false
	}
	if len(answer) < g.minAnswerChars {
		return false
	}

	lowerQuestion := strings.ToLower(question)
	lowerAnswer := strings.ToLower(answer)

	for _, marker := range placeholderMarkers {
		if strings.Contains(lowerQuestion, marker) || strings.Contains(lowerAnswer, marker) {
			return false
		}
	}

	if !containsAny(lowerQuestion, questionIndicators) {
		return false
	}

	words := strings.Fields(lowerAnswer)
	if len(words) < g.minAnswerWords {
		return false
	}

	if distinctRatio(words) < g.minDistinctRatio {
		return false
	}

	return true
}

// Clean normalises an accepted field for persistence: internal
// whitespace runs collapse to single spaces and a full stop is added
// when no terminal punctuation is present.
func (g *QualityGate) Clean(text string) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	if cleaned == "" {
		return cleaned
	}
	if !strings.ContainsRune(sentenceEnders, rune(cleaned[len(cleaned)-1])) {
		cleaned += "."
	}
	return cleaned
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// distinctRatio measures vocabulary variety as distinct words over
// total words. Degenerate generations loop over a handful of tokens
// and score far below normal prose.
func distinctRatio(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[w] = struct{}{}
	}
	return float64(len(seen)) / float64(len(words))
}
