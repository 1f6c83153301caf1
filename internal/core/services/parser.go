package services

import (
	"regexp"
	"strings"

	"github.com/qaforge-labs/qaforge-cli/internal/core/domain"
)

var (
	// questionMarker opens a candidate segment. The marker is matched
	// case-insensitively at the start of the text or of a line, which is
	// where a well-formed response places it.
	questionMarker = regexp.MustCompile(`(?i)(?:^|\n)\s*q:`)

	// strayQuestion matches a question marker anywhere, including
	// mid-line. Used to truncate answers when the model runs two pairs
	// together without a line break between them.
	strayQuestion = regexp.MustCompile(`(?i)\bq:`)

	// answerMarker separates a segment's question from its answer.
	answerMarker = regexp.MustCompile(`(?i)\ba:`)

	// thinkBlock matches reasoning traces emitted by models such as
	// deepseek-r1. They precede the actual answer and never contain
	// usable pairs.
	thinkBlock = regexp.MustCompile(`(?is)<think>.*?</think>`)
)

// ResponseParser extracts question/answer candidates from raw generated
// text. It is deliberately forgiving: generation output is unreliable,
// so anything that does not match the expected marker layout is dropped
// rather than reported. Quality judgements are not made here; candidates
// go through the quality gate before being persisted.
type ResponseParser struct{}

// NewResponseParser creates a new response parser.
func NewResponseParser() *ResponseParser {
	return &ResponseParser{}
}

// Parse splits raw generated text into question/answer candidates.
// Text before the first question marker is discarded, as are segments
// without an answer marker. An answer containing a stray question
// marker is truncated there, recovering the pair the model failed to
// separate cleanly. Returns nil when nothing parseable is found.
func (p *ResponseParser) Parse(raw string) []domain.QAPair {
	text := thinkBlock.ReplaceAllString(raw, "")
	text = stripCodeFence(text)

	segments := questionMarker.Split(text, -1)
	if len(segments) < 2 {
		return nil
	}

	var pairs []domain.QAPair
	for _, segment := range segments[1:] {
		loc := answerMarker.FindStringIndex(segment)
		if loc == nil {
			// No answer marker: a dangling question or trailing noise
			continue
		}

		question := strings.TrimSpace(segment[:loc[0]])
		answer := strings.TrimSpace(segment[loc[1]:])

		if stray := strayQuestion.FindStringIndex(answer); stray != nil {
			answer = strings.TrimSpace(answer[:stray[0]])
		}

		if question == "" || answer == "" {
			continue
		}

		pairs = append(pairs, domain.QAPair{Question: question, Answer: answer})
	}

	return pairs
}

// stripCodeFence removes a markdown code fence wrapping the whole
// response. Some models wrap their output in ``` blocks despite the
// prompt asking for plain text; the content inside is what matters.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}

	// Drop the opening fence line, including any language tag
	newline := strings.Index(trimmed, "\n")
	if newline < 0 {
		return ""
	}
	trimmed = trimmed[newline+1:]

	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return trimmed
}
