// Package classifier splits a free-text clinical narrative into assessment,
// next-step and lifestyle sections with sentence-level keyword rules.
package classifier

import (
	"strings"
	"unicode"
)

// Section is the classifier state while walking sentences.
type Section int

const (
	SectionAssessment Section = iota
	SectionActions
)

// BulletMarker prefixes list items when rendered for display.
const BulletMarker = "• "

var (
	actionKeywords    = []string{"recommend", "next step", "further evaluation", "referral"}
	lifestyleKeywords = []string{"diet", "smoke", "exercise", "lifestyle"}
)

// Result is the classified response. NextSteps and Lifestyle are empty
// when no sentence switched to the action section.
type Result struct {
	Assessment []string
	NextSteps  []string
	Lifestyle  []string
}

// HasActions reports whether any sentence was classified as an action.
func (r Result) HasActions() bool {
	return len(r.NextSteps) > 0 || len(r.Lifestyle) > 0
}

// AssessmentText joins assessment sentences with a single space.
func (r Result) AssessmentText() string {
	return strings.Join(r.Assessment, " ")
}

// Classify walks the sentences of text in order. The first sentence that
// mentions an action keyword switches to the action section for the rest
// of the text; sentences there are lifestyle advice when they mention a
// lifestyle keyword and next steps otherwise.
func Classify(text string) Result {
	var r Result
	state := SectionAssessment
	for _, sentence := range SplitSentences(text) {
		lower := strings.ToLower(sentence)
		if containsAny(lower, actionKeywords) {
			state = SectionActions
		}

		switch {
		case state == SectionAssessment:
			r.Assessment = append(r.Assessment, sentence)
		case containsAny(lower, lifestyleKeywords):
			r.Lifestyle = append(r.Lifestyle, sentence)
		default:
			r.NextSteps = append(r.NextSteps, sentence)
		}
	}
	return r
}

// SplitSentences breaks text after every period that is followed by
// whitespace. Abbreviations such as "Dr." are not treated specially.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 1; i < len(runes); i++ {
		if !unicode.IsSpace(runes[i]) || runes[i-1] != '.' {
			continue
		}
		sentences = append(sentences, string(runes[start:i]))
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		start = i
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

// Bullets prefixes every item with BulletMarker.
func Bullets(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = BulletMarker + item
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
