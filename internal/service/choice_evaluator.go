package service

import (
	"context"

	"github.com/hireflow/assessment-api/internal/model"
	"github.com/rs/zerolog/log"
)

// ChoiceEvaluator awards full or zero credit for multiple choice answers.
// When an options list is present, correctness is decided by option index
// identity rather than text equality: two option strings that normalize to
// the same text but sit at different indices are still different choices.
type ChoiceEvaluator struct{}

func NewChoiceEvaluator() *ChoiceEvaluator {
	return &ChoiceEvaluator{}
}

func (e *ChoiceEvaluator) Evaluate(_ context.Context, answer *model.Answer, question *model.Question) {
	answer.Points = 0
	answer.IsCorrect = false

	submitted := answer.DecodedValue()
	if IsBlankValue(submitted) {
		return
	}

	// The reference answer always comes fresh from the test definition, never
	// from client input. A missing reference keeps whatever was already
	// attached to the answer record instead of discarding it.
	var authoritative any
	if question != nil {
		authoritative = question.DecodedCorrectAnswer()
	}
	if IsBlankValue(authoritative) {
		log.Warn().Uint("questionID", answer.QuestionID).Msg("Reference answer missing from test definition, falling back to stored value")
		authoritative = answer.DecodedCorrectAnswer()
	} else {
		answer.CorrectAnswer = question.CorrectAnswer
	}
	if IsBlankValue(authoritative) {
		return
	}

	var options []string
	if question != nil {
		options = question.OptionList()
	}
	if len(options) == 0 {
		options = answer.OptionList()
	}

	correct := false
	if len(options) > 0 {
		submittedIdx := optionIndex(options, submitted)
		correctIdx := optionIndex(options, authoritative)
		correct = submittedIdx >= 0 && correctIdx >= 0 && submittedIdx == correctIdx
	} else {
		correct = NormalizeValue(submitted) == NormalizeValue(authoritative)
	}

	if correct {
		answer.Points = answer.MaxPoints
		answer.IsCorrect = true
	}
}

// optionIndex locates a value within the options list, or -1 when absent.
// An exact raw match wins over a normalized match so that two options which
// normalize to the same text still resolve to their own indices.
func optionIndex(options []string, value any) int {
	if raw, ok := value.(string); ok {
		for i, opt := range options {
			if opt == raw {
				return i
			}
		}
	}
	needle := NormalizeValue(value)
	if needle == "" {
		return -1
	}
	for i, opt := range options {
		if NormalizeText(opt) == needle {
			return i
		}
	}
	return -1
}
