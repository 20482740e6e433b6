package service

import (
	"context"
	"math"

	"github.com/hireflow/assessment-api/internal/model"
)

// CodingEvaluator grants proportional credit from per-test-case pass/fail
// outcomes. It deliberately leaves IsCorrect untouched: coding questions do
// not count toward the binary correct-answer tally the way choice questions
// do.
type CodingEvaluator struct{}

func NewCodingEvaluator() *CodingEvaluator {
	return &CodingEvaluator{}
}

func (e *CodingEvaluator) Evaluate(_ context.Context, answer *model.Answer, _ *model.Question) {
	answer.Points = 0

	cases := answer.TestCaseResults()
	if len(cases) == 0 {
		return
	}

	passed := 0
	for _, tc := range cases {
		if tc.Passed {
			passed++
		}
	}
	answer.Points = math.Round(float64(passed) / float64(len(cases)) * answer.MaxPoints)
}
