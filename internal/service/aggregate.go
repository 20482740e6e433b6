package service

import (
	"math"

	"github.com/hireflow/assessment-api/internal/model"
)

// Totals is the aggregate outcome of a fully evaluated answer set.
type Totals struct {
	TotalPoints    float64
	EarnedPoints   float64
	CorrectAnswers int
	Score          int
	Status         string
}

// AggregateScore reduces already-scored answers into the final result. It has
// no knowledge of question types and no hidden state: the same answers and
// passing score always produce the same totals. An empty answer set scores 0
// and fails, never dividing by zero.
func AggregateScore(answers []model.Answer, passingScore int) Totals {
	if passingScore <= 0 {
		passingScore = model.DefaultPassingScore
	}

	var t Totals
	for _, a := range answers {
		t.TotalPoints += a.MaxPoints
		t.EarnedPoints += a.Points
		if a.IsCorrect {
			t.CorrectAnswers++
		}
	}

	if t.TotalPoints > 0 {
		t.Score = int(math.Round(t.EarnedPoints / t.TotalPoints * 100))
	}

	if t.Score >= passingScore {
		t.Status = model.ResultStatusPassed
	} else {
		t.Status = model.ResultStatusFailed
	}
	return t
}
