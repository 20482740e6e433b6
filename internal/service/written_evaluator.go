package service

import (
	"context"
	"math"
	"strings"

	"github.com/hireflow/assessment-api/internal/model"
	"github.com/rs/zerolog/log"
)

const (
	judgeFailedFeedback      = "AI evaluation failed."
	judgeUnavailableFeedback = "AI evaluation unavailable."
)

// WrittenEvaluator scores free-text answers through the AI judge. The judge
// returns a 0-100 score; credit is granted proportionally to MaxPoints only
// when the score clears the minimum floor, so near-zero-quality assessments
// earn nothing instead of scaling linearly from zero.
type WrittenEvaluator struct {
	judge      JudgeClient
	minAIScore int
}

func NewWrittenEvaluator(judge JudgeClient, minAIScore int) *WrittenEvaluator {
	return &WrittenEvaluator{judge: judge, minAIScore: minAIScore}
}

func (e *WrittenEvaluator) Evaluate(ctx context.Context, answer *model.Answer, question *model.Question) {
	answer.Points = 0
	answer.IsCorrect = false

	text := submittedText(answer)
	if strings.TrimSpace(text) == "" {
		return
	}

	questionText := ""
	if question != nil {
		questionText = question.Text
	}

	verdict := e.judge.Evaluate(ctx, questionText, text)

	zero := 0
	switch verdict.Status {
	case JudgeUnavailable:
		answer.AIScore = &zero
		answer.AIFeedback = judgeUnavailableFeedback
		return
	case JudgeFailed:
		answer.AIScore = &zero
		answer.AIFeedback = judgeFailedFeedback
		return
	}

	score := verdict.Score
	answer.AIScore = &score
	answer.AIFeedback = verdict.Feedback

	if score >= e.minAIScore {
		answer.Points = math.Round(float64(score) / 100 * answer.MaxPoints)
	} else {
		log.Debug().Int("aiScore", score).Int("floor", e.minAIScore).Uint("questionID", answer.QuestionID).
			Msg("AI score below credit floor, awarding zero points")
	}
	answer.IsCorrect = answer.Points > 0
}

func submittedText(answer *model.Answer) string {
	switch v := answer.DecodedValue().(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return NormalizeValue(v)
	}
}
