package service

import (
	"context"

	"github.com/hireflow/assessment-api/internal/model"
)

// AnswerEvaluator scores a single answer in place. Implementations must never
// let an external failure escape: a broken judge call or malformed payload
// degrades that one answer to zero credit, it does not abort the submission.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, answer *model.Answer, question *model.Question)
}

// EvaluatorRegistry routes an answer to the evaluator for its question type.
type EvaluatorRegistry map[string]AnswerEvaluator

// NewEvaluatorRegistry wires the per-type evaluators behind their question
// type keys.
func NewEvaluatorRegistry(judge JudgeClient, minAIScore int) EvaluatorRegistry {
	return EvaluatorRegistry{
		model.QuestionTypeMultipleChoice: NewChoiceEvaluator(),
		model.QuestionTypeWrittenAnswer:  NewWrittenEvaluator(judge, minAIScore),
		model.QuestionTypeCoding:         NewCodingEvaluator(),
	}
}
