package dto

import (
	"encoding/json"
	"time"
)

// SubmissionOutcome is returned to the caller after a submission attempt.
// A duplicate submission is a defined outcome, not an error: Success is
// false, ResultID points at the already committed result.
type SubmissionOutcome struct {
	Success  bool   `json:"success"`
	ResultID uint   `json:"result_id"`
	Message  string `json:"message,omitempty"`
}

type AnswerResponseDTO struct {
	ID                uint                  `json:"id"`
	QuestionID        uint                  `json:"question_id"`
	QuestionType      string                `json:"question_type"`
	Answer            json.RawMessage       `json:"answer,omitempty"`
	MaxPoints         float64               `json:"max_points"`
	Points            float64               `json:"points"`
	IsCorrect         bool                  `json:"is_correct"`
	AIScore           *int                  `json:"ai_score,omitempty"`
	AIFeedback        string                `json:"ai_feedback,omitempty"`
	CodingTestResults []CodingTestResultDTO `json:"coding_test_results,omitempty"`
}

type ResultDetailDTO struct {
	ID              uint                `json:"id"`
	TestID          uint                `json:"test_id"`
	TestTitle       string              `json:"test_title,omitempty"`
	CandidateName   string              `json:"candidate_name"`
	CandidateEmail  string              `json:"candidate_email"`
	AttemptNumber   int                 `json:"attempt_number"`
	TotalPoints     float64             `json:"total_points"`
	EarnedPoints    float64             `json:"earned_points"`
	CorrectAnswers  int                 `json:"correct_answers"`
	Score           int                 `json:"score"`
	Status          string              `json:"status"`
	StartedAt       *time.Time          `json:"started_at,omitempty"`
	CompletionDate  time.Time           `json:"completion_date"`
	TimeTaken       int                 `json:"time_taken"`
	ResultsDeclared bool                `json:"results_declared"`
	Answers         []AnswerResponseDTO `json:"answers,omitempty"`
}

type ResultSummaryDTO struct {
	ID             uint      `json:"id"`
	TestID         uint      `json:"test_id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	Score          int       `json:"score"`
	Status         string    `json:"status"`
	CompletionDate time.Time `json:"completion_date"`
	TimeTaken      int       `json:"time_taken"`
}

// Candidate-facing test view: questions without reference answers.

type CandidateQuestionDTO struct {
	ID        uint     `json:"id"`
	Text      string   `json:"text"`
	Type      string   `json:"type"`
	Options   []string `json:"options,omitempty"`
	MaxPoints float64  `json:"max_points"`
	Order     int      `json:"order"`
}

type CandidateSectionDTO struct {
	ID        uint                   `json:"id"`
	Title     string                 `json:"title"`
	Order     int                    `json:"order"`
	Questions []CandidateQuestionDTO `json:"questions"`
}

type CandidateTestDTO struct {
	ID              uint                  `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description,omitempty"`
	DurationMinutes int                   `json:"duration_minutes"`
	Sections        []CandidateSectionDTO `json:"sections"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
