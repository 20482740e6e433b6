package dto

import (
	"encoding/json"
	"time"
)

// SubmittedAnswerDTO is one answer inside a submission payload. Answer may be
// a JSON string or an array of strings; it is decoded downstream.
type SubmittedAnswerDTO struct {
	QuestionID        uint                  `json:"question_id" binding:"required"`
	Answer            json.RawMessage       `json:"answer"`
	CodingTestResults []CodingTestResultDTO `json:"coding_test_results,omitempty"`
}

type CodingTestResultDTO struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	ActualOutput   string `json:"actual_output"`
	Passed         bool   `json:"passed"`
}

// SubmissionRequest is the intake payload for a completed test. The
// invitation is the root of trust: token, owner and candidate identity are
// read from it, never from the client.
type SubmissionRequest struct {
	InvitationID   uint                 `json:"invitation_id" binding:"required"`
	TestID         uint                 `json:"test_id"`
	CandidateEmail string               `json:"candidate_email"`
	StartedAt      *time.Time           `json:"started_at"`
	CompletionDate *time.Time           `json:"completion_date"`
	Duration       int                  `json:"duration"` // minutes
	Answers        []SubmittedAnswerDTO `json:"answers" binding:"required,dive"`
}
