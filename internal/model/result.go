package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	ResultStatusPassed = "Passed"
	ResultStatusFailed = "Failed"
)

// DefaultPassingScore applies when a test does not define its own threshold.
const DefaultPassingScore = 70

// Result is the persisted record of one candidate's completed test attempt.
// The composite unique index on (test_id, candidate_email, invitation_token,
// attempt_number) is the natural key that enforces exactly-once commits.
type Result struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	TestID          uint           `json:"test_id" gorm:"not null;uniqueIndex:idx_results_natural_key"`
	Test            Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	CandidateName   string         `json:"candidate_name"`
	CandidateEmail  string         `json:"candidate_email" gorm:"not null;uniqueIndex:idx_results_natural_key"`
	InvitationToken string         `json:"invitation_token" gorm:"not null;uniqueIndex:idx_results_natural_key"`
	AttemptNumber   int            `json:"attempt_number" gorm:"not null;default:1;uniqueIndex:idx_results_natural_key"`
	Answers         []Answer       `json:"answers,omitempty" gorm:"foreignKey:ResultID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TotalPoints     float64        `json:"total_points"`
	EarnedPoints    float64        `json:"earned_points"`
	CorrectAnswers  int            `json:"correct_answers"`
	Score           int            `json:"score"`
	Status          string         `json:"status"`
	StartedAt       *time.Time     `json:"started_at,omitempty"`
	CompletionDate  time.Time      `json:"completion_date"`
	TimeTaken       int            `json:"time_taken"` // minutes
	ResultsDeclared bool           `json:"results_declared" gorm:"default:false"`
	StudentID       *uint          `json:"student_id,omitempty" gorm:"index"`
	CandidateID     *uint          `json:"candidate_id,omitempty" gorm:"index"`
	CreatedBy       string         `json:"created_by"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
