package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	InvitationStatusPending   = "Pending"
	InvitationStatusCompleted = "Completed"
)

// Invitation is the root of trust for a submission: token, owner and
// candidate identity all come from here rather than from client input.
type Invitation struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Token       string         `json:"token" gorm:"not null;uniqueIndex"`
	TestID      uint           `json:"test_id" gorm:"not null;index"`
	Email       string         `json:"email" gorm:"not null;index"`
	Status      string         `json:"status" gorm:"default:'Pending'"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	StudentID   *uint          `json:"student_id,omitempty"`
	CandidateID *uint          `json:"candidate_id,omitempty"`
	CreatedBy   string         `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
