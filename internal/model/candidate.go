package model

import (
	"time"

	"gorm.io/gorm"
)

// Student and Candidate are the two directories probed when resolving a
// display name for a submission. They are distinct stores upstream, so they
// stay distinct tables here.

type Student struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Email      string         `json:"email" gorm:"index"`
	Salutation string         `json:"salutation,omitempty"`
	FirstName  string         `json:"first_name,omitempty"`
	MiddleName string         `json:"middle_name,omitempty"`
	LastName   string         `json:"last_name,omitempty"`
	Name       string         `json:"name,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

type Candidate struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Email      string         `json:"email" gorm:"index"`
	Salutation string         `json:"salutation,omitempty"`
	FirstName  string         `json:"first_name,omitempty"`
	MiddleName string         `json:"middle_name,omitempty"`
	LastName   string         `json:"last_name,omitempty"`
	Name       string         `json:"name,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

const StatsStatusCompleted = "Completed"

// CandidateStats aggregates per-candidate activity for the inviter's
// dashboard. Incremented as a post-commit side effect of a submission.
type CandidateStats struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	CandidateEmail string         `json:"candidate_email" gorm:"not null;uniqueIndex:idx_stats_owner"`
	CreatedBy      string         `json:"created_by" gorm:"not null;uniqueIndex:idx_stats_owner"`
	TestsAssigned  int            `json:"tests_assigned"`
	TestsCompleted int            `json:"tests_completed"`
	AverageScore   float64        `json:"average_score"`
	Status         string         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
