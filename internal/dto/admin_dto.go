package dto

import (
	"encoding/json"
	"time"
)

// QuestionCreateDTO is used within TestCreateDTO for admin test creation.
// CorrectAnswer may be a JSON string or an array of strings.
type QuestionCreateDTO struct {
	Text          string          `json:"text" binding:"required"`
	Type          string          `json:"type" binding:"required,oneof=MultipleChoice WrittenAnswer Coding"`
	Options       []string        `json:"options"`
	CorrectAnswer json.RawMessage `json:"correct_answer"`
	MaxPoints     float64         `json:"max_points" binding:"required,gt=0"`
	Order         int             `json:"order"`
}

type SectionCreateDTO struct {
	Title     string              `json:"title" binding:"required"`
	Order     int                 `json:"order"`
	Questions []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

// TestCreateDTO is for admins to create a test with all sections and
// questions in one call.
type TestCreateDTO struct {
	Title           string             `json:"title" binding:"required"`
	Description     string             `json:"description,omitempty"`
	PassingScore    int                `json:"passing_score"`
	DurationMinutes int                `json:"duration_minutes"`
	CreatedBy       string             `json:"created_by"`
	Sections        []SectionCreateDTO `json:"sections" binding:"required,min=1,dive"`
}

type TestCreatedDTO struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	PassingScore int       `json:"passing_score"`
	Sections     int       `json:"sections"`
	Questions    int       `json:"questions"`
	CreatedAt    time.Time `json:"created_at"`
}

// InvitationCreateDTO issues a candidate invitation for a test.
type InvitationCreateDTO struct {
	TestID      uint   `json:"test_id" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	StudentID   *uint  `json:"student_id"`
	CandidateID *uint  `json:"candidate_id"`
	CreatedBy   string `json:"created_by" binding:"required"`
}

type InvitationCreatedDTO struct {
	ID        uint      `json:"id"`
	Token     string    `json:"token"`
	TestID    uint      `json:"test_id"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
