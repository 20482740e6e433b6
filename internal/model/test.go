package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Test is the definition a candidate is assessed against. Questions are
// organized under sections; each question carries its own reference answer.
type Test struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Title           string         `json:"title" gorm:"not null"`
	Description     string         `json:"description,omitempty"`
	PassingScore    int            `json:"passing_score" gorm:"default:70"`
	DurationMinutes int            `json:"duration_minutes"`
	CreatedBy       string         `json:"created_by"`
	Sections        []Section      `json:"sections,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

type Section struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	TestID    uint           `json:"test_id" gorm:"not null;index"`
	Title     string         `json:"title"`
	Order     int            `json:"order" gorm:"column:section_order"`
	Questions []Question     `json:"questions,omitempty" gorm:"foreignKey:SectionID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Question holds the authoritative reference answer. The candidate-facing API
// must never serialize CorrectAnswer back to the client.
type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	SectionID     uint           `json:"section_id" gorm:"not null;index"`
	Text          string         `json:"text" gorm:"type:text;not null"`
	Type          string         `json:"type" gorm:"not null"`
	Options       datatypes.JSON `json:"options,omitempty"`
	CorrectAnswer datatypes.JSON `json:"correct_answer,omitempty"`
	MaxPoints     float64        `json:"max_points"`
	Order         int            `json:"order" gorm:"column:question_order"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// DecodedCorrectAnswer unmarshals the reference answer (string or array).
func (q *Question) DecodedCorrectAnswer() any {
	return decodeJSONValue(q.CorrectAnswer)
}

// OptionList returns the decoded choice set for the question, if any.
func (q *Question) OptionList() []string {
	a := Answer{Options: q.Options}
	return a.OptionList()
}
