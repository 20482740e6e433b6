package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	QuestionTypeMultipleChoice = "MultipleChoice"
	QuestionTypeWrittenAnswer  = "WrittenAnswer"
	QuestionTypeCoding         = "Coding"
)

// CodingTestResult is one hidden test case outcome attached to a coding answer.
type CodingTestResult struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	ActualOutput   string `json:"actual_output"`
	Passed         bool   `json:"passed"`
}

// Answer is one question's response within a submitted result. Value holds the
// raw submitted answer, which may be a string or an array of strings.
type Answer struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	ResultID          uint           `json:"result_id" gorm:"not null;index"`
	QuestionID        uint           `json:"question_id" gorm:"not null;index"`
	QuestionType      string         `json:"question_type" gorm:"not null"`
	Value             datatypes.JSON `json:"answer,omitempty"`
	CorrectAnswer     datatypes.JSON `json:"correct_answer,omitempty"`
	Options           datatypes.JSON `json:"options,omitempty"`
	MaxPoints         float64        `json:"max_points"`
	Points            float64        `json:"points"`
	IsCorrect         bool           `json:"is_correct"`
	AIScore           *int           `json:"ai_score,omitempty"`
	AIFeedback        string         `json:"ai_feedback,omitempty" gorm:"type:text"`
	CodingTestResults datatypes.JSON `json:"coding_test_results,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// DecodedValue unmarshals the raw submitted answer into a Go value
// (string, []any, float64, ...). A missing or malformed value decodes to nil.
func (a *Answer) DecodedValue() any {
	return decodeJSONValue(a.Value)
}

// DecodedCorrectAnswer unmarshals the stored reference answer.
func (a *Answer) DecodedCorrectAnswer() any {
	return decodeJSONValue(a.CorrectAnswer)
}

// OptionList returns the choice set attached to the answer, if any.
func (a *Answer) OptionList() []string {
	if len(a.Options) == 0 {
		return nil
	}
	var opts []string
	if err := json.Unmarshal(a.Options, &opts); err != nil {
		return nil
	}
	return opts
}

// TestCaseResults decodes the per-test-case outcomes of a coding answer.
func (a *Answer) TestCaseResults() []CodingTestResult {
	if len(a.CodingTestResults) == 0 {
		return nil
	}
	var cases []CodingTestResult
	if err := json.Unmarshal(a.CodingTestResults, &cases); err != nil {
		return nil
	}
	return cases
}

func decodeJSONValue(raw datatypes.JSON) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		// Treat undecodable payloads as the literal text they arrived as.
		return string(raw)
	}
	return v
}
