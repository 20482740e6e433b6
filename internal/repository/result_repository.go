package repository

import (
	"github.com/hireflow/assessment-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResultRepository interface {
	// CreateIfAbsent attempts an atomic insert keyed by the natural key
	// (test_id, candidate_email, invitation_token, attempt_number).
	// It reports whether the row was inserted; on conflict the existing row
	// is left untouched and inserted is false.
	CreateIfAbsent(result *model.Result) (inserted bool, err error)
	FindByNaturalKey(testID uint, candidateEmail, token string, attemptNumber int) (*model.Result, error)
	FindByIDWithAnswers(id uint) (*model.Result, error)
	FindAllByTest(testID uint) ([]model.Result, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) CreateIfAbsent(result *model.Result) (bool, error) {
	inserted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		// Insert the parent row alone first: on conflict the associated
		// answers must not be written either.
		answers := result.Answers
		result.Answers = nil
		res := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "test_id"},
				{Name: "candidate_email"},
				{Name: "invitation_token"},
				{Name: "attempt_number"},
			},
			DoNothing: true,
		}).Create(result)
		result.Answers = answers
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		inserted = true
		for i := range result.Answers {
			result.Answers[i].ResultID = result.ID
		}
		if len(result.Answers) > 0 {
			if err := tx.Create(&result.Answers).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return inserted, err
}

func (r *resultRepository) FindByNaturalKey(testID uint, candidateEmail, token string, attemptNumber int) (*model.Result, error) {
	var result model.Result
	err := r.db.
		Where("test_id = ? AND candidate_email = ? AND invitation_token = ? AND attempt_number = ?",
			testID, candidateEmail, token, attemptNumber).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) FindByIDWithAnswers(id uint) (*model.Result, error) {
	var result model.Result
	err := r.db.
		Preload("Test").
		Preload("Answers").
		First(&result, id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) FindAllByTest(testID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.db.Where("test_id = ?", testID).Order("completion_date DESC").Find(&results).Error
	return results, err
}
