package repository

import (
	"github.com/hireflow/assessment-api/internal/model"
	"gorm.io/gorm"
)

// StudentRepository and CandidateRepository back the two lookup chains of the
// candidate name resolver. Both are read-only from the scoring pipeline.

type StudentRepository interface {
	FindByID(id uint) (*model.Student, error)
	FindByEmail(email string) (*model.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) FindByID(id uint) (*model.Student, error) {
	var student model.Student
	if err := r.db.First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByEmail(email string) (*model.Student, error) {
	var student model.Student
	if err := r.db.Where("email = ?", email).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

type CandidateRepository interface {
	FindByID(id uint) (*model.Candidate, error)
	FindByEmail(email string) (*model.Candidate, error)
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) FindByID(id uint) (*model.Candidate, error) {
	var candidate model.Candidate
	if err := r.db.First(&candidate, id).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *candidateRepository) FindByEmail(email string) (*model.Candidate, error) {
	var candidate model.Candidate
	if err := r.db.Where("email = ?", email).First(&candidate).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}
