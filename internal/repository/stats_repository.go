package repository

import (
	"github.com/hireflow/assessment-api/internal/model"
	"gorm.io/gorm"
)

type StatsRepository interface {
	FindByEmailAndOwner(candidateEmail, createdBy string) (*model.CandidateStats, error)
	Create(stats *model.CandidateStats) error
	Update(stats *model.CandidateStats) error
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) FindByEmailAndOwner(candidateEmail, createdBy string) (*model.CandidateStats, error) {
	var stats model.CandidateStats
	err := r.db.
		Where("candidate_email = ? AND created_by = ?", candidateEmail, createdBy).
		First(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *statsRepository) Create(stats *model.CandidateStats) error {
	return r.db.Create(stats).Error
}

func (r *statsRepository) Update(stats *model.CandidateStats) error {
	return r.db.Save(stats).Error
}
