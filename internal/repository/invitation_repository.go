package repository

import (
	"time"

	"github.com/hireflow/assessment-api/internal/model"
	"gorm.io/gorm"
)

type InvitationRepository interface {
	Create(invitation *model.Invitation) error
	FindByID(id uint) (*model.Invitation, error)
	FindByToken(token string) (*model.Invitation, error)
	MarkCompleted(id uint, completedAt time.Time) error
}

type invitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(invitation *model.Invitation) error {
	return r.db.Create(invitation).Error
}

func (r *invitationRepository) FindByID(id uint) (*model.Invitation, error) {
	var invitation model.Invitation
	if err := r.db.First(&invitation, id).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *invitationRepository) FindByToken(token string) (*model.Invitation, error) {
	var invitation model.Invitation
	if err := r.db.Where("token = ?", token).First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *invitationRepository) MarkCompleted(id uint, completedAt time.Time) error {
	return r.db.Model(&model.Invitation{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       model.InvitationStatusCompleted,
			"completed_at": completedAt,
		}).Error
}
