package service

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hireflow/assessment-api/internal/dto"
	"github.com/hireflow/assessment-api/internal/model"
	"github.com/hireflow/assessment-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// AdminService covers the authoring surfaces the pipeline depends on:
// creating tests with their sections/questions and issuing invitations.
type AdminService interface {
	CreateTest(req dto.TestCreateDTO) (*dto.TestCreatedDTO, error)
	CreateInvitation(req dto.InvitationCreateDTO) (*dto.InvitationCreatedDTO, error)
}

type adminService struct {
	testRepo    repository.TestRepository
	invitations repository.InvitationRepository
	statsRepo   repository.StatsRepository
}

func NewAdminService(
	testRepo repository.TestRepository,
	invitations repository.InvitationRepository,
	statsRepo repository.StatsRepository,
) AdminService {
	return &adminService{testRepo: testRepo, invitations: invitations, statsRepo: statsRepo}
}

func (s *adminService) CreateTest(req dto.TestCreateDTO) (*dto.TestCreatedDTO, error) {
	passingScore := req.PassingScore
	if passingScore <= 0 {
		passingScore = model.DefaultPassingScore
	}
	if passingScore > 100 {
		return nil, fmt.Errorf("passing score must be at most 100, got %d", passingScore)
	}

	questionCount := 0
	sections := make([]model.Section, 0, len(req.Sections))
	for si, sec := range req.Sections {
		questions := make([]model.Question, 0, len(sec.Questions))
		for qi, q := range sec.Questions {
			if q.Type == model.QuestionTypeMultipleChoice {
				if len(q.Options) == 0 {
					return nil, fmt.Errorf("question %d in section %d is multiple choice but has no options", qi+1, si+1)
				}
				if len(q.CorrectAnswer) == 0 {
					return nil, fmt.Errorf("question %d in section %d is multiple choice but has no correct answer", qi+1, si+1)
				}
			}
			question := model.Question{
				Text:          q.Text,
				Type:          q.Type,
				CorrectAnswer: datatypes.JSON(q.CorrectAnswer),
				MaxPoints:     q.MaxPoints,
				Order:         q.Order,
			}
			if len(q.Options) > 0 {
				raw, err := json.Marshal(q.Options)
				if err != nil {
					return nil, fmt.Errorf("failed to encode options for question %d in section %d: %w", qi+1, si+1, err)
				}
				question.Options = datatypes.JSON(raw)
			}
			questions = append(questions, question)
			questionCount++
		}
		sections = append(sections, model.Section{
			Title:     sec.Title,
			Order:     sec.Order,
			Questions: questions,
		})
	}

	test := model.Test{
		Title:           req.Title,
		Description:     req.Description,
		PassingScore:    passingScore,
		DurationMinutes: req.DurationMinutes,
		CreatedBy:       req.CreatedBy,
		Sections:        sections,
	}

	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create test")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}

	return &dto.TestCreatedDTO{
		ID:           test.ID,
		Title:        test.Title,
		PassingScore: test.PassingScore,
		Sections:     len(test.Sections),
		Questions:    questionCount,
		CreatedAt:    test.CreatedAt,
	}, nil
}

func (s *adminService) CreateInvitation(req dto.InvitationCreateDTO) (*dto.InvitationCreatedDTO, error) {
	if _, err := s.testRepo.FindByID(req.TestID); err != nil {
		return nil, fmt.Errorf("%w: id %d", ErrTestNotFound, req.TestID)
	}

	invitation := model.Invitation{
		Token:       uuid.NewString(),
		TestID:      req.TestID,
		Email:       req.Email,
		Status:      model.InvitationStatusPending,
		StudentID:   req.StudentID,
		CandidateID: req.CandidateID,
		CreatedBy:   req.CreatedBy,
	}
	if err := s.invitations.Create(&invitation); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to create invitation")
		return nil, fmt.Errorf("database error creating invitation: %w", err)
	}

	// Seed or bump the assignment counter; a failure here only affects the
	// dashboard aggregate, so it is logged and absorbed.
	if stats, err := s.statsRepo.FindByEmailAndOwner(req.Email, req.CreatedBy); err == nil {
		stats.TestsAssigned++
		if updateErr := s.statsRepo.Update(stats); updateErr != nil {
			log.Error().Err(updateErr).Str("email", req.Email).Msg("Failed to bump assigned tests counter")
		}
	} else if createErr := s.statsRepo.Create(&model.CandidateStats{
		CandidateEmail: req.Email,
		CreatedBy:      req.CreatedBy,
		TestsAssigned:  1,
	}); createErr != nil {
		log.Error().Err(createErr).Str("email", req.Email).Msg("Failed to create candidate stats for invitation")
	}

	return &dto.InvitationCreatedDTO{
		ID:        invitation.ID,
		Token:     invitation.Token,
		TestID:    invitation.TestID,
		Email:     invitation.Email,
		Status:    invitation.Status,
		CreatedAt: invitation.CreatedAt,
	}, nil
}
