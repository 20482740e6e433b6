package service

import (
	"fmt"

	"github.com/hireflow/assessment-api/internal/dto"
	"github.com/hireflow/assessment-api/internal/repository"
	"github.com/rs/zerolog/log"
)

// CandidateTestService serves the candidate-facing view of a test: the full
// question list with reference answers stripped out.
type CandidateTestService interface {
	GetTestForCandidate(testID uint) (*dto.CandidateTestDTO, error)
}

type candidateTestService struct {
	testRepo repository.TestRepository
}

func NewCandidateTestService(testRepo repository.TestRepository) CandidateTestService {
	return &candidateTestService{testRepo: testRepo}
}

func (s *candidateTestService) GetTestForCandidate(testID uint) (*dto.CandidateTestDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("GetTestForCandidate: test not found")
		return nil, fmt.Errorf("%w: id %d", ErrTestNotFound, testID)
	}

	resp := dto.CandidateTestDTO{
		ID:              test.ID,
		Title:           test.Title,
		Description:     test.Description,
		DurationMinutes: test.DurationMinutes,
	}
	for _, sec := range test.Sections {
		secDTO := dto.CandidateSectionDTO{
			ID:    sec.ID,
			Title: sec.Title,
			Order: sec.Order,
		}
		for _, q := range sec.Questions {
			secDTO.Questions = append(secDTO.Questions, dto.CandidateQuestionDTO{
				ID:        q.ID,
				Text:      q.Text,
				Type:      q.Type,
				Options:   q.OptionList(),
				MaxPoints: q.MaxPoints,
				Order:     q.Order,
			})
		}
		resp.Sections = append(resp.Sections, secDTO)
	}
	return &resp, nil
}
