package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hireflow/assessment-api/internal/dto"
	"github.com/hireflow/assessment-api/internal/metrics"
	"github.com/hireflow/assessment-api/internal/model"
	"github.com/hireflow/assessment-api/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrTestNotFound       = errors.New("test not found")
)

// firstAttempt is the only attempt number in scope: tests are single-attempt.
// The field stays on the natural key so multi-attempt support can slot in
// without a schema change.
const firstAttempt = 1

const duplicateSubmissionMessage = "Result already submitted for this invitation"

// SubmissionService runs the scoring pipeline: per-type evaluation of every
// answer, aggregation, candidate name resolution, and the exactly-once commit
// with its downstream side effects.
type SubmissionService interface {
	Submit(ctx context.Context, req dto.SubmissionRequest) (*dto.SubmissionOutcome, error)
	GetResultDetails(resultID uint) (*dto.ResultDetailDTO, error)
	ListResultsForTest(testID uint) ([]dto.ResultSummaryDTO, error)
}

type submissionService struct {
	testRepo     repository.TestRepository
	resultRepo   repository.ResultRepository
	invitations  repository.InvitationRepository
	statsRepo    repository.StatsRepository
	evaluators   EvaluatorRegistry
	nameResolver *NameResolver
}

func NewSubmissionService(
	testRepo repository.TestRepository,
	resultRepo repository.ResultRepository,
	invitations repository.InvitationRepository,
	statsRepo repository.StatsRepository,
	evaluators EvaluatorRegistry,
	nameResolver *NameResolver,
) SubmissionService {
	return &submissionService{
		testRepo:     testRepo,
		resultRepo:   resultRepo,
		invitations:  invitations,
		statsRepo:    statsRepo,
		evaluators:   evaluators,
		nameResolver: nameResolver,
	}
}

// evaluatedAnswer carries one scored answer back from the evaluation fan-out.
type evaluatedAnswer struct {
	answer model.Answer
	index  int
}

func (s *submissionService) Submit(ctx context.Context, req dto.SubmissionRequest) (*dto.SubmissionOutcome, error) {
	invitation, err := s.invitations.FindByID(req.InvitationID)
	if err != nil {
		log.Error().Err(err).Uint("invitationID", req.InvitationID).Msg("Submit: invitation not found")
		return nil, fmt.Errorf("%w: id %d", ErrInvitationNotFound, req.InvitationID)
	}

	test, err := s.testRepo.FindByIDWithQuestions(invitation.TestID)
	if err != nil {
		log.Error().Err(err).Uint("testID", invitation.TestID).Msg("Submit: test not found")
		return nil, fmt.Errorf("%w: id %d", ErrTestNotFound, invitation.TestID)
	}

	questionMap := make(map[uint]*model.Question)
	for si := range test.Sections {
		for qi := range test.Sections[si].Questions {
			q := &test.Sections[si].Questions[qi]
			questionMap[q.ID] = q
		}
	}

	answers := buildAnswers(req.Answers, questionMap)

	// Evaluation fan-out: every answer is independent, so each runs in its
	// own goroutine; written answers hit the AI judge concurrently. The
	// channel drain below is the barrier before aggregation.
	var wg sync.WaitGroup
	resultsChan := make(chan evaluatedAnswer, len(answers))
	for i := range answers {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			ans := answers[idx]
			evaluator, ok := s.evaluators[ans.QuestionType]
			if !ok {
				log.Warn().Str("questionType", ans.QuestionType).Uint("questionID", ans.QuestionID).
					Msg("Submit: no evaluator for question type, awarding zero points")
				ans.Points = 0
				ans.IsCorrect = false
			} else {
				evaluator.Evaluate(ctx, &ans, questionMap[ans.QuestionID])
			}
			resultsChan <- evaluatedAnswer{answer: ans, index: idx}
		}(i)
	}
	wg.Wait()
	close(resultsChan)

	scored := make([]model.Answer, len(answers))
	for ev := range resultsChan {
		scored[ev.index] = ev.answer
	}

	totals := AggregateScore(scored, test.PassingScore)

	candidateEmail := invitation.Email
	if candidateEmail == "" {
		candidateEmail = req.CandidateEmail
	}

	completionDate := time.Now()
	if req.CompletionDate != nil {
		completionDate = *req.CompletionDate
	}

	result := model.Result{
		TestID:          test.ID,
		CandidateName:   s.nameResolver.Resolve(invitation),
		CandidateEmail:  candidateEmail,
		InvitationToken: invitation.Token,
		AttemptNumber:   firstAttempt,
		Answers:         scored,
		TotalPoints:     totals.TotalPoints,
		EarnedPoints:    totals.EarnedPoints,
		CorrectAnswers:  totals.CorrectAnswers,
		Score:           totals.Score,
		Status:          totals.Status,
		StartedAt:       req.StartedAt,
		CompletionDate:  completionDate,
		TimeTaken:       req.Duration,
		StudentID:       invitation.StudentID,
		CandidateID:     invitation.CandidateID,
		CreatedBy:       invitation.CreatedBy,
	}

	inserted, err := s.resultRepo.CreateIfAbsent(&result)
	if err != nil {
		log.Error().Err(err).Uint("testID", test.ID).Str("email", candidateEmail).Msg("Submit: failed to commit result")
		return nil, fmt.Errorf("failed to commit result: %w", err)
	}

	if !inserted {
		existing, findErr := s.resultRepo.FindByNaturalKey(test.ID, candidateEmail, invitation.Token, firstAttempt)
		if findErr != nil {
			log.Error().Err(findErr).Msg("Submit: duplicate detected but existing result could not be loaded")
			return nil, fmt.Errorf("failed to load existing result: %w", findErr)
		}
		metrics.DuplicateSubmissions.Inc()
		log.Info().Uint("resultID", existing.ID).Str("token", invitation.Token).Msg("Submit: duplicate submission, returning existing result")
		return &dto.SubmissionOutcome{
			Success:  false,
			ResultID: existing.ID,
			Message:  duplicateSubmissionMessage,
		}, nil
	}

	metrics.SubmissionsCommitted.Inc()
	s.applySideEffects(invitation, candidateEmail, totals.Score)

	return &dto.SubmissionOutcome{Success: true, ResultID: result.ID}, nil
}

// applySideEffects runs the post-commit state transitions. The result is
// already committed at this point, so failures here are logged and absorbed
// rather than surfaced as a submission failure.
func (s *submissionService) applySideEffects(invitation *model.Invitation, candidateEmail string, score int) {
	if err := s.invitations.MarkCompleted(invitation.ID, time.Now()); err != nil {
		log.Error().Err(err).Uint("invitationID", invitation.ID).Msg("Failed to mark invitation completed")
	}

	stats, err := s.statsRepo.FindByEmailAndOwner(candidateEmail, invitation.CreatedBy)
	if err != nil {
		created := &model.CandidateStats{
			CandidateEmail: candidateEmail,
			CreatedBy:      invitation.CreatedBy,
			TestsAssigned:  1,
			TestsCompleted: 1,
			AverageScore:   float64(score),
			Status:         model.StatsStatusCompleted,
		}
		if createErr := s.statsRepo.Create(created); createErr != nil {
			log.Error().Err(createErr).Str("email", candidateEmail).Msg("Failed to create candidate stats")
		}
		return
	}

	completed := stats.TestsCompleted
	stats.AverageScore = (stats.AverageScore*float64(completed) + float64(score)) / float64(completed+1)
	stats.TestsCompleted = completed + 1
	stats.Status = model.StatsStatusCompleted
	if err := s.statsRepo.Update(stats); err != nil {
		log.Error().Err(err).Str("email", candidateEmail).Msg("Failed to update candidate stats")
	}
}

// buildAnswers maps the submitted payload onto answer records, attaching the
// question's type, choice set and point value from the test definition.
// Answers for questions that are not part of the test are skipped.
func buildAnswers(submitted []dto.SubmittedAnswerDTO, questionMap map[uint]*model.Question) []model.Answer {
	answers := make([]model.Answer, 0, len(submitted))
	for _, sa := range submitted {
		question, exists := questionMap[sa.QuestionID]
		if !exists {
			log.Warn().Uint("questionID", sa.QuestionID).Msg("Submit: answer for a question not part of this test, skipping")
			continue
		}
		answer := model.Answer{
			QuestionID:   question.ID,
			QuestionType: question.Type,
			Value:        datatypes.JSON(sa.Answer),
			Options:      question.Options,
			MaxPoints:    question.MaxPoints,
		}
		if len(sa.CodingTestResults) > 0 {
			if raw, err := json.Marshal(sa.CodingTestResults); err == nil {
				answer.CodingTestResults = datatypes.JSON(raw)
			}
		}
		answers = append(answers, answer)
	}
	return answers
}

func (s *submissionService) GetResultDetails(resultID uint) (*dto.ResultDetailDTO, error) {
	result, err := s.resultRepo.FindByIDWithAnswers(resultID)
	if err != nil {
		log.Error().Err(err).Uint("resultID", resultID).Msg("GetResultDetails: result not found")
		return nil, fmt.Errorf("result not found with ID %d: %w", resultID, err)
	}

	var resp dto.ResultDetailDTO
	if err := copier.Copy(&resp, result); err != nil {
		log.Error().Err(err).Msg("GetResultDetails: failed to copy result to DTO")
		return nil, fmt.Errorf("error preparing result details: %w", err)
	}
	if result.Test.ID != 0 {
		resp.TestTitle = result.Test.Title
	}

	resp.Answers = make([]dto.AnswerResponseDTO, len(result.Answers))
	for i, ans := range result.Answers {
		resp.Answers[i] = answerToDTO(ans)
	}
	return &resp, nil
}

func (s *submissionService) ListResultsForTest(testID uint) ([]dto.ResultSummaryDTO, error) {
	results, err := s.resultRepo.FindAllByTest(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("ListResultsForTest: failed to load results")
		return nil, fmt.Errorf("error fetching results for test %d: %w", testID, err)
	}

	summaries := make([]dto.ResultSummaryDTO, 0, len(results))
	for _, r := range results {
		var summary dto.ResultSummaryDTO
		if err := copier.Copy(&summary, &r); err != nil {
			log.Error().Err(err).Uint("resultID", r.ID).Msg("ListResultsForTest: failed to copy result summary")
			continue
		}
		// Lazy repair: stored names that look derived from the email are
		// re-resolved against the directories for display only.
		summary.CandidateName = s.nameResolver.Repair(r.CandidateName, r.CandidateEmail, r.StudentID, r.CandidateID)
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func answerToDTO(ans model.Answer) dto.AnswerResponseDTO {
	out := dto.AnswerResponseDTO{
		ID:           ans.ID,
		QuestionID:   ans.QuestionID,
		QuestionType: ans.QuestionType,
		Answer:       json.RawMessage(ans.Value),
		MaxPoints:    ans.MaxPoints,
		Points:       ans.Points,
		IsCorrect:    ans.IsCorrect,
		AIScore:      ans.AIScore,
		AIFeedback:   ans.AIFeedback,
	}
	for _, tc := range ans.TestCaseResults() {
		out.CodingTestResults = append(out.CodingTestResults, dto.CodingTestResultDTO{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
			ActualOutput:   tc.ActualOutput,
			Passed:         tc.Passed,
		})
	}
	return out
}
