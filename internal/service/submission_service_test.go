package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hireflow/assessment-api/internal/dto"
	"github.com/hireflow/assessment-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeTestRepo struct {
	tests map[uint]*model.Test
}

func (f *fakeTestRepo) Create(test *model.Test) error { return nil }

func (f *fakeTestRepo) FindByID(id uint) (*model.Test, error) {
	return f.FindByIDWithQuestions(id)
}

func (f *fakeTestRepo) FindByIDWithQuestions(id uint) (*model.Test, error) {
	if t, ok := f.tests[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// fakeResultRepo enforces the natural-key uniqueness with a mutex, the same
// guarantee the postgres unique index provides.
type fakeResultRepo struct {
	mu     sync.Mutex
	nextID uint
	byKey  map[string]*model.Result
	byID   map[uint]*model.Result
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{byKey: map[string]*model.Result{}, byID: map[uint]*model.Result{}}
}

func naturalKey(testID uint, email, token string, attempt int) string {
	return fmt.Sprintf("%d|%s|%s|%d", testID, email, token, attempt)
}

func (f *fakeResultRepo) CreateIfAbsent(result *model.Result) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := naturalKey(result.TestID, result.CandidateEmail, result.InvitationToken, result.AttemptNumber)
	if _, exists := f.byKey[key]; exists {
		return false, nil
	}
	f.nextID++
	result.ID = f.nextID
	stored := *result
	f.byKey[key] = &stored
	f.byID[result.ID] = &stored
	return true, nil
}

func (f *fakeResultRepo) FindByNaturalKey(testID uint, email, token string, attempt int) (*model.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.byKey[naturalKey(testID, email, token, attempt)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResultRepo) FindByIDWithAnswers(id uint) (*model.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResultRepo) FindAllByTest(testID uint) ([]model.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Result
	for _, r := range f.byID {
		if r.TestID == testID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeInvitationRepo struct {
	mu          sync.Mutex
	invitations map[uint]*model.Invitation
	completed   map[uint]time.Time
}

func newFakeInvitationRepo(invs ...*model.Invitation) *fakeInvitationRepo {
	f := &fakeInvitationRepo{invitations: map[uint]*model.Invitation{}, completed: map[uint]time.Time{}}
	for _, inv := range invs {
		f.invitations[inv.ID] = inv
	}
	return f
}

func (f *fakeInvitationRepo) Create(inv *model.Invitation) error {
	f.invitations[inv.ID] = inv
	return nil
}

func (f *fakeInvitationRepo) FindByID(id uint) (*model.Invitation, error) {
	if inv, ok := f.invitations[id]; ok {
		return inv, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInvitationRepo) FindByToken(token string) (*model.Invitation, error) {
	for _, inv := range f.invitations {
		if inv.Token == token {
			return inv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInvitationRepo) MarkCompleted(id uint, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed[id] = at
	return nil
}

type fakeStatsRepo struct {
	mu    sync.Mutex
	stats map[string]*model.CandidateStats
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{stats: map[string]*model.CandidateStats{}}
}

func (f *fakeStatsRepo) FindByEmailAndOwner(email, owner string) (*model.CandidateStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.stats[email+"|"+owner]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStatsRepo) Create(s *model.CandidateStats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats[s.CandidateEmail+"|"+s.CreatedBy] = s
	return nil
}

func (f *fakeStatsRepo) Update(s *model.CandidateStats) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats[s.CandidateEmail+"|"+s.CreatedBy] = s
	return nil
}

func fixtureTest() *model.Test {
	return &model.Test{
		ID:           42,
		Title:        "Backend Screening",
		PassingScore: 70,
		Sections: []model.Section{
			{
				ID: 1,
				Questions: []model.Question{
					{
						ID:            101,
						Type:          model.QuestionTypeMultipleChoice,
						Text:          "Pick the capital of France",
						Options:       datatypes.JSON(`["London","Paris","Rome"]`),
						CorrectAnswer: datatypes.JSON(`"Paris"`),
						MaxPoints:     10,
					},
					{
						ID:        102,
						Type:      model.QuestionTypeWrittenAnswer,
						Text:      "Explain HTTP caching",
						MaxPoints: 10,
					},
				},
			},
		},
	}
}

func fixtureInvitation() *model.Invitation {
	return &model.Invitation{
		ID:        5,
		Token:     "tok-abc",
		TestID:    42,
		Email:     "jane.doe@x.com",
		Status:    model.InvitationStatusPending,
		CreatedBy: "recruiter@corp.com",
	}
}

func newPipeline(t *testing.T, judge JudgeClient) (SubmissionService, *fakeResultRepo, *fakeInvitationRepo, *fakeStatsRepo) {
	t.Helper()
	testRepo := &fakeTestRepo{tests: map[uint]*model.Test{42: fixtureTest()}}
	resultRepo := newFakeResultRepo()
	invRepo := newFakeInvitationRepo(fixtureInvitation())
	statsRepo := newFakeStatsRepo()
	students, candidates := emptyDirectories()
	svc := NewSubmissionService(
		testRepo,
		resultRepo,
		invRepo,
		statsRepo,
		NewEvaluatorRegistry(judge, 15),
		NewNameResolver(students, candidates),
	)
	return svc, resultRepo, invRepo, statsRepo
}

func fixtureRequest() dto.SubmissionRequest {
	return dto.SubmissionRequest{
		InvitationID: 5,
		Answers: []dto.SubmittedAnswerDTO{
			{QuestionID: 101, Answer: []byte(`"paris"`)},
			{QuestionID: 102, Answer: []byte(`"Caches keep copies of responses close to clients."`)},
		},
	}
}

func TestSubmit_ScoresAndCommits(t *testing.T) {
	judge := &stubJudge{verdict: JudgeVerdict{Status: JudgeOK, Score: 80, Feedback: "Solid."}}
	svc, resultRepo, invRepo, statsRepo := newPipeline(t, judge)

	outcome, err := svc.Submit(context.Background(), fixtureRequest())
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	require.NotZero(t, outcome.ResultID)

	stored, err := resultRepo.FindByIDWithAnswers(outcome.ResultID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, stored.TotalPoints)
	assert.Equal(t, 18.0, stored.EarnedPoints) // 10 MCQ + round(80/100*10)
	assert.Equal(t, 90, stored.Score)
	assert.Equal(t, model.ResultStatusPassed, stored.Status)
	assert.Equal(t, 2, stored.CorrectAnswers)
	assert.Equal(t, 1, stored.AttemptNumber)
	assert.Equal(t, "jane.doe", stored.CandidateName) // no directory record
	assert.Equal(t, "tok-abc", stored.InvitationToken)

	// Side effects applied after the commit.
	_, completed := invRepo.completed[5]
	assert.True(t, completed)
	stats, err := statsRepo.FindByEmailAndOwner("jane.doe@x.com", "recruiter@corp.com")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TestsCompleted)
	assert.Equal(t, 1, stats.TestsAssigned)
	assert.Equal(t, 90.0, stats.AverageScore)
	assert.Equal(t, model.StatsStatusCompleted, stats.Status)
}

func TestSubmit_DuplicateReturnsExistingResult(t *testing.T) {
	judge := &stubJudge{verdict: JudgeVerdict{Status: JudgeOK, Score: 80, Feedback: "Solid."}}
	svc, _, _, statsRepo := newPipeline(t, judge)

	first, err := svc.Submit(context.Background(), fixtureRequest())
	require.NoError(t, err)
	require.True(t, first.Success)

	second, err := svc.Submit(context.Background(), fixtureRequest())
	require.NoError(t, err)
	assert.False(t, second.Success)
	assert.Equal(t, first.ResultID, second.ResultID)
	assert.Equal(t, "Result already submitted for this invitation", second.Message)

	// The duplicate path must not re-run the side effects.
	stats, err := statsRepo.FindByEmailAndOwner("jane.doe@x.com", "recruiter@corp.com")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TestsCompleted)
}

func TestSubmit_ConcurrentDuplicatesCommitOnce(t *testing.T) {
	judge := &stubJudge{verdict: JudgeVerdict{Status: JudgeUnavailable}}
	svc, resultRepo, _, _ := newPipeline(t, judge)

	const attempts = 8
	outcomes := make([]*dto.SubmissionOutcome, attempts)
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			outcomes[idx], errs[idx] = svc.Submit(context.Background(), fixtureRequest())
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	winners := 0
	var winnerID uint
	for _, o := range outcomes {
		if o.Success {
			winners++
			winnerID = o.ResultID
		}
	}
	assert.Equal(t, 1, winners)
	for _, o := range outcomes {
		assert.Equal(t, winnerID, o.ResultID) // losers observe the winner's id
	}
	assert.Len(t, resultRepo.byID, 1)
}

func TestSubmit_InvitationMissing(t *testing.T) {
	judge := &stubJudge{verdict: JudgeVerdict{Status: JudgeUnavailable}}
	svc, _, _, _ := newPipeline(t, judge)

	req := fixtureRequest()
	req.InvitationID = 999
	_, err := svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvitationNotFound)
}

func TestSubmit_JudgeOutageStillCompletes(t *testing.T) {
	judge := &stubJudge{verdict: JudgeVerdict{Status: JudgeFailed}}
	svc, resultRepo, _, _ := newPipeline(t, judge)

	outcome, err := svc.Submit(context.Background(), fixtureRequest())
	require.NoError(t, err)
	require.True(t, outcome.Success)

	stored, err := resultRepo.FindByIDWithAnswers(outcome.ResultID)
	require.NoError(t, err)
	// The MCQ still earns credit; the written answer degrades to zero.
	assert.Equal(t, 10.0, stored.EarnedPoints)
	assert.Equal(t, 50, stored.Score)
	assert.Equal(t, model.ResultStatusFailed, stored.Status)
	for _, ans := range stored.Answers {
		if ans.QuestionType == model.QuestionTypeWrittenAnswer {
			assert.Equal(t, "AI evaluation failed.", ans.AIFeedback)
			assert.Zero(t, ans.Points)
		}
	}
}

func TestSubmit_EmptyAnswerSet(t *testing.T) {
	judge := &stubJudge{verdict: JudgeVerdict{Status: JudgeUnavailable}}
	svc, resultRepo, _, _ := newPipeline(t, judge)

	req := fixtureRequest()
	req.Answers = nil
	outcome, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.True(t, outcome.Success)

	stored, err := resultRepo.FindByIDWithAnswers(outcome.ResultID)
	require.NoError(t, err)
	assert.Zero(t, stored.TotalPoints)
	assert.Zero(t, stored.Score)
	assert.Equal(t, model.ResultStatusFailed, stored.Status)
}

func TestSubmit_SkipsAnswersForUnknownQuestions(t *testing.T) {
	judge := &stubJudge{verdict: JudgeVerdict{Status: JudgeUnavailable}}
	svc, resultRepo, _, _ := newPipeline(t, judge)

	req := fixtureRequest()
	req.Answers = append(req.Answers, dto.SubmittedAnswerDTO{QuestionID: 777, Answer: []byte(`"stray"`)})
	outcome, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	stored, err := resultRepo.FindByIDWithAnswers(outcome.ResultID)
	require.NoError(t, err)
	assert.Len(t, stored.Answers, 2)
}

func TestListResultsForTest_RepairsAutoGeneratedNames(t *testing.T) {
	judge := &stubJudge{verdict: JudgeVerdict{Status: JudgeOK, Score: 90, Feedback: "Good."}}
	testRepo := &fakeTestRepo{tests: map[uint]*model.Test{42: fixtureTest()}}
	resultRepo := newFakeResultRepo()
	invRepo := newFakeInvitationRepo(fixtureInvitation())
	statsRepo := newFakeStatsRepo()
	students, candidates := emptyDirectories()
	svc := NewSubmissionService(testRepo, resultRepo, invRepo, statsRepo,
		NewEvaluatorRegistry(judge, 15), NewNameResolver(students, candidates))

	outcome, err := svc.Submit(context.Background(), fixtureRequest())
	require.NoError(t, err)
	require.True(t, outcome.Success)

	// The directory record appears after the result was stored with a
	// name derived from the email; listing repairs it on the fly.
	students.byEmail["jane.doe@x.com"] = &model.Student{FirstName: "Jane", LastName: "Doe"}

	summaries, err := svc.ListResultsForTest(42)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Jane Doe", summaries[0].CandidateName)
}
