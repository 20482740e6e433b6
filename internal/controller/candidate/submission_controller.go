package candidate

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hireflow/assessment-api/internal/dto"
	"github.com/hireflow/assessment-api/internal/service"
	"github.com/rs/zerolog/log"
)

type SubmissionController struct {
	submissionService service.SubmissionService
	testService       service.CandidateTestService
}

func NewSubmissionController(submissionService service.SubmissionService, testService service.CandidateTestService) *SubmissionController {
	return &SubmissionController{submissionService: submissionService, testService: testService}
}

// GetTest godoc
// @Summary (Candidate) Get a test to take
// @Description Full question list for a test, with reference answers stripped.
// @Tags Candidate
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.CandidateTestDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id} [get]
func (c *SubmissionController) GetTest(ctx *gin.Context) {
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}

	test, err := c.testService.GetTestForCandidate(testID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Test not found"})
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// Submit godoc
// @Summary (Candidate) Submit a completed test
// @Description Scores every answer, aggregates the result and commits it exactly once. A retried submission for the same invitation returns the already committed result with a conflict status.
// @Tags Candidate
// @Accept json
// @Produce json
// @Param submission body dto.SubmissionRequest true "Completed test"
// @Success 201 {object} dto.SubmissionOutcome
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Invitation not found"
// @Failure 409 {object} dto.SubmissionOutcome "Result already submitted"
// @Router /submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	var req dto.SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	outcome, err := c.submissionService.Submit(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvitationNotFound) || errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Msg("Submit: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to process submission", Details: []string{err.Error()}})
		return
	}

	if !outcome.Success {
		ctx.JSON(http.StatusConflict, outcome)
		return
	}
	ctx.JSON(http.StatusCreated, outcome)
}

// GetResult godoc
// @Summary Get a scored result
// @Tags Candidate
// @Produce json
// @Param result_id path int true "Result ID"
// @Success 200 {object} dto.ResultDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Router /results/{result_id} [get]
func (c *SubmissionController) GetResult(ctx *gin.Context) {
	resultID, ok := pathID(ctx, "result_id")
	if !ok {
		return
	}

	result, err := c.submissionService.GetResultDetails(resultID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Result not found"})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ListResults godoc
// @Summary List results for a test
// @Description Historical results with lazily repaired candidate names.
// @Tags Candidate
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {array} dto.ResultSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id}/results [get]
func (c *SubmissionController) ListResults(ctx *gin.Context) {
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return
	}

	results, err := c.submissionService.ListResultsForTest(testID)
	if err != nil {
		log.Error().Err(err).Msg("ListResults: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve results", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, results)
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
