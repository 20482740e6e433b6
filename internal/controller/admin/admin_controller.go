package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hireflow/assessment-api/internal/dto"
	"github.com/hireflow/assessment-api/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	adminService service.AdminService
}

func NewAdminController(adminService service.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// CreateTest godoc
// @Summary (Admin) Create a new test
// @Description Create a test with all its sections and questions in one call.
// @Tags Admin
// @Accept json
// @Produce json
// @Param test body dto.TestCreateDTO true "Test definition"
// @Success 201 {object} dto.TestCreatedDTO
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests [post]
func (c *AdminController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	created, err := c.adminService.CreateTest(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateTest: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create test", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// CreateInvitation godoc
// @Summary (Admin) Invite a candidate to a test
// @Description Issues an invitation token binding a candidate email to a test.
// @Tags Admin
// @Accept json
// @Produce json
// @Param invitation body dto.InvitationCreateDTO true "Invitation"
// @Success 201 {object} dto.InvitationCreatedDTO
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/invitations [post]
func (c *AdminController) CreateInvitation(ctx *gin.Context) {
	var req dto.InvitationCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request payload", Details: []string{err.Error()}})
		return
	}

	created, err := c.adminService.CreateInvitation(req)
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Test not found"})
			return
		}
		log.Error().Err(err).Msg("CreateInvitation: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create invitation", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, created)
}
