// Package http provides HTTP handlers for organization operations.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/stockbar/stockbar/internal/errors"
	"github.com/stockbar/stockbar/internal/httputil"
	"github.com/stockbar/stockbar/internal/organization/http/dto"
	"github.com/stockbar/stockbar/internal/organization/usecase"
)

// OrganizationHandler handles HTTP requests for organization operations.
type OrganizationHandler struct {
	orgUseCase usecase.UseCase
	logger     *slog.Logger
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgUseCase usecase.UseCase, logger *slog.Logger) *OrganizationHandler {
	return &OrganizationHandler{
		orgUseCase: orgUseCase,
		logger:     logger,
	}
}

// Create creates a new organization.
// POST /api/organizations
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req dto.OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	org, err := h.orgUseCase.Create(c.Request.Context(), dto.ToOrganizationInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// Get retrieves an organization by ID.
// GET /api/organizations/:id
func (h *OrganizationHandler) Get(c *gin.Context) {
	id, err := parseOrganizationID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	org, err := h.orgUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// List retrieves all organizations.
// GET /api/organizations
func (h *OrganizationHandler) List(c *gin.Context) {
	orgs, err := h.orgUseCase.GetAll(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponses(orgs))
}

// Update updates an existing organization.
// PUT /api/organizations/:id
func (h *OrganizationHandler) Update(c *gin.Context) {
	id, err := parseOrganizationID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	org, err := h.orgUseCase.Update(c.Request.Context(), id, dto.ToOrganizationInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// parseOrganizationID parses the :id path parameter.
func parseOrganizationID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperrors.New("invalid organization id")
	}
	return id, nil
}
