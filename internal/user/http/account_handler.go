// Package http provides HTTP handlers for account operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/stockbar/stockbar/internal/auth/http"
	apperrors "github.com/stockbar/stockbar/internal/errors"
	"github.com/stockbar/stockbar/internal/httputil"
	"github.com/stockbar/stockbar/internal/user/http/dto"
	"github.com/stockbar/stockbar/internal/user/usecase"
)

// AccountHandler handles HTTP requests for the current account.
type AccountHandler struct {
	userUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(userUseCase usecase.UseCase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// GetAccount returns the profile of the authenticated principal.
// GET /api/account
func (h *AccountHandler) GetAccount(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	user, err := h.userUseCase.GetByID(c.Request.Context(), principal.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(user))
}

// Onboarding attaches the authenticated user to an organization and promotes
// it to ADMIN.
// POST /api/account/onboarding
func (h *AccountHandler) Onboarding(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if !req.AcceptTerms {
		httputil.HandleBadRequestGin(c, apperrors.New("terms must be accepted"), h.logger)
		return
	}

	if _, err := h.userUseCase.Onboard(
		c.Request.Context(), principal.ID, req.OrganizationID, req.AcceptTerms,
	); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
