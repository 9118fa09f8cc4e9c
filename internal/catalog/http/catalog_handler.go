// Package http provides HTTP handlers for the public catalog endpoints.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stockbar/stockbar/internal/catalog/http/dto"
	"github.com/stockbar/stockbar/internal/catalog/usecase"
	apperrors "github.com/stockbar/stockbar/internal/errors"
	"github.com/stockbar/stockbar/internal/httputil"
)

// CatalogHandler handles HTTP requests for the read-only catalog.
type CatalogHandler struct {
	catalogUseCase usecase.UseCase
	logger         *slog.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogUseCase usecase.UseCase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase: catalogUseCase,
		logger:         logger,
	}
}

// ListCategories lists categories, optionally filtered by organization.
// GET /api/categories?organizationId=N
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	organizationID, err := parseOrganizationFilter(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	categories, err := h.catalogUseCase.ListCategories(c.Request.Context(), organizationID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponses(categories))
}

// GetCategory retrieves a category by ID.
// GET /api/categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, err := parseCatalogID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	category, err := h.catalogUseCase.GetCategory(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// ListInventoryItems lists inventory items, optionally filtered by organization.
// GET /api/inventory?organizationId=N
func (h *CatalogHandler) ListInventoryItems(c *gin.Context) {
	organizationID, err := parseOrganizationFilter(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	items, err := h.catalogUseCase.ListInventoryItems(c.Request.Context(), organizationID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToInventoryItemResponses(items))
}

// GetInventoryItem retrieves an inventory item by ID.
// GET /api/inventory/:id
func (h *CatalogHandler) GetInventoryItem(c *gin.Context) {
	id, err := parseCatalogID(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	item, err := h.catalogUseCase.GetInventoryItem(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// parseCatalogID parses the :id path parameter.
func parseCatalogID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperrors.New("invalid id")
	}
	return id, nil
}

// parseOrganizationFilter parses the optional organizationId query parameter.
func parseOrganizationFilter(c *gin.Context) (*int64, error) {
	raw := c.Query("organizationId")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return nil, apperrors.New("invalid organizationId filter")
	}
	return &id, nil
}
