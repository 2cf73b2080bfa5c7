package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"diarium/internal/errors"
	"diarium/internal/middleware"
	"diarium/internal/model"
	"diarium/internal/service"
)

// DiaryHandler handles diary entry endpoints. All of them run behind
// the access guard, so an authenticated owner is always present.
type DiaryHandler struct {
	diaryService service.DiaryService
}

// NewDiaryHandler creates a new diary handler.
func NewDiaryHandler(diaryService service.DiaryService) *DiaryHandler {
	return &DiaryHandler{diaryService: diaryService}
}

// EntryRequest represents a create or update request for an entry.
type EntryRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// EntryResponse represents a single-entry response.
type EntryResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Entry   *model.DiaryEntry `json:"entry"`
}

// EntryListResponse represents the list response.
type EntryListResponse struct {
	Success bool               `json:"success"`
	Entries []model.DiaryEntry `json:"entries"`
}

// List godoc
// @Summary List the caller's diary entries, most recent first
// @Tags diary
// @Produce json
// @Security BearerAuth
// @Success 200 {object} EntryListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /diary [get]
func (h *DiaryHandler) List(c echo.Context) error {
	owner := middleware.CurrentUser(c)
	if owner == nil {
		return errors.ErrUnauthenticated
	}

	entries, err := h.diaryService.List(c.Request().Context(), owner.ID)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []model.DiaryEntry{}
	}

	return c.JSON(http.StatusOK, EntryListResponse{
		Success: true,
		Entries: entries,
	})
}

// Get godoc
// @Summary Get a single diary entry by ID
// @Tags diary
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} EntryResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /diary/{id} [get]
func (h *DiaryHandler) Get(c echo.Context) error {
	owner := middleware.CurrentUser(c)
	if owner == nil {
		return errors.ErrUnauthenticated
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An unparseable ID can never match an entry; same not-found
		// answer as an entry owned by someone else.
		return errors.ErrEntryNotFound
	}

	entry, err := h.diaryService.Get(c.Request().Context(), id, owner.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, EntryResponse{
		Success: true,
		Entry:   entry,
	})
}

// Create godoc
// @Summary Create a diary entry
// @Tags diary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EntryRequest true "Entry data"
// @Success 201 {object} EntryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /diary [post]
func (h *DiaryHandler) Create(c echo.Context) error {
	owner := middleware.CurrentUser(c)
	if owner == nil {
		return errors.ErrUnauthenticated
	}

	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		return errors.NewValidationError("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errors.NewValidationError("Title and content are required")
	}

	entry, err := h.diaryService.Create(c.Request().Context(), owner.ID, req.Title, req.Content)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, EntryResponse{
		Success: true,
		Message: "Diary entry saved successfully!",
		Entry:   entry,
	})
}

// Update godoc
// @Summary Update a diary entry
// @Tags diary
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param request body EntryRequest true "Entry data"
// @Success 200 {object} EntryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /diary/{id} [put]
func (h *DiaryHandler) Update(c echo.Context) error {
	owner := middleware.CurrentUser(c)
	if owner == nil {
		return errors.ErrUnauthenticated
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.ErrEntryNotFound
	}

	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		return errors.NewValidationError("Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errors.NewValidationError("Title and content are required")
	}

	entry, err := h.diaryService.Update(c.Request().Context(), id, owner.ID, req.Title, req.Content)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, EntryResponse{
		Success: true,
		Message: "Entry updated successfully!",
		Entry:   entry,
	})
}

// Delete godoc
// @Summary Delete a diary entry
// @Tags diary
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /diary/{id} [delete]
func (h *DiaryHandler) Delete(c echo.Context) error {
	owner := middleware.CurrentUser(c)
	if owner == nil {
		return errors.ErrUnauthenticated
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errors.ErrEntryNotFound
	}

	if err := h.diaryService.Delete(c.Request().Context(), id, owner.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Entry deleted successfully!",
	})
}
