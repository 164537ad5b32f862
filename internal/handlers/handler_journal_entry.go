package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalEntryHandler handles HTTP requests related to journal entries.
type journalEntryHandler struct {
	entryService portssvc.JournalEntrySvcFacade
}

func newJournalEntryHandler(entryService portssvc.JournalEntrySvcFacade) *journalEntryHandler {
	return &journalEntryHandler{
		entryService: entryService,
	}
}

// RegisterJournalEntryRoutes registers the journal entry CRUD and workflow routes.
func RegisterJournalEntryRoutes(rg *gin.RouterGroup, entryService portssvc.JournalEntrySvcFacade) {
	h := newJournalEntryHandler(entryService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createJournalEntry)
		entries.GET("", h.listJournalEntries)
		entries.GET("/:id", h.getJournalEntry)
		entries.PUT("/:id", h.updateJournalEntry)
		entries.DELETE("/:id", h.deleteJournalEntry)
		entries.POST("/:id/submit", h.submitJournalEntry)
		entries.POST("/:id/approve", h.approveJournalEntry)
		entries.POST("/:id/reject", h.rejectJournalEntry)
		entries.POST("/:id/confirm", h.confirmJournalEntry)
	}
}

// createJournalEntry godoc
// @Summary Create a journal entry
// @Description Creates a balanced DRAFT journal entry authored by the caller
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid request or unknown account"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Entry does not balance"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalEntryHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.entryService.CreateJournalEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Tags journal-entries
// @Produce  json
// @Param   id path int true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalEntryHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.entryService.GetJournalEntry(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Lists entries newest first with token-based pagination
// @Tags journal-entries
// @Produce  json
// @Param   status query string false "Filter by status" Enums(DRAFT, PENDING, APPROVED, CONFIRMED)
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalEntryHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListJournalEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.entryService.ListJournalEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateJournalEntry godoc
// @Summary Update a DRAFT journal entry
// @Description Replaces date, memo and all lines. The body must carry the version last read.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path int true "Journal entry ID"
// @Param   entry body dto.UpdateJournalEntryRequest true "Replacement content"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft or was modified concurrently"
// @Failure 422 {object} map[string]string "Entry does not balance"
// @Security BearerAuth
// @Router /journal-entries/{id} [put]
func (h *journalEntryHandler) updateJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.entryService.UpdateJournalEntry(c.Request.Context(), id, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteJournalEntry godoc
// @Summary Delete a DRAFT journal entry
// @Tags journal-entries
// @Param   id path int true "Journal entry ID"
// @Param   version query int true "Version last read"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry is not a draft or was modified concurrently"
// @Security BearerAuth
// @Router /journal-entries/{id} [delete]
func (h *journalEntryHandler) deleteJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.entryService.DeleteJournalEntry(c.Request.Context(), id, req.Version, userID); err != nil {
		respondError(c, logger, err, "Failed to delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}

type transitionFunc func(c *gin.Context, id int64, version int64, userID string) (*domain.JournalEntry, error)

// transition binds the version body shared by submit, approve and confirm.
func (h *journalEntryHandler) transition(c *gin.Context, action string, fn transitionFunc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for journal entry transition", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := fn(c, id, req.Version, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to "+action+" journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// submitJournalEntry godoc
// @Summary Submit a DRAFT entry for approval
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path int true "Journal entry ID"
// @Param   body body dto.TransitionRequest true "Version last read"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Transition not allowed or concurrent modification"
// @Security BearerAuth
// @Router /journal-entries/{id}/submit [post]
func (h *journalEntryHandler) submitJournalEntry(c *gin.Context) {
	h.transition(c, "submit", func(c *gin.Context, id, version int64, userID string) (*domain.JournalEntry, error) {
		return h.entryService.SubmitJournalEntry(c.Request.Context(), id, version, userID)
	})
}

// approveJournalEntry godoc
// @Summary Approve a PENDING entry
// @Description The caller is recorded as approver
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path int true "Journal entry ID"
// @Param   body body dto.TransitionRequest true "Version last read"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Transition not allowed or concurrent modification"
// @Security BearerAuth
// @Router /journal-entries/{id}/approve [post]
func (h *journalEntryHandler) approveJournalEntry(c *gin.Context) {
	h.transition(c, "approve", func(c *gin.Context, id, version int64, userID string) (*domain.JournalEntry, error) {
		return h.entryService.ApproveJournalEntry(c.Request.Context(), id, version, userID)
	})
}

// confirmJournalEntry godoc
// @Summary Confirm an APPROVED entry
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path int true "Journal entry ID"
// @Param   body body dto.TransitionRequest true "Version last read"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 409 {object} map[string]string "Transition not allowed or concurrent modification"
// @Security BearerAuth
// @Router /journal-entries/{id}/confirm [post]
func (h *journalEntryHandler) confirmJournalEntry(c *gin.Context) {
	h.transition(c, "confirm", func(c *gin.Context, id, version int64, userID string) (*domain.JournalEntry, error) {
		return h.entryService.ConfirmJournalEntry(c.Request.Context(), id, version, userID)
	})
}

// rejectJournalEntry godoc
// @Summary Reject a PENDING entry
// @Description Sends the entry back to DRAFT and records the reason
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path int true "Journal entry ID"
// @Param   body body dto.RejectJournalEntryRequest true "Reason and version"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 409 {object} map[string]string "Transition not allowed or concurrent modification"
// @Security BearerAuth
// @Router /journal-entries/{id}/reject [post]
func (h *journalEntryHandler) rejectJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.RejectJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RejectJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.entryService.RejectJournalEntry(c.Request.Context(), id, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to reject journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}
