package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/ledger_engine/internal/core/autojournal"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type autoJournalHandler struct {
	autoJournalService portssvc.AutoJournalSvcFacade
}

func newAutoJournalHandler(svc portssvc.AutoJournalSvcFacade) *autoJournalHandler {
	return &autoJournalHandler{autoJournalService: svc}
}

// RegisterAutoJournalRoutes registers pattern management and execution routes.
func RegisterAutoJournalRoutes(rg *gin.RouterGroup, svc portssvc.AutoJournalSvcFacade) {
	h := newAutoJournalHandler(svc)

	patterns := rg.Group("/auto-journal/patterns")
	{
		patterns.POST("", h.createPattern)
		patterns.GET("", h.listPatterns)
		patterns.GET("/:id", h.getPattern)
		patterns.PUT("/:id/active", h.setPatternActive)
		patterns.POST("/:id/execute", h.executePattern)
		patterns.POST("/:id/execute-batch", h.executeBatch)
		patterns.GET("/:id/logs", h.listLogs)
	}
}

// createPattern godoc
// @Summary Register an auto-journal pattern
// @Description Formulas and account codes are checked before the pattern is stored
// @Tags auto-journal
// @Accept  json
// @Produce  json
// @Param   pattern body dto.CreatePatternRequest true "Pattern with items"
// @Success 201 {object} dto.PatternResponse
// @Failure 400 {object} map[string]string "Invalid pattern"
// @Failure 409 {object} map[string]string "Pattern code already exists"
// @Security BearerAuth
// @Router /auto-journal/patterns [post]
func (h *autoJournalHandler) createPattern(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePattern", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	pattern, err := h.autoJournalService.CreatePattern(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create pattern")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPatternResponse(pattern))
}

// listPatterns godoc
// @Summary List auto-journal patterns
// @Tags auto-journal
// @Produce  json
// @Param   activeOnly query bool false "Only active patterns"
// @Success 200 {array} dto.PatternResponse
// @Security BearerAuth
// @Router /auto-journal/patterns [get]
func (h *autoJournalHandler) listPatterns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	activeOnly, err := strconv.ParseBool(c.DefaultQuery("activeOnly", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activeOnly"})
		return
	}

	patterns, err := h.autoJournalService.ListPatterns(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, logger, err, "Failed to list patterns")
		return
	}
	c.JSON(http.StatusOK, dto.ToPatternResponses(patterns))
}

// getPattern godoc
// @Summary Get an auto-journal pattern
// @Tags auto-journal
// @Produce  json
// @Param   id path int true "Pattern ID"
// @Success 200 {object} dto.PatternResponse
// @Failure 404 {object} map[string]string "Pattern not found"
// @Security BearerAuth
// @Router /auto-journal/patterns/{id} [get]
func (h *autoJournalHandler) getPattern(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	pattern, err := h.autoJournalService.GetPattern(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve pattern")
		return
	}
	c.JSON(http.StatusOK, dto.ToPatternResponse(pattern))
}

// setPatternActive godoc
// @Summary Activate or deactivate a pattern
// @Tags auto-journal
// @Accept  json
// @Param   id path int true "Pattern ID"
// @Param   body body dto.SetPatternActiveRequest true "Desired state"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Pattern not found"
// @Security BearerAuth
// @Router /auto-journal/patterns/{id}/active [put]
func (h *autoJournalHandler) setPatternActive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.SetPatternActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.autoJournalService.SetPatternActive(c.Request.Context(), id, *req.IsActive, userID); err != nil {
		respondError(c, logger, err, "Failed to update pattern")
		return
	}
	c.Status(http.StatusNoContent)
}

// executePattern godoc
// @Summary Generate one journal entry from a pattern
// @Description Evaluates every item against params and stores the result as a DRAFT entry. A log is always written.
// @Tags auto-journal
// @Accept  json
// @Produce  json
// @Param   id path int true "Pattern ID"
// @Param   body body dto.ExecutePatternRequest true "Journal date and parameters"
// @Success 201 {object} dto.ExecutionResponse
// @Failure 404 {object} map[string]string "Pattern not found"
// @Failure 422 {object} dto.ExecutionFailureResponse "Generation failed; body carries the log"
// @Security BearerAuth
// @Router /auto-journal/patterns/{id}/execute [post]
func (h *autoJournalHandler) executePattern(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ExecutePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ExecutePattern", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	res, err := h.autoJournalService.Execute(c.Request.Context(), id, req, userID)
	if err != nil {
		if res == nil {
			respondError(c, logger, err, "Failed to execute pattern")
			return
		}
		c.JSON(executionFailureStatus(err), dto.ExecutionFailureResponse{
			Error: err.Error(),
			Log:   dto.ToExecutionLogResponse(res.Log),
		})
		return
	}
	c.JSON(http.StatusCreated, toExecutionResponse(res))
}

// executeBatch godoc
// @Summary Generate journal entries for several parameter sets
// @Description Successful sets are stored together; failed sets are reported by index
// @Tags auto-journal
// @Accept  json
// @Produce  json
// @Param   id path int true "Pattern ID"
// @Param   body body dto.ExecuteBatchRequest true "Journal date and parameter sets"
// @Success 200 {object} dto.BatchExecutionResponse
// @Failure 404 {object} map[string]string "Pattern not found"
// @Failure 500 {object} dto.ExecutionFailureResponse "Entries could not be stored; body carries the log"
// @Security BearerAuth
// @Router /auto-journal/patterns/{id}/execute-batch [post]
func (h *autoJournalHandler) executeBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ExecuteBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ExecuteBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	res, err := h.autoJournalService.ExecuteBatch(c.Request.Context(), id, req, userID)
	if err != nil {
		if res == nil {
			respondError(c, logger, err, "Failed to execute pattern batch")
			return
		}
		c.JSON(executionFailureStatus(err), dto.ExecutionFailureResponse{
			Error: err.Error(),
			Log:   dto.ToExecutionLogResponse(res.Log),
		})
		return
	}
	c.JSON(http.StatusOK, toBatchExecutionResponse(res))
}

// listLogs godoc
// @Summary List execution logs of a pattern
// @Tags auto-journal
// @Produce  json
// @Param   id path int true "Pattern ID"
// @Param   limit query int false "Maximum number of logs" default(50)
// @Success 200 {array} dto.ExecutionLogResponse
// @Failure 404 {object} map[string]string "Pattern not found"
// @Security BearerAuth
// @Router /auto-journal/patterns/{id}/logs [get]
func (h *autoJournalHandler) listLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var params dto.ListLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logs, err := h.autoJournalService.ListExecutionLogs(c.Request.Context(), id, params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list execution logs")
		return
	}
	c.JSON(http.StatusOK, dto.ToExecutionLogResponses(logs))
}

// executionFailureStatus reports generation failures as 422 and storage failures as 500.
func executionFailureStatus(err error) int {
	if statusForError(err) == http.StatusInternalServerError {
		return http.StatusInternalServerError
	}
	return http.StatusUnprocessableEntity
}

func toExecutionResponse(res *autojournal.Result) dto.ExecutionResponse {
	resp := dto.ExecutionResponse{Log: dto.ToExecutionLogResponse(res.Log)}
	if res.Entry != nil {
		entry := dto.ToJournalEntryResponse(res.Entry)
		resp.Entry = &entry
	}
	return resp
}

func toBatchExecutionResponse(res *autojournal.BatchResult) dto.BatchExecutionResponse {
	resp := dto.BatchExecutionResponse{
		Entries: dto.ToJournalEntryResponses(res.Entries),
		Log:     dto.ToExecutionLogResponse(res.Log),
	}
	for _, f := range res.Failures {
		resp.Failures = append(resp.Failures, dto.BatchFailureResponse{Index: f.Index, Error: f.Err.Error()})
	}
	return resp
}
