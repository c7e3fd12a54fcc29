package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adampierre-jpg/kettlebell-vbt/internal/domain/analysis"
	apperrors "github.com/adampierre-jpg/kettlebell-vbt/pkg/errors"
)

// Handler wires the HTTP transport to the analysis service.
type Handler struct {
	analysisSvc analysis.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(analysisSvc analysis.Service, logger *slog.Logger) *Handler {
	return &Handler{
		analysisSvc: analysisSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// Analyze runs a protocol-driven video analysis.
func (h *Handler) Analyze(c *gin.Context) {
	var req analysis.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.analysisSvc.Analyze(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		code := "analysis_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "model_error"):
			status = http.StatusBadGateway
			code = "model_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListAnalyses returns recent analysis records.
func (h *Handler) ListAnalyses(c *gin.Context) {
	records, err := h.analysisSvc.History(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "history_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": records})
}

// GetAnalysis returns a single analysis record by id.
func (h *Handler) GetAnalysis(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid analysis id", err))
		return
	}
	rec, ok, err := h.analysisSvc.HistoryByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "history_failed", errMessage(err), err))
		return
	}
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "analysis not found", nil))
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
