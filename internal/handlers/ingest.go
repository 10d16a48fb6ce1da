package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecfr-analyzer-backend/internal/logger"
	"github.com/yungbote/ecfr-analyzer-backend/internal/services"
)

type IngestHandler struct {
	log              *logger.Logger
	ingestionService services.IngestionService
}

func NewIngestHandler(log *logger.Logger, ingestionService services.IngestionService) *IngestHandler {
	return &IngestHandler{
		log:              log.With("handler", "IngestHandler"),
		ingestionService: ingestionService,
	}
}

// Trigger acknowledges immediately while ingestion proceeds in the
// background. Re-triggering while a run is active or already complete is a
// no-op acknowledgment; only a failure to start surfaces an error.
func (h *IngestHandler) Trigger(c *gin.Context) {
	state, started, err := h.ingestionService.Trigger(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to start ingestion", "error", err)
		RespondError(c, http.StatusInternalServerError, "ingestion_start_failed", err)
		return
	}
	h.log.Info("Ingestion trigger handled", "state", state, "started", started)
	c.JSON(http.StatusAccepted, gin.H{
		"message": "Database initializing",
		"state":   state,
	})
}

func (h *IngestHandler) Status(c *gin.Context) {
	run, err := h.ingestionService.LatestRun(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to load latest ingestion run", "error", err)
		RespondOK(c, gin.H{"state": h.ingestionService.State()})
		return
	}
	RespondOK(c, gin.H{
		"state":      h.ingestionService.State(),
		"latest_run": run,
	})
}
