package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecfr-analyzer-backend/internal/logger"
	"github.com/yungbote/ecfr-analyzer-backend/internal/services"
	"github.com/yungbote/ecfr-analyzer-backend/internal/types"
)

type AgencyHandler struct {
	log          *logger.Logger
	statsService services.StatsService
}

func NewAgencyHandler(log *logger.Logger, statsService services.StatsService) *AgencyHandler {
	return &AgencyHandler{
		log:          log.With("handler", "AgencyHandler"),
		statsService: statsService,
	}
}

// ListAgencies returns every agency with its word total and deduplicated
// references. A storage error is logged and answered with an empty list so
// a dashboard that has not ingested yet reads "still initializing" rather
// than a 5xx.
func (h *AgencyHandler) ListAgencies(c *gin.Context) {
	agencies, err := h.statsService.ListAgenciesWithTotals(c.Request.Context(), nil)
	if err != nil {
		h.log.Error("ListAgencies failed", "error", err)
		RespondOK(c, gin.H{"agencies": []*types.AgencyWithWordCount{}})
		return
	}
	RespondOK(c, gin.H{"agencies": agencies})
}

// AgencyWords returns the top words for one agency. A non-numeric id is
// rejected with 400 before any query runs; ?date= narrows to one effective
// date and ?limit= caps the result.
func (h *AgencyHandler) AgencyWords(c *gin.Context) {
	agencyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_agency_id", err)
		return
	}

	date := c.Query("date")
	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
	}

	words, err := h.statsService.AgencyWordCounts(c.Request.Context(), nil, uint(agencyID), date, limit)
	if err != nil {
		h.log.Error("AgencyWords failed", "error", err, "agency_id", agencyID)
		RespondOK(c, gin.H{"words": []*types.WordCount{}})
		return
	}
	RespondOK(c, gin.H{"words": words})
}

// ListDates returns the distinct effective dates with word-count data,
// newest first.
func (h *AgencyHandler) ListDates(c *gin.Context) {
	dates, err := h.statsService.AvailableDates(c.Request.Context(), nil)
	if err != nil {
		h.log.Error("ListDates failed", "error", err)
		RespondOK(c, gin.H{"dates": []string{}})
		return
	}
	if dates == nil {
		dates = []string{}
	}
	RespondOK(c, gin.H{"dates": dates})
}
