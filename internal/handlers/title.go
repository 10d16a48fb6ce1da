package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecfr-analyzer-backend/internal/logger"
	"github.com/yungbote/ecfr-analyzer-backend/internal/services"
	"github.com/yungbote/ecfr-analyzer-backend/internal/types"
)

type TitleHandler struct {
	log          *logger.Logger
	statsService services.StatsService
}

func NewTitleHandler(log *logger.Logger, statsService services.StatsService) *TitleHandler {
	return &TitleHandler{
		log:          log.With("handler", "TitleHandler"),
		statsService: statsService,
	}
}

func (h *TitleHandler) ListTitles(c *gin.Context) {
	titles, err := h.statsService.ListTitles(c.Request.Context(), nil)
	if err != nil {
		h.log.Error("ListTitles failed", "error", err)
		RespondOK(c, gin.H{"titles": []*types.Title{}})
		return
	}
	RespondOK(c, gin.H{"titles": titles})
}
