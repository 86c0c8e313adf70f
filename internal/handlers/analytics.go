package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velora-live/velora/internal/services"
	"github.com/velora-live/velora/internal/utils"
)

type PointAggregator interface {
	Summary(userID uint, interval, roomID string) ([]services.PointBucket, error)
}

type AnalyticsHandler struct {
	analytics PointAggregator
}

func NewAnalyticsHandler(analytics PointAggregator) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) GetUserAnalytics(ctx *gin.Context) {
	currentUser, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	buckets, err := h.analytics.Summary(currentUser.ID, ctx.Query("interval"), ctx.Query("roomId"))
	if err != nil {
		abortServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"buckets": buckets})
}
