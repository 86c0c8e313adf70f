package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/velora-live/velora/internal/models"
	"github.com/velora-live/velora/internal/services"
	"github.com/velora-live/velora/internal/types"
)

// abortServiceError translates service error kinds to HTTP responses. An
// unrecognized error becomes a 500 without leaking its message.
func abortServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, services.ErrProfileNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
	case errors.Is(err, services.ErrEmailTaken):
		ctx.JSON(http.StatusConflict, gin.H{"error": "Email already taken"})
	case errors.Is(err, services.ErrInsufficientCredits):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Not enough credits"})
	case errors.Is(err, services.ErrInvalidCreditsKind):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown credits operation"})
	case errors.Is(err, services.ErrSearchQueryRequired):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func userResponse(user *models.User) types.UserResponse {
	return types.UserResponse{
		ID:       user.ID,
		PublicID: user.PublicID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		Avatar:   user.Avatar,
		Frame:    user.Frame,
		Credits:  user.Credits,
		Level:    user.Level,
	}
}

func userSummaries(users []models.User) []types.UserSummary {
	summaries := make([]types.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, types.UserSummary{
			PublicID: user.PublicID,
			Name:     user.Name,
			Avatar:   user.Avatar,
			Level:    user.Level,
			Credits:  user.Credits,
		})
	}
	return summaries
}
