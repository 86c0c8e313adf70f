package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/velora-live/velora/internal/middleware"
	"github.com/velora-live/velora/internal/types"
)

// CurrentUser returns the identity the auth middleware stored on the request
// context. The boolean is false on routes that skipped the middleware.
func CurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, bool) {
	value, exists := ctx.Get(types.ContextUserKey)
	if !exists {
		return middleware.AuthenticatedUser{}, false
	}
	user, ok := value.(middleware.AuthenticatedUser)
	return user, ok
}
