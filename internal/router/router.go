package router

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/velora-live/velora/internal/config"
	"github.com/velora-live/velora/internal/handlers"
	"github.com/velora-live/velora/internal/middleware"
	"github.com/velora-live/velora/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewRouter(conn *gorm.DB, logger *zap.Logger, cfg config.Config) *gin.Engine {
	userService := services.NewUserService(conn, logger)
	profileService := services.NewProfileService(conn, logger)
	analyticsService := services.NewAnalyticsService(conn, logger)

	authHandler := handlers.NewAuthHandler(userService, cfg.Domain)
	userHandler := handlers.NewUserHandler(userService)
	profileHandler := handlers.NewProfileHandler(profileService, userService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(cfg),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authRequired := middleware.AuthMiddleware(conn)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		users := api.Group("/users", authRequired)
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.GetUsers)
			users.GET("/:userId", userHandler.GetUser)
			users.PATCH("/:userId", userHandler.UpdateUser)
			users.DELETE("/:userId", userHandler.DeleteUser)

			users.POST("/me/credits", userHandler.ManageCredits)
			users.POST("/friends/:userId", userHandler.AddFriend)
		}

		profile := api.Group("/profile", authRequired)
		{
			profile.GET("/me", profileHandler.GetMainProfile)
			profile.PUT("/me", profileHandler.UpdateMainProfile)

			profile.GET("/search/:param", profileHandler.SearchUsers)

			profile.GET("/:userId", profileHandler.GetPublicProfile)
			profile.GET("/:userId/friends", profileHandler.GetFriendsList)
			profile.GET("/:userId/followers", profileHandler.GetFollowersList)
			profile.GET("/:userId/following", profileHandler.GetFollowingList)
			profile.GET("/:userId/blocked", profileHandler.GetBlockedList)

			profile.GET("/:userId/vipLevel", profileHandler.GetVipLevel)
			profile.GET("/:userId/proExpiration", profileHandler.GetProExpiration)
			profile.GET("/:userId/storeSections", profileHandler.GetStoreSections)
			profile.GET("/:userId/level", profileHandler.GetUserLevel)
			profile.GET("/:userId/creditsHistory", profileHandler.GetCreditsHistory)
			profile.GET("/:userId/creditsAgency", profileHandler.GetCreditsAgency)
			profile.GET("/:userId/hostAgencyData", profileHandler.GetHostAgencyData)
			profile.GET("/:userId/joinRequests", profileHandler.GetJoinRequests)

			profile.POST("/:userId/follow", profileHandler.FollowUser)
			profile.POST("/:userId/unfollow", profileHandler.UnfollowUser)
			profile.POST("/:userId/block", profileHandler.BlockUser)
			profile.POST("/:userId/unblock", profileHandler.UnblockUser)
		}

		analytics := api.Group("/analytics", authRequired)
		{
			analytics.GET("/user", analyticsHandler.GetUserAnalytics)
		}
	}

	return r
}

func allowedOrigins(cfg config.Config) []string {
	origins := []string{"http://localhost:3000", "http://localhost:5173"}

	if cfg.AllowedOrigins != "" {
		for _, origin := range strings.Split(cfg.AllowedOrigins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
