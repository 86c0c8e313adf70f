package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/velora-live/velora/internal/models"
	"github.com/velora-live/velora/internal/services"
	"github.com/velora-live/velora/internal/types"
	"github.com/velora-live/velora/internal/utils"
	"gorm.io/datatypes"
)

type ProfileReader interface {
	GetMain(userID uint) (*models.Profile, *models.User, error)
	UpdateMain(userID uint, in services.UpdateProfileInput) (*models.Profile, error)
	GetPublic(publicID string) (*services.PublicProfile, error)
	VipLevel(publicID string) (int, error)
	ProExpiration(publicID string) (*time.Time, error)
	StoreSections() ([]models.StoreSection, error)
	UserLevel(publicID string) (*services.LevelInfo, error)
	CreditsHistory(publicID string) ([]models.CreditsHistory, error)
	CreditsAgency(publicID string) (*services.AgencyCredit, error)
	HostAgencyData(publicID string) (*models.Agency, error)
	JoinRequests(publicID string) ([]models.User, error)
}

type SocialGraph interface {
	Follow(actorID uint, targetPublicID string) error
	Unfollow(actorID uint, targetPublicID string) error
	Block(actorID uint, targetPublicID string) error
	Unblock(actorID uint, targetPublicID string) error
	Friends(publicID string) ([]models.User, error)
	Followers(publicID string) ([]models.User, error)
	Following(publicID string) ([]models.User, error)
	Blocked(publicID string) ([]models.User, error)
	Search(query string, page, limit int) (*services.SearchPage, error)
}

type UpdateProfileRequest struct {
	Country     *string         `json:"country"`
	Gender      *string         `json:"gender" binding:"omitempty,oneof=male female"`
	Age         *int            `json:"age" binding:"omitempty,min=0"`
	GroupName   *string         `json:"groupName"`
	CurrentRoom *string         `json:"currentRoom"`
	ChargeLevel json.RawMessage `json:"chargeLevel"`
	Info        json.RawMessage `json:"info"`
	Gifts       json.RawMessage `json:"gifts"`
	Badges      json.RawMessage `json:"badges"`
}

type ProfileHandler struct {
	profiles ProfileReader
	social   SocialGraph
}

func NewProfileHandler(profiles ProfileReader, social SocialGraph) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, social: social}
}

func (h *ProfileHandler) GetMainProfile(ctx *gin.Context) {
	currentUser, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile, user, err := h.profiles.GetMain(currentUser.ID)
	if err != nil {
		abortServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, mainProfileResponse(profile, user))
}

func (h *ProfileHandler) UpdateMainProfile(ctx *gin.Context) {
	currentUser, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateProfileRequest
	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	profile, err := h.profiles.UpdateMain(currentUser.ID, services.UpdateProfileInput{
		Country:     req.Country,
		Gender:      req.Gender,
		Age:         req.Age,
		GroupName:   req.GroupName,
		CurrentRoom: req.CurrentRoom,
		ChargeLevel: datatypes.JSON(req.ChargeLevel),
		Info:        datatypes.JSON(req.Info),
		Gifts:       datatypes.JSON(req.Gifts),
		Badges:      datatypes.JSON(req.Badges),
	})
	if err != nil {
		abortServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetPublicProfile(ctx *gin.Context) {
	profile, err := h.profiles.GetPublic(ctx.Param("userId"))
	if err != nil {
		abortServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetFriendsList(ctx *gin.Context) {
	users, err := h.social.Friends(ctx.Param("userId"))
	if err != nil {
		abortServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"friends_list": userSummaries(users)})
}

func (h *ProfileHandler) GetFollowersList(ctx *gin.Context) {
	users, err := h.social.Followers(ctx.Param("userId"))
	if err != nil {
		abortServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"followers_list": userSummaries(users)})
}

func (h *ProfileHandler) GetFollowingList(ctx *gin.Context) {
	users, err := h.social.Following(ctx.Param("userId"))
	if err != nil {
		abortServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"following_list": userSummaries(users)})
}

func (h *ProfileHandler) GetBlockedList(ctx *gin.Context) {
	users, err := h.social.Blocked(ctx.Param("userId"))
	if err != nil {
		abortServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"blocked_list": userSummaries(users)})
}

func (h *ProfileHandler) FollowUser(ctx *gin.Context) {
	h.socialAction(ctx, h.social.Follow, "User followed successfully")
}

func (h *ProfileHandler) UnfollowUser(ctx *gin.Context) {
	h.socialAction(ctx, h.social.Unfollow, "User unfollowed successfully")
}

func (h *ProfileHandler) BlockUser(ctx *gin.Context) {
	h.socialAction(ctx, h.social.Block, "User blocked successfully")
}

func (h *ProfileHandler) UnblockUser(ctx *gin.Context) {
	h.socialAction(ctx, h.social.Unblock, "User unblocked successfully")
}

func (h *ProfileHandler) socialAction(ctx *gin.Context, action func(uint, string) error, message string) {
	currentUser, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := action(currentUser.ID, ctx.Param("userId")); err != nil {
		abortServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *ProfileHandler) GetVipLevel(ctx *gin.Context) {
	vipLevel, err := h.profiles.VipLevel(ctx.Param("userId"))
	if err != nil {
		abortServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"vip_level": vipLevel})
}

func (h *ProfileHandler) GetProExpiration(ctx *gin.Context) {
	expiration, err := h.profiles.ProExpiration(ctx.Param("userId"))
	if err != nil {
		abortServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"expiration_date": expiration})
}

func (h *ProfileHandler) GetStoreSections(ctx *gin.Context) {
	sections, err := h.profiles.StoreSections()
	if err != nil {
		abortServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"sections": sections})
}

func (h *ProfileHandler) GetUserLevel(ctx *gin.Context) {
	info, err := h.profiles.UserLevel(ctx.Param("userId"))
	if err != nil {
		abortServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, info)
}

func (h *ProfileHandler) GetCreditsHistory(ctx *gin.Context) {
	history, err := h.profiles.CreditsHistory(ctx.Param("userId"))
	if err != nil {
		abortServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"history": history})
}

func (h *ProfileHandler) GetCreditsAgency(ctx *gin.Context) {
	data, err := h.profiles.CreditsAgency(ctx.Param("userId"))
	if err != nil {
		abortServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, data)
}

func (h *ProfileHandler) GetHostAgencyData(ctx *gin.Context) {
	agency, err := h.profiles.HostAgencyData(ctx.Param("userId"))
	if err != nil {
		abortServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, agency)
}

func (h *ProfileHandler) GetJoinRequests(ctx *gin.Context) {
	users, err := h.profiles.JoinRequests(ctx.Param("userId"))
	if err != nil {
		abortServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"users": userSummaries(users)})
}

func (h *ProfileHandler) SearchUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.Query("page"))
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	result, err := h.social.Search(ctx.Param("param"), page, limit)
	if err != nil {
		abortServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"search_list":  userSummaries(result.Users),
		"totalResults": result.TotalResults,
		"currentPage":  result.CurrentPage,
		"totalPages":   result.TotalPages,
	})
}

func mainProfileResponse(profile *models.Profile, user *models.User) types.MainProfileResponse {
	return types.MainProfileResponse{
		User:        userResponse(user),
		Country:     profile.Country,
		Gender:      profile.Gender,
		Age:         profile.Age,
		Charisma:    profile.Charisma,
		Level:       profile.Level,
		GroupName:   profile.GroupName,
		VipLevel:    profile.VipLevel,
		ProExpires:  profile.ProExpiresAt,
		ChargeLevel: json.RawMessage(profile.ChargeLevel),
		Info:        json.RawMessage(profile.Info),
		Gifts:       json.RawMessage(profile.Gifts),
		Badges:      json.RawMessage(profile.Badges),
		CurrentRoom: profile.CurrentRoom,
	}
}
