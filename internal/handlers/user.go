package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/velora-live/velora/internal/models"
	"github.com/velora-live/velora/internal/services"
	"github.com/velora-live/velora/internal/utils"
)

type UserAccountService interface {
	Register(in services.CreateUserInput) (*models.User, error)
	List(opts services.ListUsersOptions) (*services.UserPage, error)
	GetByID(id uint) (*models.User, error)
	Update(id uint, in services.UpdateUserInput) (*models.User, error)
	Delete(id uint) error
	ManageCredits(userID uint, kind string, amount int64, itemID *uint) (*models.User, error)
	AddFriend(actorID uint, targetPublicID string) error
}

type AdminCreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=8"`
	Avatar   string `json:"avatar"`
	Frame    string `json:"frame"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type ManageCreditsRequest struct {
	Type   string `json:"type" binding:"required,oneof=add deduct purchase"`
	Amount int64  `json:"amount" binding:"required,min=1"`
	ItemID *uint  `json:"itemId"`
}

type UserHandler struct {
	users UserAccountService
}

func NewUserHandler(users UserAccountService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) CreateUser(ctx *gin.Context) {
	var req AdminCreateUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.users.Register(services.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		abortServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, userResponse(user))
}

func (h *UserHandler) GetUsers(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	page, _ := strconv.Atoi(ctx.Query("page"))

	result, err := h.users.List(services.ListUsersOptions{
		Name:   ctx.Query("name"),
		Role:   ctx.Query("role"),
		SortBy: ctx.Query("sortBy"),
		Limit:  limit,
		Page:   page,
	})
	if err != nil {
		abortServiceError(ctx, err)
		return
	}

	results := make([]any, 0, len(result.Results))
	for i := range result.Results {
		results = append(results, userResponse(&result.Results[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"results":      results,
		"page":         result.Page,
		"limit":        result.Limit,
		"totalPages":   result.TotalPages,
		"totalResults": result.TotalResults,
	})
}

func (h *UserHandler) GetUser(ctx *gin.Context) {
	id, ok := userIDParam(ctx)
	if !ok {
		return
	}

	user, err := h.users.GetByID(id)
	if err != nil {
		abortServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponse(user))
}

func (h *UserHandler) UpdateUser(ctx *gin.Context) {
	id, ok := userIDParam(ctx)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.users.Update(id, services.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
		Frame:    req.Frame,
		Role:     req.Role,
	})
	if err != nil {
		abortServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponse(user))
}

func (h *UserHandler) DeleteUser(ctx *gin.Context) {
	id, ok := userIDParam(ctx)
	if !ok {
		return
	}

	if err := h.users.Delete(id); err != nil {
		abortServiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *UserHandler) ManageCredits(ctx *gin.Context) {
	currentUser, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req ManageCreditsRequest
	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.users.ManageCredits(currentUser.ID, req.Type, req.Amount, req.ItemID)
	if err != nil {
		abortServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponse(user))
}

func (h *UserHandler) AddFriend(ctx *gin.Context) {
	currentUser, ok := utils.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.users.AddFriend(currentUser.ID, ctx.Param("userId")); err != nil {
		abortServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Friend added successfully"})
}

func userIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return 0, false
	}
	return uint(id), true
}
