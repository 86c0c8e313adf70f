package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/velora-live/velora/internal/models"
	"github.com/velora-live/velora/internal/services"
)

type stubAccountService struct {
	registerErr error
	registered  *services.CreateUserInput
	creditsErr  error
	creditsUser *models.User
	deleted     []uint
}

func (s *stubAccountService) Register(in services.CreateUserInput) (*models.User, error) {
	s.registered = &in
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &models.User{Name: in.Name, Email: in.Email, PublicID: "1234567890"}, nil
}

func (s *stubAccountService) List(services.ListUsersOptions) (*services.UserPage, error) {
	return &services.UserPage{Page: 1, Limit: 10}, nil
}

func (s *stubAccountService) GetByID(uint) (*models.User, error) {
	return nil, services.ErrUserNotFound
}

func (s *stubAccountService) Update(uint, services.UpdateUserInput) (*models.User, error) {
	return nil, services.ErrUserNotFound
}

func (s *stubAccountService) Delete(id uint) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubAccountService) ManageCredits(uint, string, int64, *uint) (*models.User, error) {
	return s.creditsUser, s.creditsErr
}

func (s *stubAccountService) AddFriend(uint, string) error { return nil }

func TestManageCreditsInsufficientStatus(t *testing.T) {
	h := NewUserHandler(&stubAccountService{creditsErr: services.ErrInsufficientCredits})

	r := testEngine(func(g *gin.RouterGroup) {
		g.POST("/users/me/credits", h.ManageCredits)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/me/credits",
		strings.NewReader(`{"type":"deduct","amount":100}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestManageCreditsRejectsUnknownType(t *testing.T) {
	h := NewUserHandler(&stubAccountService{creditsUser: &models.User{}})

	r := testEngine(func(g *gin.RouterGroup) {
		g.POST("/users/me/credits", h.ManageCredits)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/me/credits",
		strings.NewReader(`{"type":"steal","amount":100}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetUserInvalidID(t *testing.T) {
	h := NewUserHandler(&stubAccountService{})

	r := testEngine(func(g *gin.RouterGroup) {
		g.GET("/users/:userId", h.GetUser)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/not-a-number", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetUserNotFound(t *testing.T) {
	h := NewUserHandler(&stubAccountService{})

	r := testEngine(func(g *gin.RouterGroup) {
		g.GET("/users/:userId", h.GetUser)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestDeleteUser(t *testing.T) {
	stub := &stubAccountService{}
	h := NewUserHandler(stub)

	r := testEngine(func(g *gin.RouterGroup) {
		g.DELETE("/users/:userId", h.DeleteUser)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/users/42", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if len(stub.deleted) != 1 || stub.deleted[0] != 42 {
		t.Fatalf("deleted = %v, want [42]", stub.deleted)
	}
}
