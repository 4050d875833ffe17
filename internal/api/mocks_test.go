package api

import (
	"accounts/internal/config"
	"accounts/internal/entity"
	"accounts/internal/model"
	"context"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// stubRepo is an in-memory model.Repository for handler tests. It enforces
// the same uniqueness rules as the real store.
type stubRepo struct {
	nextID uint
	users  map[uint]*entity.DbUser
}

func newStubRepo() *stubRepo {
	return &stubRepo{nextID: 1, users: make(map[uint]*entity.DbUser)}
}

func (s *stubRepo) CreateUser(_ context.Context, user *entity.DbUser) error {
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return model.ErrDuplicateKey
		}
		if existing.ActivationKey != "" && existing.ActivationKey == user.ActivationKey {
			return model.ErrDuplicateKey
		}
	}
	user.ID = s.nextID
	s.nextID++
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *stubRepo) UpdateUser(_ context.Context, id uint, updates entity.UserUpdates) error {
	user, ok := s.users[id]
	if !ok {
		return model.ErrNotFound
	}
	if updates.Name != nil {
		user.Name = *updates.Name
	}
	if updates.PasswordHash != nil {
		user.PasswordHash = *updates.PasswordHash
	}
	if updates.Active != nil {
		user.Active = *updates.Active
	}
	return nil
}

func (s *stubRepo) GetUserByEmail(_ context.Context, email string) (*entity.DbUser, error) {
	for _, user := range s.users {
		if strings.EqualFold(user.Email, strings.TrimSpace(email)) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *stubRepo) GetUserByID(_ context.Context, id uint) (*entity.DbUser, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *stubRepo) GetUserByActivationKey(_ context.Context, key string) (*entity.DbUser, error) {
	for _, user := range s.users {
		if user.ActivationKey == key {
			clone := *user
			return &clone, nil
		}
	}
	return nil, model.ErrNotFound
}

func testConfig() config.Config {
	return config.Config{
		Hostname:             "http://localhost:8080",
		JWTSecret:            "test-secret",
		JWTIssuer:            "accounts-test",
		JWTExpirationMinutes: 60,
	}
}

// newTestHandler builds a handler over the stub repository plus a router
// with the same route table as cmd/server.
func newTestHandler(t *testing.T) (*HTTPHandler, *stubRepo, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newStubRepo()
	handler, err := NewHTTPHandler(testConfig(), repo)
	if err != nil {
		t.Fatalf("unexpected error creating handler: %v", err)
	}

	r := gin.New()
	auth := r.Group("/api/auth")
	auth.POST("/register", handler.Register)
	auth.POST("/login", handler.Login)
	auth.GET("/confirm", handler.Confirm)
	auth.GET("/me", handler.AuthMiddleware(), handler.Me)
	auth.PUT("/me", handler.AuthMiddleware(), handler.UpdateMe)
	auth.GET("/secret1", handler.AuthMiddleware(), func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Anyone can access(only authorized)"})
	})
	auth.GET("/secret2", handler.AuthMiddleware(entity.RoleAdmin), func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Only admin can access"})
	})
	auth.GET("/secret3", handler.AuthMiddleware(entity.RoleUser), func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Only user can access"})
	})

	return handler, repo, r
}
