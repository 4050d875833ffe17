package api

import (
	"accounts/internal/entity"
	"accounts/internal/service"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const requestTimeout = 5 * time.Second

// Register 处理用户注册
func (h *HTTPHandler) Register(c *gin.Context) {
	if h.repo == nil {
		ErrorResponse(c, http.StatusServiceUnavailable, ErrCodeInternalError, "user repository not available")
		return
	}

	var req entity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid registration payload", gin.H{"reason": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.accounts.Register(ctx, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			Conflict(c, ErrCodeEmailExists, "email already taken")
			return
		}
		logrus.WithError(err).Error("failed to register user")
		InternalError(c, "failed to register user")
		return
	}

	// 未配置邮件服务，激活链接记录到日志
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"link":    h.activationLink(user.ActivationKey),
	}).Info("activation link issued")

	token, _, err := h.authManager.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("failed to create token for user")
		InternalError(c, "failed to create session")
		return
	}

	c.JSON(http.StatusCreated, entity.TokenResponse{
		Message: "OK",
		Token:   token,
		User:    entity.MakeUserSummary(user),
	})
}

// Login 处理用户登录
func (h *HTTPHandler) Login(c *gin.Context) {
	if h.repo == nil {
		ErrorResponse(c, http.StatusServiceUnavailable, ErrCodeInternalError, "user repository not available")
		return
	}

	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid login payload")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	user, err := h.accounts.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired):
			MissingField(c, "email")
		case errors.Is(err, service.ErrUserNotFound):
			NotFound(c, ErrCodeUserNotFound, "no user associated with this email")
		case errors.Is(err, service.ErrInvalidCredentials):
			logrus.WithField("email", req.Email).Warn("password verification failed")
			ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid email or password")
		case errors.Is(err, service.ErrUserNotActive):
			ErrorResponse(c, http.StatusUnauthorized, ErrCodeUserDisabled, "user not activated")
		default:
			logrus.WithError(err).Error("login failed")
			InternalError(c, "failed to process login")
		}
		return
	}

	token, _, err := h.authManager.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		InternalError(c, "failed to create session")
		return
	}

	c.JSON(http.StatusOK, entity.TokenResponse{
		Message: "OK",
		Token:   token,
		User:    entity.MakeUserSummary(user),
	})
}

// Confirm 通过激活 key 激活账户。key 不存在或账户已激活时同样返回成功。
func (h *HTTPHandler) Confirm(c *gin.Context) {
	key := strings.TrimSpace(c.Query("key"))
	if key == "" {
		MissingField(c, "key")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.accounts.Activate(ctx, key); err != nil {
		logrus.WithError(err).Error("failed to activate account")
		InternalError(c, "failed to activate account")
		return
	}

	c.JSON(http.StatusOK, entity.MessageResponse{Message: "OK"})
}

// Me 返回当前登录用户信息
func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	dbUser, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to load user profile")
		InternalError(c, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, entity.MakeUserSummary(dbUser))
}

// UpdateMe 更新当前登录用户的资料
func (h *HTTPHandler) UpdateMe(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var req entity.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	updated, err := h.accounts.UpdateProfile(ctx, user.ID, service.ProfileUpdateInput{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			NotFound(c, ErrCodeUserNotFound, "user no longer exists")
			return
		}
		logrus.WithError(err).WithField("user_id", user.ID).Error("failed to update profile")
		InternalError(c, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, entity.MakeUserSummary(updated))
}
