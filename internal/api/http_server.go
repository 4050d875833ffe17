package api

import (
	"accounts/internal/auth"
	"accounts/internal/config"
	"accounts/internal/model"
	"accounts/internal/service"
	"fmt"
	"strings"
	"time"
)

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg         config.Config
	repo        model.Repository
	accounts    *service.AccountService
	authManager *auth.Manager
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	return &HTTPHandler{
		cfg:         cfg,
		repo:        repo,
		accounts:    service.NewAccountService(repo),
		authManager: authManager,
	}, nil
}

// activationLink 拼接账户激活链接
func (h *HTTPHandler) activationLink(key string) string {
	base := strings.TrimRight(strings.TrimSpace(h.cfg.Hostname), "/")
	return fmt.Sprintf("%s/api/auth/confirm?key=%s", base, key)
}
