package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/sagrop_cms/internal/auth"
	"github.com/sagrop_cms/internal/repositories"
	"github.com/sagrop_cms/pkg/utils"
)

// LoginResult 是登录成功后返回给客户端的令牌信息
type LoginResult struct {
	Token     string
	IsAdmin   bool
	ExpiresAt time.Time
}

// AuthService 定义了认证服务的接口
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(jti string, expiresAt time.Time)
}

type authService struct {
	users  repositories.UserRepository
	tokens *auth.TokenManager
	logger *slog.Logger
}

// NewAuthService 创建一个新的 authService 实例
func NewAuthService(users repositories.UserRepository, tokens *auth.TokenManager, logger *slog.Logger) AuthService {
	return &authService{users: users, tokens: tokens, logger: logger}
}

// Login 校验邮箱与密码。users 表中的账号都是管理员。
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "auth.login"
	email = utils.NormalizeEmail(email)

	s.logger.Info("Attempting to find user by email", "email", email)
	user, err := s.users.GetByEmail(ctx, email)
	if repositories.IsNotFound(err) {
		s.logger.Info("User not found or invalid credentials", "email", email)
		return nil, newError(KindAuth, op, "Invalid email or password.", err)
	}
	if err != nil {
		s.logger.Error("Error occurred during login", "error", err)
		return nil, newError(KindUpstream, op, "Login failed. Please try again later.", err)
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		s.logger.Error("Error occurred during login", "error", err)
		return nil, newError(KindUpstream, op, "Login failed. Please try again later.", err)
	}
	if !ok {
		s.logger.Info("User not found or invalid credentials", "email", email)
		return nil, newError(KindAuth, op, "Invalid email or password.", nil)
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, true)
	if err != nil {
		s.logger.Error("Error issuing token", "error", err)
		return nil, newError(KindUpstream, op, "Login failed. Please try again later.", err)
	}
	s.logger.Info("User found and authenticated", "email", user.Email)
	return &LoginResult{Token: token, IsAdmin: true, ExpiresAt: expiresAt}, nil
}

func (s *authService) Logout(jti string, expiresAt time.Time) {
	s.tokens.Revoke(jti, expiresAt)
}
