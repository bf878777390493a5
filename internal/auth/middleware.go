package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// 存入 gin.Context 的键
const (
	ContextUserID  = "userID"
	ContextIsAdmin = "isAdmin"
	ContextJTI     = "jti"
	ContextExpiry  = "exp"
)

// AdminRequired 是一个Gin中间件，要求请求携带有效的管理员 Token。
// Authorization 头既可以是裸 Token，也可以是 "Bearer {token}"。
// 任何校验失败（缺失、格式错误、过期、签名错误、非管理员）都返回 401。
func AdminRequired(tm *TokenManager, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			abortUnauthorized(c, "Authorization token missing")
			return
		}

		claims, err := tm.Verify(bearerToken(authHeader))
		if err != nil {
			logger.Info("rejected token", "path", c.FullPath(), "error", err)
			abortUnauthorized(c, unauthorizedMessage(err))
			return
		}

		if !claims.IsAdmin {
			logger.Info("non-admin token on admin route", "path", c.FullPath(), "userID", claims.UserID)
			abortUnauthorized(c, "Unauthorized. Admin access required.")
			return
		}

		// 将声明和关键信息存储在Gin上下文中，以便后续处理程序使用
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextIsAdmin, claims.IsAdmin)
		c.Set(ContextJTI, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ContextExpiry, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "Token is expired or not valid yet"
	case errors.Is(err, ErrTokenRevoked):
		return "Token has been invalidated (logged out)"
	default:
		return "Invalid token"
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": message})
}
