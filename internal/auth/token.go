package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL 是签发Token的固定有效期
const TokenTTL = time.Hour

var (
	ErrMissingSecret  = errors.New("JWT secret not configured")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token is expired or not valid yet")
	ErrTokenSignature = errors.New("invalid token signature")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenRevoked   = errors.New("token has been invalidated (logged out)")
	ErrNotAdmin       = errors.New("admin access required")
)

// Claims 定义了JWT中存储的自定义声明。
// JTI (ID) 会通过内嵌的 jwt.RegisteredClaims 提供
type Claims struct {
	UserID  int64 `json:"id"`
	IsAdmin bool  `json:"isAdmin"`
	jwt.RegisteredClaims
}

// TokenManager 负责签发、校验和吊销 Token
type TokenManager struct {
	secret []byte
	now    func() time.Time

	// denylist 存储已登出Token的JTI及其原始过期时间。
	// 注意: 这是一个内存列表，服务重启会丢失。
	denylist map[string]time.Time
	mu       sync.RWMutex
}

// NewTokenManager 创建 TokenManager；密钥为空属于启动期致命错误
func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenManager{
		secret:   []byte(secret),
		now:      time.Now,
		denylist: make(map[string]time.Time),
	}, nil
}

// WithClock 替换时间源，用于测试过期行为
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	m.now = now
	return m
}

// Issue 签发带有 {id, isAdmin} 的 HS256 Token，有效期一小时
func (m *TokenManager) Issue(userID int64, isAdmin bool) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(TokenTTL)
	claims := &Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify 解析并校验 Token，返回其中的声明
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// 确保token的签名方法是我们期望的 HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
		}
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.ID != "" && m.isRevoked(claims.ID) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Revoke 将JTI添加到拒绝列表，并清理已过期的条目。
func (m *TokenManager) Revoke(jti string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.denylist[jti] = expiresAt

	now := m.now()
	for id, exp := range m.denylist {
		if now.After(exp) {
			delete(m.denylist, id)
		}
	}
}

// isRevoked 检查JTI是否在拒绝列表中且尚未过期。
func (m *TokenManager) isRevoked(jti string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	expTime, found := m.denylist[jti]
	if !found {
		return false
	}
	return m.now().Before(expTime)
}
