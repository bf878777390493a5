package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost 是 bcrypt 的成本因子
const PasswordCost = 10

// ErrHashing 表示密码哈希失败
var ErrHashing = errors.New("password hashing failed")

// HashPassword 使用 bcrypt 生成带盐哈希
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}
	return string(hash), nil
}

// VerifyPassword 比较明文密码与哈希。
// 密码不匹配返回 false, nil；只有哈希本身格式错误时才返回 error。
func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("comparing password hash: %w", err)
	}
}
