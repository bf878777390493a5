package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrRecordNotFound 表示记录未找到，重用 gorm 的错误
var ErrRecordNotFound = gorm.ErrRecordNotFound

// ErrDuplicateEmail 表示邮箱已存在（users 或 mailing_list 的唯一约束）
var ErrDuplicateEmail = errors.New("email already exists")

// isUniqueViolation 判断错误是否来自唯一约束。
// SQLite 的错误信息包含 "UNIQUE constraint failed"，PostgreSQL 为 "duplicate key"
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
