package utils

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	ErrInvalidEmailFormat = errors.New("invalid email address")
	ErrInvalidDateFormat  = errors.New("invalid date, use YYYY-MM-DD or an RFC 3339 timestamp")
	ErrInvalidNumber      = errors.New("value must be numeric")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and contain an uppercase letter, a lowercase letter and a digit")
)

// 一个常用且相对简单的邮箱正则
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmailFormat 校验邮箱格式，空字符串视为无效
func ValidateEmailFormat(email string) bool {
	trimmedEmail := strings.TrimSpace(email)
	if trimmedEmail == "" {
		return false
	}
	return emailPattern.MatchString(trimmedEmail)
}

// NormalizeEmail 去除首尾空白并转为小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePasswordStrength 要求至少8位，且包含大写字母、小写字母和数字
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return ErrWeakPassword
	}
	return nil
}

// ParseNumber 把字符串强制转换为有限数字，"12.5" -> 12.5，"abc"、"NaN"、"Inf" -> ErrInvalidNumber
func ParseNumber(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, ErrInvalidNumber
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidNumber
	}
	return v, nil
}

// ParseDate 解析日期字符串，支持多种常见格式。
// 支持 RFC 3339 时间戳以及 YYYY-MM-DD, YYYY/MM/DD, YYYY-M-D, YYYY/M/D 等及其变体。
func ParseDate(dateStr string) (time.Time, error) {
	trimmedDateStr := strings.TrimSpace(dateStr)
	if trimmedDateStr == "" {
		return time.Time{}, ErrInvalidDateFormat // 空日期字符串视为无效
	}

	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, trimmedDateStr); err == nil {
			return parsed, nil
		}
	}

	normalizedDateStr := strings.ReplaceAll(trimmedDateStr, "/", "-")

	// 包含补零和不补零的情况
	dateLayouts := []string{
		"2006-01-02", // YYYY-MM-DD
		"2006-1-2",   // YYYY-M-D
		"2006-01-2",  // YYYY-MM-D
		"2006-1-02",  // YYYY-M-DD
	}

	for _, layout := range dateLayouts {
		if parsedDate, err := time.Parse(layout, normalizedDateStr); err == nil {
			return parsedDate, nil
		}
	}
	// 所有格式尝试完毕后仍失败
	return time.Time{}, ErrInvalidDateFormat
}
