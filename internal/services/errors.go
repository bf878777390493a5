package services

import (
	"errors"
	"fmt"
)

// Kind 把服务层错误归类，路由层据此选择 HTTP 状态码
type Kind int

const (
	KindUpstream   Kind = iota // 数据库、邮件、磁盘等下游失败
	KindValidation             // 输入格式错误
	KindAuth                   // 未认证或凭证无效
	KindNotFound               // 实体不存在
	KindConflict               // 唯一约束冲突
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "upstream"
	}
}

// Error 是服务层返回给路由层的错误。Message 面向用户，Err 保留底层原因。
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// KindOf 返回 err 的分类；非 *Error 一律视为下游失败
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindUpstream
}

// MessageOf 返回面向用户的错误信息
func MessageOf(err error, fallback string) string {
	var svcErr *Error
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		return svcErr.Message
	}
	return fallback
}
