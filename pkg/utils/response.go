package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageResponse 是只携带一条消息的成功响应
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse 定义了标准的错误响应结构，所有失败都带有 message 字段
type ErrorResponse struct {
	Status  string      `json:"status"`            // 固定为 "error"
	Message string      `json:"message"`           // 错误信息
	Details interface{} `json:"details,omitempty"` // 可选的错误详情
}

// RespondJSON 是一个通用的辅助函数，用于发送 JSON 响应
func RespondJSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// RespondMessage 发送 {"message": ...}
func RespondMessage(c *gin.Context, status int, message string) {
	RespondJSON(c, status, MessageResponse{Message: message})
}

// RespondError 发送一个标准的错误 JSON 响应并中止后续处理
// details: (可选) 额外的错误详情
func RespondError(c *gin.Context, status int, message string, details interface{}) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Status:  "error",
		Message: message,
		Details: details,
	})
}

// RespondValidationError 发送用于处理参数校验错误的特定响应
func RespondValidationError(c *gin.Context, message string, details interface{}) {
	if message == "" {
		message = "Invalid request parameters."
	}
	RespondError(c, http.StatusBadRequest, message, details)
}

// RespondUnauthorizedError 发送未授权错误
func RespondUnauthorizedError(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	RespondError(c, http.StatusUnauthorized, message, nil)
}

// RespondNotFoundError 发送资源未找到错误
func RespondNotFoundError(c *gin.Context, message string) {
	RespondError(c, http.StatusNotFound, message, nil)
}

// RespondConflictError 发送冲突错误 (例如，资源已存在)
func RespondConflictError(c *gin.Context, message string) {
	RespondError(c, http.StatusConflict, message, nil)
}

// RespondInternalServerError 发送服务器内部错误；不向客户端暴露底层原因。
// details 只放可公开的结果，例如群发失败的地址列表
func RespondInternalServerError(c *gin.Context, message string, details interface{}) {
	if message == "" {
		message = "Server Error"
	}
	RespondError(c, http.StatusInternalServerError, message, details)
}
