package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sagrop_cms/internal/auth"
	"github.com/sagrop_cms/internal/services"
	"github.com/sagrop_cms/pkg/utils"
)

// LoginRequest 是登录请求体
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginResponse 是登录成功的响应体
type LoginResponse struct {
	Token   string `json:"token"`
	IsAdmin bool   `json:"isAdmin"`
}

// CheckAdminResponse 是 /check-admin 的响应体
type CheckAdminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

// AuthHandler 封装了认证相关的 HTTP 处理逻辑
type AuthHandler struct {
	service services.AuthService
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(service services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary 管理员登录
// @Description 验证管理员邮箱和密码并返回 1 小时有效的 JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param credentials body LoginRequest true "登录凭证"
// @Success 200 {object} LoginResponse "登录成功"
// @Failure 400 {object} utils.ErrorResponse "请求参数错误"
// @Failure 401 {object} utils.ErrorResponse "无效的邮箱或密码"
// @Failure 429 {object} utils.ErrorResponse "请求过于频繁"
// @Failure 500 {object} utils.ErrorResponse "登录失败"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, "", err.Error())
		return
	}
	if err := utils.ValidatePasswordStrength(req.Password); err != nil {
		utils.RespondValidationError(c, "", err.Error())
		return
	}

	res, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err, "Login failed. Please try again later.", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, LoginResponse{Token: res.Token, IsAdmin: res.IsAdmin})
}

// Logout godoc
// @Summary 登出
// @Description 吊销当前 Token
// @Tags auth
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} utils.MessageResponse "成功登出"
// @Failure 401 {object} utils.ErrorResponse "未认证"
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString(auth.ContextJTI)
	exp, ok := c.Get(auth.ContextExpiry)
	expiresAt, isTime := exp.(time.Time)
	if jti == "" || !ok || !isTime {
		utils.RespondUnauthorizedError(c, "Invalid token")
		return
	}

	h.service.Logout(jti, expiresAt)
	utils.RespondMessage(c, http.StatusOK, "Logged out successfully.")
}

// CheckAdmin godoc
// @Summary 检查管理员身份
// @Tags auth
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} CheckAdminResponse
// @Failure 401 {object} utils.ErrorResponse "未认证"
// @Router /check-admin [get]
func (h *AuthHandler) CheckAdmin(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, CheckAdminResponse{IsAdmin: true})
}
