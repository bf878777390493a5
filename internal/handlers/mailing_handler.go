package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sagrop_cms/internal/services"
	"github.com/sagrop_cms/pkg/utils"
)

// MailingHandler 封装了邮件订阅与群发的 HTTP 处理逻辑
type MailingHandler struct {
	service services.NewsletterService
}

// NewMailingHandler 创建一个新的 MailingHandler 实例
func NewMailingHandler(service services.NewsletterService) *MailingHandler {
	return &MailingHandler{service: service}
}

// AddEmailPayload 是订阅请求体
type AddEmailPayload struct {
	Email string `json:"email"`
}

// SendArticleEmailPayload 是群发请求体
type SendArticleEmailPayload struct {
	Title    string `json:"articleTitle"`
	Content  string `json:"articleContent"`
	ImageURL string `json:"articleImageUrl"`
}

// BroadcastResponse 是群发完成后的响应体
type BroadcastResponse struct {
	Message string   `json:"message"`
	Sent    []string `json:"sent"`
	Failed  []string `json:"failed"`
}

// AddEmail godoc
// @Summary 订阅邮件
// @Tags Mailing
// @Accept json
// @Produce json
// @Param payload body AddEmailPayload true "订阅邮箱"
// @Success 201 {object} utils.MessageResponse "Email address added successfully."
// @Failure 400 {object} utils.ErrorResponse "Invalid email address."
// @Failure 409 {object} utils.ErrorResponse "邮箱已订阅"
// @Failure 500 {object} utils.ErrorResponse "服务器内部错误"
// @Router /add-email [post]
func (h *MailingHandler) AddEmail(c *gin.Context) {
	var payload AddEmailPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, "Invalid email address.", nil)
		return
	}
	if _, err := h.service.Subscribe(c.Request.Context(), payload.Email); err != nil {
		respondServiceError(c, err, "Error adding email address.", nil)
		return
	}
	utils.RespondMessage(c, http.StatusCreated, "Email address added successfully.")
}

// SendArticleEmail godoc
// @Summary 向全部订阅者群发文章通知
// @Description 每个地址都会尝试发送；任一失败时返回 500，details 中列出成功与失败的地址
// @Tags Mailing
// @Accept json
// @Produce json
// @Param payload body SendArticleEmailPayload true "文章信息"
// @Success 200 {object} BroadcastResponse
// @Failure 400 {object} utils.ErrorResponse "Article title and content are required."
// @Failure 401 {object} utils.ErrorResponse "未认证"
// @Failure 500 {object} utils.ErrorResponse{details=services.BroadcastReport} "部分或全部发送失败"
// @Router /send-article-email [post]
// @Security BearerAuth
func (h *MailingHandler) SendArticleEmail(c *gin.Context) {
	var payload SendArticleEmailPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, "Article title and content are required.", nil)
		return
	}

	report, err := h.service.Broadcast(c.Request.Context(), services.ArticleNotice{
		Title:    payload.Title,
		Content:  payload.Content,
		ImageURL: payload.ImageURL,
	})
	if err != nil {
		var details interface{}
		if report != nil {
			details = report
		}
		respondServiceError(c, err, "Error sending emails to subscribers.", details)
		return
	}
	utils.RespondJSON(c, http.StatusOK, BroadcastResponse{
		Message: "Emails sent successfully to subscribers.",
		Sent:    report.Sent,
		Failed:  report.Failed,
	})
}
