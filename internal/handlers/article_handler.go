package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sagrop_cms/internal/services"
	"github.com/sagrop_cms/pkg/utils"
)

// ArticleHandler 封装了文章相关的 HTTP 处理逻辑
type ArticleHandler struct {
	service services.ArticleService
}

// NewArticleHandler 创建一个新的 ArticleHandler 实例
func NewArticleHandler(service services.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// CreateArticlePayload 定义了创建文章请求的 JSON 结构体
type CreateArticlePayload struct {
	Title           string  `json:"articleTitle"`
	Content         string  `json:"articleContent"`
	PublicationDate string  `json:"articlePublication"`
	ImageURL        *string `json:"articleImageUrl"`
}

// UpdateArticlePayload 定义了更新文章请求的 JSON 结构体，省略的字段保持不变
type UpdateArticlePayload struct {
	Title           *string `json:"articleTitle"`
	Content         *string `json:"articleContent"`
	PublicationDate *string `json:"articlePublication"`
	ImageURL        *string `json:"articleImageUrl"`
}

// CreateArticle godoc
// @Summary 新增文章
// @Description 保存文章后 ID 会重排为 1..N，返回的文章带有最终 ID
// @Tags Articles
// @Accept json
// @Produce json
// @Param article body CreateArticlePayload true "文章信息"
// @Success 201 {object} models.Article
// @Failure 400 {object} utils.ErrorResponse "articlePublication 缺失或格式错误"
// @Failure 401 {object} utils.ErrorResponse "未认证"
// @Failure 500 {object} utils.ErrorResponse "Error saving article"
// @Router /articles [post]
// @Security BearerAuth
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var payload CreateArticlePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, "", err.Error())
		return
	}

	article, err := h.service.Create(c.Request.Context(), services.ArticleInput{
		Title:           payload.Title,
		Content:         payload.Content,
		PublicationDate: payload.PublicationDate,
		ImageURL:        payload.ImageURL,
	})
	if err != nil {
		respondServiceError(c, err, "Error saving article", nil)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, article)
}

// GetArticles godoc
// @Summary 获取文章列表
// @Description 按 ID 降序返回全部文章，最新的在前
// @Tags Articles
// @Produce json
// @Success 200 {array} models.Article
// @Failure 500 {object} utils.ErrorResponse "Error retrieving articles"
// @Router /articles [get]
func (h *ArticleHandler) GetArticles(c *gin.Context) {
	articles, err := h.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Error retrieving articles", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, articles)
}

// GetArticle godoc
// @Summary 获取单篇文章
// @Tags Articles
// @Produce json
// @Param id path int true "文章 ID"
// @Success 200 {object} models.Article
// @Failure 400 {object} utils.ErrorResponse "ID 非法"
// @Failure 404 {object} utils.ErrorResponse "Article not found"
// @Router /articles/{id} [get]
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	article, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Error retrieving article", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, article)
}

// UpdateArticle godoc
// @Summary 更新文章
// @Description 仅更新请求体中出现的字段
// @Tags Articles
// @Accept json
// @Produce json
// @Param id path int true "文章 ID"
// @Param article body UpdateArticlePayload true "需要更新的字段"
// @Success 200 {object} models.Article
// @Failure 400 {object} utils.ErrorResponse "请求参数错误"
// @Failure 401 {object} utils.ErrorResponse "未认证"
// @Failure 404 {object} utils.ErrorResponse "Article not found"
// @Failure 500 {object} utils.ErrorResponse "Error updating article"
// @Router /articles/{id} [put]
// @Security BearerAuth
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload UpdateArticlePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, "", err.Error())
		return
	}

	article, err := h.service.Update(c.Request.Context(), id, services.ArticlePatch{
		Title:           payload.Title,
		Content:         payload.Content,
		PublicationDate: payload.PublicationDate,
		ImageURL:        payload.ImageURL,
	})
	if err != nil {
		respondServiceError(c, err, "Error updating article", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, article)
}

// DeleteArticle godoc
// @Summary 删除文章
// @Description 删除文章及其图片，剩余文章的 ID 重排为 1..N
// @Tags Articles
// @Produce json
// @Param id path int true "文章 ID"
// @Success 200 {object} utils.MessageResponse "Article deleted successfully."
// @Failure 400 {object} utils.ErrorResponse "ID 非法"
// @Failure 401 {object} utils.ErrorResponse "未认证"
// @Failure 404 {object} utils.ErrorResponse "Article not found."
// @Failure 500 {object} utils.ErrorResponse "Error deleting article"
// @Router /articles/{id} [delete]
// @Security BearerAuth
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Error deleting article", nil)
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Article deleted successfully.")
}
