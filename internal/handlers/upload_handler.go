package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sagrop_cms/pkg/utils"
)

// UploadField 是上传表单中图片文件的字段名
const UploadField = "image"

// ImageSaver 保存上传的图片并返回其 URL
type ImageSaver interface {
	Save(originalName string, r io.Reader) (string, error)
}

// UploadLimiter 提供当前的上传大小上限
type UploadLimiter interface {
	MaxUploadSize() int64
}

// UploadResponse 是上传成功的响应体
type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// UploadHandler 处理图片上传
type UploadHandler struct {
	images ImageSaver
	limits UploadLimiter
}

// NewUploadHandler 创建一个新的 UploadHandler 实例
func NewUploadHandler(images ImageSaver, limits UploadLimiter) *UploadHandler {
	return &UploadHandler{images: images, limits: limits}
}

// UploadImage godoc
// @Summary 上传图片
// @Description 保存为 <毫秒时间戳>-<原始文件名>，大小受 maxUploadSize 限制
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "图片文件"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} utils.ErrorResponse "缺少文件、文件过大或类型不允许"
// @Failure 500 {object} utils.ErrorResponse "Error uploading image"
// @Router /upload-image [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.limits.MaxUploadSize())

	file, header, err := c.Request.FormFile(UploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondValidationError(c, "File too large.", nil)
			return
		}
		utils.RespondValidationError(c, "No file uploaded.", nil)
		return
	}
	defer file.Close()

	url, err := h.images.Save(header.Filename, file)
	if err != nil {
		respondServiceError(c, err, "Error uploading image", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, UploadResponse{ImageURL: url})
}
