package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sagrop_cms/pkg/utils"
)

// ClientLogPayload 是前端上报的日志
type ClientLogPayload struct {
	Source  string `json:"source"`
	Message string `json:"message" binding:"required"`
}

// LogHandler 把前端日志写入服务端日志
type LogHandler struct {
	logger *slog.Logger
}

// NewLogHandler 创建一个新的 LogHandler 实例
func NewLogHandler(logger *slog.Logger) *LogHandler {
	return &LogHandler{logger: logger}
}

// ClientLog godoc
// @Summary 记录前端日志
// @Tags Log
// @Accept json
// @Param payload body ClientLogPayload true "日志内容"
// @Success 200
// @Failure 400 {object} utils.ErrorResponse "缺少 message"
// @Router /log [post]
func (h *LogHandler) ClientLog(c *gin.Context) {
	var payload ClientLogPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, "", err.Error())
		return
	}
	source := payload.Source
	if source == "" {
		source = "client"
	}
	h.logger.Info(payload.Message, "source", source)
	c.Status(http.StatusOK)
}
