package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sagrop_cms/pkg/utils"
)

// RuntimeConfig 读取与合并运行时配置
type RuntimeConfig interface {
	Get() map[string]any
	Update(raw []byte) (map[string]any, error)
}

// ConfigHandler 暴露运行时配置
type ConfigHandler struct {
	config RuntimeConfig
}

// NewConfigHandler 创建一个新的 ConfigHandler 实例
func NewConfigHandler(config RuntimeConfig) *ConfigHandler {
	return &ConfigHandler{config: config}
}

// GetConfig godoc
// @Summary 获取运行时配置
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /config [get]
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, h.config.Get())
}

// UpdateConfig godoc
// @Summary 合并运行时配置
// @Description 请求体必须是 JSON 对象，按键浅合并
// @Tags Config
// @Accept json
// @Produce json
// @Param config body map[string]interface{} true "需要合并的配置项"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse "请求体不是 JSON 对象"
// @Failure 401 {object} utils.ErrorResponse "未认证"
// @Router /config [put]
// @Security BearerAuth
func (h *ConfigHandler) UpdateConfig(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		utils.RespondValidationError(c, "", err.Error())
		return
	}
	merged, err := h.config.Update(raw)
	if err != nil {
		respondServiceError(c, err, "Error updating configuration", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, merged)
}
