package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sagrop_cms/internal/services"
	"github.com/sagrop_cms/pkg/utils"
)

// parseID 解析路径中的 :id，非法时直接写入 400 响应并返回 false
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		utils.RespondValidationError(c, "Invalid id.", nil)
		return 0, false
	}
	return id, true
}

// respondServiceError 根据服务层错误的分类写入统一的错误响应
func respondServiceError(c *gin.Context, err error, fallback string, details interface{}) {
	_ = c.Error(err)
	message := services.MessageOf(err, fallback)
	switch services.KindOf(err) {
	case services.KindValidation:
		utils.RespondValidationError(c, message, details)
	case services.KindAuth:
		utils.RespondUnauthorizedError(c, message)
	case services.KindNotFound:
		utils.RespondNotFoundError(c, message)
	case services.KindConflict:
		utils.RespondConflictError(c, message)
	default:
		utils.RespondInternalServerError(c, message, details)
	}
}
