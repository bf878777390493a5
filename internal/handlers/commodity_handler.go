package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sagrop_cms/internal/services"
	"github.com/sagrop_cms/pkg/utils"
)

// CommodityHandler 封装了商品行情相关的 HTTP 处理逻辑
type CommodityHandler struct {
	service services.CommodityService
}

// NewCommodityHandler 创建一个新的 CommodityHandler 实例
func NewCommodityHandler(service services.CommodityService) *CommodityHandler {
	return &CommodityHandler{service: service}
}

// CommodityPayload 定义了创建/更新商品请求的 JSON 结构体。
// price 与 amount 可以是数字，也可以是数字字符串。
type CommodityPayload struct {
	Name    string          `json:"name"`
	Inquiry string          `json:"inquiry"`
	Offer   string          `json:"offer"`
	Price   json.RawMessage `json:"price" swaggertype:"number"`
	Amount  json.RawMessage `json:"amount" swaggertype:"number"`
	Date    string          `json:"date"`
	Parita  string          `json:"parita"`
}

var errNotScalar = errors.New("expected a number or a string")

// numberText 把 JSON 数字或字符串统一转成文本，交给服务层做数值转换
func numberText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	if raw[0] == '{' || raw[0] == '[' || raw[0] == 't' || raw[0] == 'f' {
		return "", errNotScalar
	}
	return string(raw), nil
}

func (p CommodityPayload) toInput() (services.CommodityInput, error) {
	price, err := numberText(p.Price)
	if err != nil {
		return services.CommodityInput{}, err
	}
	amount, err := numberText(p.Amount)
	if err != nil {
		return services.CommodityInput{}, err
	}
	return services.CommodityInput{
		Name:    p.Name,
		Inquiry: p.Inquiry,
		Offer:   p.Offer,
		Price:   price,
		Amount:  amount,
		Date:    p.Date,
		Parita:  p.Parita,
	}, nil
}

func bindCommodity(c *gin.Context) (services.CommodityInput, bool) {
	var payload CommodityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, "", err.Error())
		return services.CommodityInput{}, false
	}
	in, err := payload.toInput()
	if err != nil {
		utils.RespondValidationError(c, "price and amount must be numbers", err.Error())
		return services.CommodityInput{}, false
	}
	return in, true
}

// CreateCommodity godoc
// @Summary 新增商品
// @Tags Commodities
// @Accept json
// @Produce json
// @Param commodity body CommodityPayload true "商品信息"
// @Success 201 {object} models.Commodity
// @Failure 400 {object} utils.ErrorResponse "price/amount 不是数字"
// @Failure 401 {object} utils.ErrorResponse "未认证"
// @Failure 500 {object} utils.ErrorResponse "Error saving commodity"
// @Router /commodities [post]
// @Security BearerAuth
func (h *CommodityHandler) CreateCommodity(c *gin.Context) {
	in, ok := bindCommodity(c)
	if !ok {
		return
	}
	commodity, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, "Error saving commodity", nil)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, commodity)
}

// GetCommodities godoc
// @Summary 获取商品列表
// @Tags Commodities
// @Produce json
// @Success 200 {array} models.Commodity
// @Failure 500 {object} utils.ErrorResponse "Error retrieving commodities"
// @Router /commodities [get]
func (h *CommodityHandler) GetCommodities(c *gin.Context) {
	commodities, err := h.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Error retrieving commodities", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, commodities)
}

// UpdateCommodity godoc
// @Summary 更新商品
// @Description 覆盖写入全部字段
// @Tags Commodities
// @Accept json
// @Produce json
// @Param id path int true "商品 ID"
// @Param commodity body CommodityPayload true "商品信息"
// @Success 200 {object} models.Commodity
// @Failure 400 {object} utils.ErrorResponse "请求参数错误"
// @Failure 401 {object} utils.ErrorResponse "未认证"
// @Failure 404 {object} utils.ErrorResponse "Commodity not found"
// @Failure 500 {object} utils.ErrorResponse "Error updating commodity"
// @Router /commodities/{id} [put]
// @Security BearerAuth
func (h *CommodityHandler) UpdateCommodity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := bindCommodity(c)
	if !ok {
		return
	}
	commodity, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err, "Error updating commodity", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, commodity)
}

// DeleteCommodity godoc
// @Summary 删除商品
// @Tags Commodities
// @Produce json
// @Param id path int true "商品 ID"
// @Success 200 {object} utils.MessageResponse "Commodity deleted successfully"
// @Failure 400 {object} utils.ErrorResponse "ID 非法"
// @Failure 401 {object} utils.ErrorResponse "未认证"
// @Failure 404 {object} utils.ErrorResponse "Commodity not found"
// @Failure 500 {object} utils.ErrorResponse "Error deleting commodity"
// @Router /commodities/{id} [delete]
// @Security BearerAuth
func (h *CommodityHandler) DeleteCommodity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Error deleting commodity", nil)
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Commodity deleted successfully")
}
