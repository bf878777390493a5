package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sagrop_cms/internal/models"
	"github.com/sagrop_cms/internal/repositories"
	"github.com/sagrop_cms/pkg/utils"
)

// CommodityInput 是创建或更新商品时的输入。
// Price 与 Amount 以字符串形式传入，客户端可提交数字或数字字符串。
type CommodityInput struct {
	Name    string
	Inquiry string
	Offer   string
	Price   string
	Amount  string
	Date    string
	Parita  string
}

// CommodityService 定义了商品服务的接口
type CommodityService interface {
	Create(ctx context.Context, in CommodityInput) (*models.Commodity, error)
	List(ctx context.Context) ([]models.Commodity, error)
	Update(ctx context.Context, id int64, in CommodityInput) (*models.Commodity, error)
	Delete(ctx context.Context, id int64) error
}

type commodityService struct {
	repo   repositories.CommodityRepository
	logger *slog.Logger
}

// NewCommodityService 创建一个新的 commodityService 实例
func NewCommodityService(repo repositories.CommodityRepository, logger *slog.Logger) CommodityService {
	return &commodityService{repo: repo, logger: logger}
}

// toModel 把输入转换为模型，数值与日期在这里完成校验
func (in CommodityInput) toModel(op string) (*models.Commodity, error) {
	price, err := utils.ParseNumber(in.Price)
	if err != nil {
		return nil, newError(KindValidation, op, "price must be a number", err)
	}
	amount, err := utils.ParseNumber(in.Amount)
	if err != nil {
		return nil, newError(KindValidation, op, "amount must be a number", err)
	}

	commodity := &models.Commodity{
		Name:    in.Name,
		Inquiry: in.Inquiry,
		Offer:   in.Offer,
		Price:   price,
		Amount:  amount,
		Parita:  in.Parita,
	}
	if strings.TrimSpace(in.Date) != "" {
		date, err := utils.ParseDate(in.Date)
		if err != nil {
			return nil, newError(KindValidation, op, "Invalid date.", err)
		}
		commodity.Date = &date
	}
	return commodity, nil
}

func (s *commodityService) Create(ctx context.Context, in CommodityInput) (*models.Commodity, error) {
	const op = "commodities.create"

	commodity, err := in.toModel(op)
	if err != nil {
		return nil, err
	}
	saved, err := s.repo.Create(ctx, commodity)
	if err != nil {
		s.logger.Error("Error saving commodity", "error", err)
		return nil, newError(KindUpstream, op, "Error saving commodity", err)
	}
	return saved, nil
}

func (s *commodityService) List(ctx context.Context) ([]models.Commodity, error) {
	commodities, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Error retrieving commodities", "error", err)
		return nil, newError(KindUpstream, "commodities.list", "Error retrieving commodities", err)
	}
	return commodities, nil
}

func (s *commodityService) Update(ctx context.Context, id int64, in CommodityInput) (*models.Commodity, error) {
	const op = "commodities.update"

	commodity, err := in.toModel(op)
	if err != nil {
		return nil, err
	}
	commodity.ID = id

	updated, err := s.repo.Update(ctx, commodity)
	if repositories.IsNotFound(err) {
		return nil, newError(KindNotFound, op, "Commodity not found", err)
	}
	if err != nil {
		s.logger.Error("Error updating commodity", "id", id, "error", err)
		return nil, newError(KindUpstream, op, "Error updating commodity", err)
	}
	return updated, nil
}

func (s *commodityService) Delete(ctx context.Context, id int64) error {
	const op = "commodities.delete"

	err := s.repo.Delete(ctx, id)
	if repositories.IsNotFound(err) {
		return newError(KindNotFound, op, "Commodity not found", err)
	}
	if err != nil {
		s.logger.Error("Error deleting commodity", "id", id, "error", err)
		return newError(KindUpstream, op, "Error deleting commodity", err)
	}
	return nil
}
