package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/sagrop_cms/internal/models"
)

// CommodityRepository 定义了商品行情数据仓库的接口
type CommodityRepository interface {
	Create(ctx context.Context, commodity *models.Commodity) (*models.Commodity, error)
	List(ctx context.Context) ([]models.Commodity, error)
	// Update 覆盖写入全部字段，未找到时返回 ErrRecordNotFound
	Update(ctx context.Context, commodity *models.Commodity) (*models.Commodity, error)
	// Delete 删除商品，未找到时返回 ErrRecordNotFound
	Delete(ctx context.Context, id int64) error
}

type gormCommodityRepository struct {
	db *gorm.DB
}

// NewGormCommodityRepository 创建一个新的 gormCommodityRepository 实例
func NewGormCommodityRepository(db *gorm.DB) CommodityRepository {
	return &gormCommodityRepository{db: db}
}

func (r *gormCommodityRepository) Create(ctx context.Context, commodity *models.Commodity) (*models.Commodity, error) {
	if err := r.db.WithContext(ctx).Create(commodity).Error; err != nil {
		return nil, err
	}
	return commodity, nil
}

func (r *gormCommodityRepository) List(ctx context.Context) ([]models.Commodity, error) {
	commodities := []models.Commodity{}
	err := r.db.WithContext(ctx).Order("id ASC").Find(&commodities).Error
	return commodities, err
}

func (r *gormCommodityRepository) Update(ctx context.Context, commodity *models.Commodity) (*models.Commodity, error) {
	res := r.db.WithContext(ctx).
		Model(commodity).
		Select("name", "inquiry", "offer", "price", "amount", "date", "parita").
		Updates(commodity)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return commodity, nil
}

func (r *gormCommodityRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Commodity{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
