package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/sagrop_cms/internal/models"
)

// UserRepository 定义了管理员账号数据仓库的接口
type UserRepository interface {
	// GetByEmail 根据邮箱获取管理员，未找到时返回 ErrRecordNotFound
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create 创建管理员，邮箱重复时返回 ErrDuplicateEmail
	Create(ctx context.Context, user *models.User) error
}

type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository 创建一个新的 gormUserRepository 实例
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}
