package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/sagrop_cms/internal/models"
)

// MailingListRepository 定义了订阅邮箱数据仓库的接口
type MailingListRepository interface {
	// Add 添加订阅邮箱，重复时返回 ErrDuplicateEmail
	Add(ctx context.Context, email string) (*models.MailingListEntry, error)
	// ListEmails 返回全部订阅邮箱
	ListEmails(ctx context.Context) ([]string, error)
}

type gormMailingListRepository struct {
	db *gorm.DB
}

// NewGormMailingListRepository 创建一个新的 gormMailingListRepository 实例
func NewGormMailingListRepository(db *gorm.DB) MailingListRepository {
	return &gormMailingListRepository{db: db}
}

func (r *gormMailingListRepository) Add(ctx context.Context, email string) (*models.MailingListEntry, error) {
	entry := &models.MailingListEntry{Email: email}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return entry, nil
}

func (r *gormMailingListRepository) ListEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).
		Model(&models.MailingListEntry{}).
		Order("id ASC").
		Pluck("email", &emails).Error
	return emails, err
}
