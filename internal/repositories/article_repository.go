package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sagrop_cms/internal/models"
)

// ArticleRepository 定义了文章数据仓库的接口。
// Create 与 Delete 会在同一事务内执行 ID 重排，保证 ID 始终为 1..N。
type ArticleRepository interface {
	// Create 插入文章并重排 ID，返回的文章带有重排后的最终 ID
	Create(ctx context.Context, article *models.Article) (*models.Article, error)
	// GetByID 根据ID获取文章，未找到时返回 ErrRecordNotFound
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	// List 按 ID 降序（最新在前）返回全部文章
	List(ctx context.Context) ([]models.Article, error)
	// Update 仅更新 upd 中非 nil 的字段
	Update(ctx context.Context, id int64, upd models.ArticleUpdate) (*models.Article, error)
	// Delete 删除文章并重排 ID，返回被删除的文章
	Delete(ctx context.Context, id int64) (*models.Article, error)
	// Renumber 单独执行一次 ID 重排
	Renumber(ctx context.Context) error
}

type gormArticleRepository struct {
	db *gorm.DB
}

// NewGormArticleRepository 创建一个新的 gormArticleRepository 实例
func NewGormArticleRepository(db *gorm.DB) ArticleRepository {
	return &gormArticleRepository{db: db}
}

func (r *gormArticleRepository) Create(ctx context.Context, article *models.Article) (*models.Article, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockArticles(tx); err != nil {
			return err
		}
		if err := tx.Create(article).Error; err != nil {
			return err
		}
		moves, err := renumberArticles(tx)
		if err != nil {
			return err
		}
		article.ID = finalID(moves, article.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return article, nil
}

func (r *gormArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *gormArticleRepository) List(ctx context.Context) ([]models.Article, error) {
	articles := []models.Article{}
	err := r.db.WithContext(ctx).Order("id DESC").Find(&articles).Error
	return articles, err
}

func (r *gormArticleRepository) Update(ctx context.Context, id int64, upd models.ArticleUpdate) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&article, id).Error; err != nil {
			return err
		}
		if upd.IsEmpty() {
			return nil
		}

		changes := map[string]interface{}{}
		if upd.Title != nil {
			changes["article_title"] = *upd.Title
		}
		if upd.Content != nil {
			changes["article_content"] = *upd.Content
		}
		if upd.PublicationDate != nil {
			changes["article_publication"] = *upd.PublicationDate
		}
		if upd.ImageURL != nil {
			changes["article_image_url"] = *upd.ImageURL
		}
		if err := tx.Model(&models.Article{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return err
		}
		return tx.First(&article, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *gormArticleRepository) Delete(ctx context.Context, id int64) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockArticles(tx); err != nil {
			return err
		}
		if err := tx.First(&article, id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Article{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		_, err := renumberArticles(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *gormArticleRepository) Renumber(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockArticles(tx); err != nil {
			return err
		}
		_, err := renumberArticles(tx)
		return err
	})
}

// IsNotFound 判断错误是否表示记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}
