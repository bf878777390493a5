package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sagrop_cms/internal/models"
	"github.com/sagrop_cms/internal/repositories"
	"github.com/sagrop_cms/pkg/utils"
)

// ArticleInput 是创建文章时的输入，日期保持客户端提交的原始字符串
type ArticleInput struct {
	Title           string
	Content         string
	PublicationDate string
	ImageURL        *string
}

// ArticlePatch 描述文章的部分更新，nil 字段保持不变
type ArticlePatch struct {
	Title           *string
	Content         *string
	PublicationDate *string
	ImageURL        *string
}

// ImageRemover 删除文章引用的上传图片
type ImageRemover interface {
	Remove(imageURL string) error
}

// ArticleService 定义了文章服务的接口
type ArticleService interface {
	Create(ctx context.Context, in ArticleInput) (*models.Article, error)
	List(ctx context.Context) ([]models.Article, error)
	Get(ctx context.Context, id int64) (*models.Article, error)
	Update(ctx context.Context, id int64, patch ArticlePatch) (*models.Article, error)
	Delete(ctx context.Context, id int64) error
}

type articleService struct {
	repo   repositories.ArticleRepository
	images ImageRemover
	logger *slog.Logger
}

// NewArticleService 创建一个新的 articleService 实例
func NewArticleService(repo repositories.ArticleRepository, images ImageRemover, logger *slog.Logger) ArticleService {
	return &articleService{repo: repo, images: images, logger: logger}
}

func (s *articleService) Create(ctx context.Context, in ArticleInput) (*models.Article, error) {
	const op = "articles.create"

	if strings.TrimSpace(in.PublicationDate) == "" {
		return nil, newError(KindValidation, op, "articlePublication is required.", nil)
	}
	published, err := utils.ParseDate(in.PublicationDate)
	if err != nil {
		return nil, newError(KindValidation, op, "Invalid articlePublication date.", err)
	}

	article := &models.Article{
		Title:           in.Title,
		Content:         in.Content,
		PublicationDate: published,
		ImageURL:        in.ImageURL,
	}
	saved, err := s.repo.Create(ctx, article)
	if err != nil {
		s.logger.Error("Error saving article", "error", err)
		return nil, newError(KindUpstream, op, "Error saving article", err)
	}
	s.logger.Info("article saved", "id", saved.ID)
	return saved, nil
}

func (s *articleService) List(ctx context.Context) ([]models.Article, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Error retrieving articles", "error", err)
		return nil, newError(KindUpstream, "articles.list", "Error retrieving articles", err)
	}
	return articles, nil
}

func (s *articleService) Get(ctx context.Context, id int64) (*models.Article, error) {
	const op = "articles.get"

	article, err := s.repo.GetByID(ctx, id)
	if repositories.IsNotFound(err) {
		return nil, newError(KindNotFound, op, "Article not found", err)
	}
	if err != nil {
		s.logger.Error("Error retrieving article", "id", id, "error", err)
		return nil, newError(KindUpstream, op, "Error retrieving article", err)
	}
	return article, nil
}

func (s *articleService) Update(ctx context.Context, id int64, patch ArticlePatch) (*models.Article, error) {
	const op = "articles.update"

	upd := models.ArticleUpdate{
		Title:    patch.Title,
		Content:  patch.Content,
		ImageURL: patch.ImageURL,
	}
	if patch.PublicationDate != nil {
		published, err := utils.ParseDate(*patch.PublicationDate)
		if err != nil {
			return nil, newError(KindValidation, op, "Invalid articlePublication date.", err)
		}
		upd.PublicationDate = &published
	}

	article, err := s.repo.Update(ctx, id, upd)
	if repositories.IsNotFound(err) {
		return nil, newError(KindNotFound, op, "Article not found", err)
	}
	if err != nil {
		s.logger.Error("Error updating article", "id", id, "error", err)
		return nil, newError(KindUpstream, op, "Error updating article", err)
	}
	return article, nil
}

// Delete 先删除文章引用的图片，再删除数据行并重排 ID
func (s *articleService) Delete(ctx context.Context, id int64) error {
	const op = "articles.delete"

	article, err := s.repo.GetByID(ctx, id)
	if repositories.IsNotFound(err) {
		return newError(KindNotFound, op, "Article not found.", err)
	}
	if err != nil {
		s.logger.Error("Error deleting article", "id", id, "error", err)
		return newError(KindUpstream, op, "Error deleting article", err)
	}

	if article.ImageURL != nil && *article.ImageURL != "" && s.images != nil {
		if err := s.images.Remove(*article.ImageURL); err != nil {
			s.logger.Error("Error removing article image", "id", id, "image", *article.ImageURL, "error", err)
			return newError(KindUpstream, op, "Error deleting article", err)
		}
	}

	if _, err := s.repo.Delete(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return newError(KindNotFound, op, "Article not found.", err)
		}
		s.logger.Error("Error deleting article", "id", id, "error", err)
		return newError(KindUpstream, op, "Error deleting article", err)
	}
	s.logger.Info("article deleted", "id", id)
	return nil
}
