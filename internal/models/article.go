package models

import "time"

// Article 对应于数据库中的 articles 表。
// ID 始终保持 1..N 的连续序列，最大 ID 即为最新文章。
type Article struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string    `json:"articleTitle" gorm:"column:article_title;not null;size:500"`
	Content         string    `json:"articleContent" gorm:"column:article_content;type:text"`
	PublicationDate time.Time `json:"articlePublication" gorm:"column:article_publication;not null"`
	ImageURL        *string   `json:"articleImageUrl,omitempty" gorm:"column:article_image_url;size:1024"`
}

// TableName 指定 Article 结构体对应的数据库表名
func (Article) TableName() string {
	return "articles"
}

// ArticleUpdate 描述一次部分更新，nil 字段保持不变
type ArticleUpdate struct {
	Title           *string
	Content         *string
	PublicationDate *time.Time
	ImageURL        *string
}

// IsEmpty 判断本次更新是否没有任何字段需要修改
func (u ArticleUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.PublicationDate == nil && u.ImageURL == nil
}
