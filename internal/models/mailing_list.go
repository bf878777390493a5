package models

import "time"

// MailingListEntry 对应于数据库中的 mailing_list 表
type MailingListEntry struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Email     string    `json:"email" gorm:"column:email;unique;not null;size:255"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
}

// TableName 指定 MailingListEntry 结构体对应的数据库表名
func (MailingListEntry) TableName() string {
	return "mailing_list"
}
