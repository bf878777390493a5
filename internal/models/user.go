package models

import "time"

// User 对应于数据库中的 users 表，只保存管理员账号
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string    `json:"email" gorm:"column:email;unique;not null;size:255"`
	PasswordHash string    `json:"-" gorm:"column:password;not null;size:255"` // bcrypt 哈希不通过JSON暴露
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
}

// TableName 指定 User 结构体对应的数据库表名
func (User) TableName() string {
	return "users"
}
