package models

import "time"

// Commodity 对应于数据库中的 commodities 表（原始建表语句中的 Commodities 在 PostgreSQL 中会折叠为小写）
type Commodity struct {
	ID      int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name    string     `json:"name" gorm:"column:name;not null;size:255"`
	Inquiry string     `json:"inquiry" gorm:"column:inquiry;size:255"`
	Offer   string     `json:"offer" gorm:"column:offer;size:255"`
	Price   float64    `json:"price" gorm:"column:price"`
	Amount  float64    `json:"amount" gorm:"column:amount"`
	Date    *time.Time `json:"date,omitempty" gorm:"column:date;type:date"`
	Parita  string     `json:"parita" gorm:"column:parita;size:255"`
}

// TableName 指定 Commodity 结构体对应的数据库表名
func (Commodity) TableName() string {
	return "commodities"
}
