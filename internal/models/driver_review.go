package models

import (
	"time"

	"gorm.io/gorm"
)

// DriverReview 骑手评价表
type DriverReview struct {
	ID         uint           `gorm:"primarykey" json:"id"`                 // 主键
	OrderID    uint           `gorm:"uniqueIndex;not null" json:"order_id"` // 订单ID（一单一评）
	DriverID   uint           `gorm:"index;not null" json:"driver_id"`      // 被评骑手ID
	CustomerID uint           `gorm:"index;not null" json:"customer_id"`    // 评价顾客ID
	Rating     int            `gorm:"not null" json:"rating"`               // 评分（1-5）
	Comment    string         `gorm:"default:''" json:"comment"`            // 评语
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间
}

// TableName 指定表名
func (DriverReview) TableName() string {
	return "driver_reviews"
}
