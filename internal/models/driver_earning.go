package models

import (
	"time"

	"gorm.io/gorm"
)

// DriverEarning 骑手单笔配送收入记录
type DriverEarning struct {
	ID         uint           `gorm:"primarykey" json:"id"`                // 主键
	DriverID   uint           `gorm:"index;not null" json:"driver_id"`     // 骑手ID
	OrderID    uint           `gorm:"uniqueIndex;not null" json:"order_id"` // 订单ID（一单一笔）
	Amount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount"` // 收入金额
	DistanceKm float64        `gorm:"not null;default:0" json:"distance_km"` // 配送距离（公里）
	State      string         `gorm:"index;not null" json:"state"`         // 计费所用的邦
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`             // 创建时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                      // 软删除时间
}

// TableName 指定表名
func (DriverEarning) TableName() string {
	return "driver_earnings"
}
