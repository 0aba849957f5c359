package models

import (
	"time"

	"gorm.io/gorm"
)

// Driver 骑手档案表
type Driver struct {
	ID              uint           `gorm:"primarykey" json:"id"`                  // 主键
	UserID          uint           `gorm:"uniqueIndex;not null" json:"user_id"`   // 所属用户ID（driver 角色）
	VehicleNumber   string         `gorm:"not null" json:"vehicle_number"`        // 车牌号
	LicenseNumber   string         `gorm:"default:''" json:"license_number"`      // 驾照编号
	State           string         `gorm:"index;not null" json:"state"`           // 所在邦（决定计费费率）
	IsAvailable     bool           `gorm:"index;not null;default:true" json:"is_available"` // 是否可接单
	CurrentLatitude  float64       `gorm:"not null;default:0" json:"current_latitude"`  // 当前纬度
	CurrentLongitude float64       `gorm:"not null;default:0" json:"current_longitude"` // 当前经度
	Rating          float64        `gorm:"not null;default:0" json:"rating"`      // 平均评分（2 位小数）
	TotalEarnings   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_earnings"` // 累计收入
	TotalDeliveries int            `gorm:"not null;default:0" json:"total_deliveries"` // 累计完成配送数
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`               // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`               // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                        // 软删除时间
}

// TableName 指定表名
func (Driver) TableName() string {
	return "drivers"
}
