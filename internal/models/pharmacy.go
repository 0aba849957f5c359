package models

import (
	"time"

	"gorm.io/gorm"
)

// Pharmacy 药房表
type Pharmacy struct {
	ID            uint           `gorm:"primarykey" json:"id"`                // 主键
	OwnerID       uint           `gorm:"uniqueIndex;not null" json:"owner_id"` // 所属用户ID（pharmacy 角色）
	Name          string         `gorm:"index;not null" json:"name"`          // 药房名称
	Address       string         `gorm:"not null" json:"address"`             // 地址
	State         string         `gorm:"index;not null" json:"state"`         // 所在邦
	Latitude      float64        `gorm:"not null" json:"latitude"`            // 纬度
	Longitude     float64        `gorm:"not null" json:"longitude"`           // 经度
	Phone         string         `gorm:"default:''" json:"phone"`             // 联系电话
	LicenseNumber string         `gorm:"default:''" json:"license_number"`    // 药房执照编号
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"` // 是否营业中
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`             // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`             // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                      // 软删除时间
}

// TableName 指定表名
func (Pharmacy) TableName() string {
	return "pharmacies"
}
