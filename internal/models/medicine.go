package models

import (
	"time"

	"gorm.io/gorm"
)

// Medicine 药品表
type Medicine struct {
	ID                   uint           `gorm:"primarykey" json:"id"`                   // 主键
	PharmacyID           uint           `gorm:"index;not null" json:"pharmacy_id"`      // 所属药房ID
	Name                 string         `gorm:"index;not null" json:"name"`             // 药品名称
	Description          string         `gorm:"default:''" json:"description"`          // 描述
	Category             string         `gorm:"index;default:''" json:"category"`       // 分类
	Price                Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价
	Stock                int            `gorm:"not null;default:0" json:"stock"`        // 库存
	RequiresPrescription bool           `gorm:"not null;default:false" json:"requires_prescription"` // 是否处方药
	IsActive             bool           `gorm:"not null;default:true" json:"is_active"` // 是否上架
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt            time.Time      `gorm:"index" json:"updated_at"`                // 更新时间
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间

	Pharmacy *Pharmacy `gorm:"foreignKey:PharmacyID" json:"pharmacy,omitempty"` // 关联药房
}

// TableName 指定表名
func (Medicine) TableName() string {
	return "medicines"
}
