package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（顾客 / 药房 / 骑手共用，按角色区分）
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                 // 主键
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`    // 邮箱
	PasswordHash       string         `gorm:"not null" json:"-"`                    // 密码哈希（不返回给前端）
	Name               string         `gorm:"default:''" json:"name"`               // 姓名
	Phone              string         `gorm:"default:''" json:"phone"`              // 手机号
	Role               string         `gorm:"index;not null" json:"role"`           // 角色（customer/pharmacy/driver）
	Address            string         `gorm:"default:''" json:"address"`            // 默认收货地址
	RewardPoints       int            `gorm:"not null;default:0" json:"reward_points"` // 积分余额
	IsPro              bool           `gorm:"not null;default:false" json:"is_pro"` // 是否 Healer Pro 会员
	ProExpiresAt       *time.Time     `json:"pro_expires_at"`                       // 会员到期时间
	Status             string         `gorm:"default:'active'" json:"status"`       // 账号状态
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`          // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                       // 该时间点前签发的 Token 失效
	EmailVerifiedAt    *time.Time     `json:"email_verified_at"`                    // 邮箱验证时间
	LastLoginAt        *time.Time     `json:"last_login_at"`                        // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`              // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// ProActive 会员是否在有效期内
func (u *User) ProActive(now time.Time) bool {
	if !u.IsPro {
		return false
	}
	if u.ProExpiresAt == nil {
		return true
	}
	return u.ProExpiresAt.After(now)
}
