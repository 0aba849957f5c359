package models

import (
	"time"

	"gorm.io/gorm"
)

// EmailVerifyCode 邮箱验证码记录，注册、登录校验和密码重置共用
type EmailVerifyCode struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"index:idx_verify_lookup;not null" json:"email"`   // 收件邮箱
	UserID       *uint          `gorm:"index" json:"user_id"`                            // 已注册用户的ID，注册场景为空
	Purpose      string         `gorm:"index:idx_verify_lookup;not null" json:"purpose"` // register/login/reset
	Code         string         `gorm:"not null" json:"-"`                               // 验证码明文不出接口
	ExpiresAt    time.Time      `gorm:"index" json:"expires_at"`
	VerifiedAt   *time.Time     `json:"verified_at"`
	AttemptCount int            `gorm:"default:0" json:"attempt_count"`
	SentAt       time.Time      `gorm:"index:idx_verify_lookup" json:"sent_at"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (EmailVerifyCode) TableName() string {
	return "email_verify_codes"
}

// Consumed 验证码是否已被使用
func (c *EmailVerifyCode) Consumed() bool {
	return c != nil && c.VerifiedAt != nil
}

// ExpiredAt 验证码在给定时刻是否已过期
func (c *EmailVerifyCode) ExpiredAt(now time.Time) bool {
	return c == nil || c.ExpiresAt.Before(now)
}
