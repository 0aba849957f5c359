package repository

import (
	"time"

	"github.com/healer-next/internal/models"

	"gorm.io/gorm"
)

// EmailVerifyCodeRepository 邮箱验证码存取接口。
// 校验永远只看同邮箱同用途下最近一条记录，旧验证码自然失效。
type EmailVerifyCodeRepository interface {
	Create(code *models.EmailVerifyCode) error
	Latest(email, purpose string) (*models.EmailVerifyCode, error)
	MarkVerified(id uint, verifiedAt time.Time) error
	BumpAttempts(id uint) error
}

// GormEmailVerifyCodeRepository GORM 实现
type GormEmailVerifyCodeRepository struct {
	db *gorm.DB
}

// NewEmailVerifyCodeRepository 创建邮箱验证码仓库
func NewEmailVerifyCodeRepository(db *gorm.DB) *GormEmailVerifyCodeRepository {
	return &GormEmailVerifyCodeRepository{db: db}
}

// Create 写入新验证码记录
func (r *GormEmailVerifyCodeRepository) Create(code *models.EmailVerifyCode) error {
	return r.db.Create(code).Error
}

// Latest 取最近一次发送的验证码，不存在时返回 nil
func (r *GormEmailVerifyCodeRepository) Latest(email, purpose string) (*models.EmailVerifyCode, error) {
	var records []models.EmailVerifyCode
	err := r.db.Where("email = ? AND purpose = ?", email, purpose).
		Order("sent_at DESC, id DESC").
		Limit(1).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// MarkVerified 标记验证码已使用，使其不能再次通过校验
func (r *GormEmailVerifyCodeRepository) MarkVerified(id uint, verifiedAt time.Time) error {
	return r.db.Model(&models.EmailVerifyCode{}).
		Where("id = ?", id).
		Update("verified_at", verifiedAt).Error
}

// BumpAttempts 校验失败时累加尝试次数
func (r *GormEmailVerifyCodeRepository) BumpAttempts(id uint) error {
	return r.db.Model(&models.EmailVerifyCode{}).
		Where("id = ?", id).
		UpdateColumn("attempt_count", gorm.Expr("attempt_count + 1")).Error
}
