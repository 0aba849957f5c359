package repository

import (
	"errors"

	"github.com/healer-next/internal/models"

	"gorm.io/gorm"
)

// PharmacyRepository 药房数据访问接口
type PharmacyRepository interface {
	Create(pharmacy *models.Pharmacy) error
	GetByID(id uint) (*models.Pharmacy, error)
	GetByOwner(ownerID uint) (*models.Pharmacy, error)
	Update(pharmacy *models.Pharmacy) error
	List(filter PharmacyListFilter) ([]models.Pharmacy, int64, error)
	WithTx(tx *gorm.DB) *GormPharmacyRepository
}

// GormPharmacyRepository GORM 实现
type GormPharmacyRepository struct {
	db *gorm.DB
}

// NewPharmacyRepository 创建药房仓库
func NewPharmacyRepository(db *gorm.DB) *GormPharmacyRepository {
	return &GormPharmacyRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPharmacyRepository) WithTx(tx *gorm.DB) *GormPharmacyRepository {
	if tx == nil {
		return r
	}
	return &GormPharmacyRepository{db: tx}
}

// Create 创建药房
func (r *GormPharmacyRepository) Create(pharmacy *models.Pharmacy) error {
	return r.db.Create(pharmacy).Error
}

// GetByID 根据 ID 获取药房
func (r *GormPharmacyRepository) GetByID(id uint) (*models.Pharmacy, error) {
	var pharmacy models.Pharmacy
	if err := r.db.First(&pharmacy, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pharmacy, nil
}

// GetByOwner 根据所属用户获取药房
func (r *GormPharmacyRepository) GetByOwner(ownerID uint) (*models.Pharmacy, error) {
	var pharmacy models.Pharmacy
	if err := r.db.Where("owner_id = ?", ownerID).First(&pharmacy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pharmacy, nil
}

// Update 更新药房
func (r *GormPharmacyRepository) Update(pharmacy *models.Pharmacy) error {
	return r.db.Save(pharmacy).Error
}

// List 药房列表
func (r *GormPharmacyRepository) List(filter PharmacyListFilter) ([]models.Pharmacy, int64, error) {
	query := r.db.Model(&models.Pharmacy{})

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		condition, argCount := buildKeywordLikeCondition(r.db, []string{"name", "address"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}
	if filter.State != "" {
		query = query.Where("state = ?", filter.State)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var pharmacies []models.Pharmacy
	if err := query.Order("id DESC").Find(&pharmacies).Error; err != nil {
		return nil, 0, err
	}
	return pharmacies, total, nil
}
