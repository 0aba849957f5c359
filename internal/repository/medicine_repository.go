package repository

import (
	"errors"

	"github.com/healer-next/internal/models"

	"gorm.io/gorm"
)

// MedicineRepository 药品数据访问接口
type MedicineRepository interface {
	Create(medicine *models.Medicine) error
	GetByID(id uint) (*models.Medicine, error)
	Update(medicine *models.Medicine) error
	Delete(id uint) error
	List(filter MedicineListFilter) ([]models.Medicine, int64, error)
	Search(filter MedicineListFilter) ([]models.Medicine, int64, error)
	DecrementStock(id uint, quantity int) (int64, error)
	IncrementStock(id uint, quantity int) error
	WithTx(tx *gorm.DB) *GormMedicineRepository
}

// GormMedicineRepository GORM 实现
type GormMedicineRepository struct {
	db *gorm.DB
}

// NewMedicineRepository 创建药品仓库
func NewMedicineRepository(db *gorm.DB) *GormMedicineRepository {
	return &GormMedicineRepository{db: db}
}

// WithTx 绑定事务
func (r *GormMedicineRepository) WithTx(tx *gorm.DB) *GormMedicineRepository {
	if tx == nil {
		return r
	}
	return &GormMedicineRepository{db: tx}
}

// Create 创建药品
func (r *GormMedicineRepository) Create(medicine *models.Medicine) error {
	return r.db.Create(medicine).Error
}

// GetByID 根据 ID 获取药品
func (r *GormMedicineRepository) GetByID(id uint) (*models.Medicine, error) {
	var medicine models.Medicine
	if err := r.db.First(&medicine, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &medicine, nil
}

// Update 更新药品
func (r *GormMedicineRepository) Update(medicine *models.Medicine) error {
	return r.db.Save(medicine).Error
}

// Delete 删除药品（软删除）
func (r *GormMedicineRepository) Delete(id uint) error {
	return r.db.Delete(&models.Medicine{}, id).Error
}

// List 药品列表
func (r *GormMedicineRepository) List(filter MedicineListFilter) ([]models.Medicine, int64, error) {
	return r.list(filter, false)
}

// Search 药品搜索（带药房信息）
func (r *GormMedicineRepository) Search(filter MedicineListFilter) ([]models.Medicine, int64, error) {
	return r.list(filter, true)
}

func (r *GormMedicineRepository) list(filter MedicineListFilter, withPharmacy bool) ([]models.Medicine, int64, error) {
	query := r.db.Model(&models.Medicine{})

	if filter.PharmacyID != 0 {
		query = query.Where("pharmacy_id = ?", filter.PharmacyID)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		condition, argCount := buildKeywordLikeCondition(r.db, []string{"name", "description"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if withPharmacy {
		query = query.Preload("Pharmacy")
	}

	var medicines []models.Medicine
	if err := query.Order("price ASC, id ASC").Find(&medicines).Error; err != nil {
		return nil, 0, err
	}
	return medicines, total, nil
}

// DecrementStock 扣减库存。带库存下限守卫，返回受影响行数，
// 调用方据此判断库存是否足够。
func (r *GormMedicineRepository) DecrementStock(id uint, quantity int) (int64, error) {
	if quantity <= 0 {
		return 1, nil
	}
	result := r.db.Model(&models.Medicine{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementStock 回补库存（订单取消时）
func (r *GormMedicineRepository) IncrementStock(id uint, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	return r.db.Model(&models.Medicine{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity)).Error
}
