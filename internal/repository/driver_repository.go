package repository

import (
	"errors"

	"github.com/healer-next/internal/models"

	"gorm.io/gorm"
)

// DriverRepository 骑手数据访问接口
type DriverRepository interface {
	Create(driver *models.Driver) error
	GetByID(id uint) (*models.Driver, error)
	GetByUserID(userID uint) (*models.Driver, error)
	Update(driver *models.Driver) error
	UpdateLocation(id uint, latitude, longitude float64) error
	SetAvailability(id uint, available bool) error
	ApplyDeliveryResult(driverID uint, amount models.Money) error
	UpdateRating(driverID uint, rating float64) error
	CreateEarning(earning *models.DriverEarning) error
	ListEarnings(filter DriverEarningListFilter) ([]models.DriverEarning, int64, error)
	CreateReview(review *models.DriverReview) error
	GetReviewByOrder(orderID uint) (*models.DriverReview, error)
	ListReviews(driverID uint, page, pageSize int) ([]models.DriverReview, int64, error)
	AverageRating(driverID uint) (float64, int64, error)
	WithTx(tx *gorm.DB) *GormDriverRepository
}

// GormDriverRepository GORM 实现
type GormDriverRepository struct {
	db *gorm.DB
}

// NewDriverRepository 创建骑手仓库
func NewDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDriverRepository) WithTx(tx *gorm.DB) *GormDriverRepository {
	if tx == nil {
		return r
	}
	return &GormDriverRepository{db: tx}
}

// Create 创建骑手档案
func (r *GormDriverRepository) Create(driver *models.Driver) error {
	return r.db.Create(driver).Error
}

// GetByID 根据 ID 获取骑手
func (r *GormDriverRepository) GetByID(id uint) (*models.Driver, error) {
	var driver models.Driver
	if err := r.db.First(&driver, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

// GetByUserID 根据所属用户获取骑手
func (r *GormDriverRepository) GetByUserID(userID uint) (*models.Driver, error) {
	var driver models.Driver
	if err := r.db.Where("user_id = ?", userID).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

// Update 更新骑手档案
func (r *GormDriverRepository) Update(driver *models.Driver) error {
	return r.db.Save(driver).Error
}

// UpdateLocation 更新骑手当前位置
func (r *GormDriverRepository) UpdateLocation(id uint, latitude, longitude float64) error {
	return r.db.Model(&models.Driver{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_latitude":  latitude,
			"current_longitude": longitude,
		}).Error
}

// SetAvailability 设置骑手可接单状态
func (r *GormDriverRepository) SetAvailability(id uint, available bool) error {
	return r.db.Model(&models.Driver{}).
		Where("id = ?", id).
		Update("is_available", available).Error
}

// ApplyDeliveryResult 累加骑手收入与完成配送数
func (r *GormDriverRepository) ApplyDeliveryResult(driverID uint, amount models.Money) error {
	return r.db.Model(&models.Driver{}).
		Where("id = ?", driverID).
		Updates(map[string]interface{}{
			"total_earnings":   gorm.Expr("total_earnings + ?", amount.Decimal),
			"total_deliveries": gorm.Expr("total_deliveries + 1"),
		}).Error
}

// UpdateRating 更新骑手平均评分
func (r *GormDriverRepository) UpdateRating(driverID uint, rating float64) error {
	return r.db.Model(&models.Driver{}).
		Where("id = ?", driverID).
		Update("rating", rating).Error
}

// CreateEarning 创建收入记录
func (r *GormDriverRepository) CreateEarning(earning *models.DriverEarning) error {
	return r.db.Create(earning).Error
}

// ListEarnings 收入记录列表
func (r *GormDriverRepository) ListEarnings(filter DriverEarningListFilter) ([]models.DriverEarning, int64, error) {
	query := r.db.Model(&models.DriverEarning{}).Where("driver_id = ?", filter.DriverID)

	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var earnings []models.DriverEarning
	if err := query.Order("id desc").Find(&earnings).Error; err != nil {
		return nil, 0, err
	}
	return earnings, total, nil
}

// CreateReview 创建评价
func (r *GormDriverRepository) CreateReview(review *models.DriverReview) error {
	return r.db.Create(review).Error
}

// GetReviewByOrder 根据订单获取评价
func (r *GormDriverRepository) GetReviewByOrder(orderID uint) (*models.DriverReview, error) {
	var review models.DriverReview
	if err := r.db.Where("order_id = ?", orderID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// ListReviews 骑手评价列表
func (r *GormDriverRepository) ListReviews(driverID uint, page, pageSize int) ([]models.DriverReview, int64, error) {
	query := r.db.Model(&models.DriverReview{}).Where("driver_id = ?", driverID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var reviews []models.DriverReview
	if err := query.Order("id desc").Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// AverageRating 骑手全部评价的平均分与评价数
func (r *GormDriverRepository) AverageRating(driverID uint) (float64, int64, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	if err := r.db.Model(&models.DriverReview{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("driver_id = ?", driverID).
		Take(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Avg, row.Count, nil
}
