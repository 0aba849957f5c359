package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/healer-next/internal/constants"
	"github.com/healer-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndCustomer(id uint, customerID uint) (*models.Order, error)
	ListByCustomer(filter OrderListFilter) ([]models.Order, int64, error)
	ListByPharmacy(filter OrderListFilter) ([]models.Order, int64, error)
	ListByDriver(filter OrderListFilter) ([]models.Order, int64, error)
	ListUnassigned(page, pageSize int) ([]models.Order, int64, error)
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	AssignDriver(orderID, driverID uint) (int64, error)
	MarkDelivered(orderID, driverID uint, deliveredAt time.Time) (int64, error)
	ResolveReceiverEmailByOrderID(orderID uint) (string, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create 创建订单与订单项
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndCustomer 获取顾客订单详情
func (r *GormOrderRepository) GetByIDAndCustomer(id uint, customerID uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByCustomer 获取顾客订单列表
func (r *GormOrderRepository) ListByCustomer(filter OrderListFilter) ([]models.Order, int64, error) {
	return r.list(filter, "customer_id = ?", filter.CustomerID)
}

// ListByPharmacy 获取药房订单列表
func (r *GormOrderRepository) ListByPharmacy(filter OrderListFilter) ([]models.Order, int64, error) {
	return r.list(filter, "pharmacy_id = ?", filter.PharmacyID)
}

// ListByDriver 获取骑手订单列表
func (r *GormOrderRepository) ListByDriver(filter OrderListFilter) ([]models.Order, int64, error) {
	return r.list(filter, "driver_id = ?", filter.DriverID)
}

func (r *GormOrderRepository) list(filter OrderListFilter, scope string, scopeArg interface{}) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where(scope, scopeArg)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderNo != "" {
		condition, argCount := buildKeywordLikeCondition(r.db, []string{"order_no"})
		query = query.Where(condition, repeatLikeArgs("%"+filter.OrderNo+"%", argCount)...)
	}
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

	var orders []models.Order
	if err := query.Preload("Items").Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListUnassigned 获取骑手可浏览接单的订单。只有药房已接单
// 且尚未指派骑手的订单可被浏览，备货中的订单不再开放抢单。
func (r *GormOrderRepository) ListUnassigned(page, pageSize int) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).
		Where("driver_id IS NULL AND status = ?", constants.OrderStatusAccepted)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var orders []models.Order
	if err := query.Preload("Items").Order("id asc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus 更新订单状态
func (r *GormOrderRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}

// AssignDriver 分配骑手。只有已接单且未指派的订单可被认领，
// 条件更新避免并发重复分配，返回受影响行数。
func (r *GormOrderRepository) AssignDriver(orderID, driverID uint) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND driver_id IS NULL AND status = ?", orderID, constants.OrderStatusAccepted).
		Update("driver_id", driverID)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// MarkDelivered 标记订单送达。条件更新保证只有负责配送的骑手能完成、
// 且同一订单只完成一次，返回受影响行数。
func (r *GormOrderRepository) MarkDelivered(orderID, driverID uint, deliveredAt time.Time) (int64, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND driver_id = ? AND status IN ?", orderID, driverID, []string{
			constants.OrderStatusPickedUp,
			constants.OrderStatusInTransit,
		}).
		Updates(map[string]interface{}{
			"status":       constants.OrderStatusDelivered,
			"delivered_at": deliveredAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ResolveReceiverEmailByOrderID 根据订单 ID 解析状态通知的收件邮箱。
func (r *GormOrderRepository) ResolveReceiverEmailByOrderID(orderID uint) (string, error) {
	if orderID == 0 {
		return "", nil
	}

	var orderRow struct {
		CustomerID uint
	}
	if err := r.db.Model(&models.Order{}).
		Select("customer_id").
		Where("id = ?", orderID).
		Take(&orderRow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	if orderRow.CustomerID == 0 {
		return "", nil
	}

	var userRow struct {
		Email string
	}
	if err := r.db.Model(&models.User{}).
		Select("email").
		Where("id = ?", orderRow.CustomerID).
		Take(&userRow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(userRow.Email), nil
}
