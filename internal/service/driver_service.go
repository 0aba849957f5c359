package service

import (
	"strings"

	"github.com/healer-next/internal/constants"
	"github.com/healer-next/internal/models"
	"github.com/healer-next/internal/repository"

	"github.com/shopspring/decimal"
)

// DriverService 骑手服务
type DriverService struct {
	driverRepo repository.DriverRepository
	userRepo   repository.UserRepository
	clock      Clock
}

// NewDriverService 创建骑手服务
func NewDriverService(driverRepo repository.DriverRepository, userRepo repository.UserRepository) *DriverService {
	return &DriverService{
		driverRepo: driverRepo,
		userRepo:   userRepo,
		clock:      SystemClock(),
	}
}

// RegisterDriverInput 创建骑手档案输入
type RegisterDriverInput struct {
	UserID        uint
	VehicleNumber string
	LicenseNumber string
	State         string
}

// RegisterProfile 为骑手账号创建配送档案，一个账号只允许一份
func (s *DriverService) RegisterProfile(input RegisterDriverInput) (*models.Driver, error) {
	user, err := s.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if user.Role != constants.RoleDriver {
		return nil, ErrInvalidRole
	}

	exist, err := s.driverRepo.GetByUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrDriverExists
	}

	now := s.clock.Now()
	driver := &models.Driver{
		UserID:        input.UserID,
		VehicleNumber: strings.TrimSpace(input.VehicleNumber),
		LicenseNumber: strings.TrimSpace(input.LicenseNumber),
		State:         strings.TrimSpace(input.State),
		IsAvailable:   true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.driverRepo.Create(driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// GetProfile 获取骑手档案
func (s *DriverService) GetProfile(userID uint) (*models.Driver, error) {
	driver, err := s.driverRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrDriverNotFound
	}
	return driver, nil
}

// UpdateProfileInput 更新骑手档案输入，nil 表示不修改
type UpdateProfileInput struct {
	VehicleNumber *string
	LicenseNumber *string
	State         *string
}

// UpdateProfile 更新骑手档案
func (s *DriverService) UpdateProfile(userID uint, input UpdateProfileInput) (*models.Driver, error) {
	driver, err := s.driverRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrDriverNotFound
	}
	if input.VehicleNumber != nil {
		driver.VehicleNumber = strings.TrimSpace(*input.VehicleNumber)
	}
	if input.LicenseNumber != nil {
		driver.LicenseNumber = strings.TrimSpace(*input.LicenseNumber)
	}
	if input.State != nil {
		driver.State = strings.TrimSpace(*input.State)
	}
	driver.UpdatedAt = s.clock.Now()
	if err := s.driverRepo.Update(driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// SetAvailability 设置接单状态
func (s *DriverService) SetAvailability(userID uint, available bool) (*models.Driver, error) {
	driver, err := s.driverRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrDriverNotFound
	}
	if err := s.driverRepo.SetAvailability(driver.ID, available); err != nil {
		return nil, err
	}
	driver.IsAvailable = available
	return driver, nil
}

// UpdateLocation 上报当前位置
func (s *DriverService) UpdateLocation(userID uint, latitude, longitude float64) error {
	driver, err := s.driverRepo.GetByUserID(userID)
	if err != nil {
		return err
	}
	if driver == nil {
		return ErrDriverNotFound
	}
	return s.driverRepo.UpdateLocation(driver.ID, latitude, longitude)
}

// EarningsSummary 收入汇总
type EarningsSummary struct {
	TotalAmount     models.Money           `json:"total_amount"`
	TotalDeliveries int                    `json:"total_deliveries"`
	Rating          float64                `json:"rating"`
	Records         []models.DriverEarning `json:"records"`
	RecordTotal     int64                  `json:"record_total"`
}

// Earnings 收入明细与汇总
func (s *DriverService) Earnings(userID uint, filter repository.DriverEarningListFilter) (*EarningsSummary, error) {
	driver, err := s.driverRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrDriverNotFound
	}
	filter.DriverID = driver.ID
	records, total, err := s.driverRepo.ListEarnings(filter)
	if err != nil {
		return nil, err
	}
	return &EarningsSummary{
		TotalAmount:     driver.TotalEarnings,
		TotalDeliveries: driver.TotalDeliveries,
		Rating:          driver.Rating,
		Records:         records,
		RecordTotal:     total,
	}, nil
}

// Reviews 骑手收到的评价列表
func (s *DriverService) Reviews(userID uint, page, pageSize int) ([]models.DriverReview, int64, error) {
	driver, err := s.driverRepo.GetByUserID(userID)
	if err != nil {
		return nil, 0, err
	}
	if driver == nil {
		return nil, 0, ErrDriverNotFound
	}
	return s.driverRepo.ListReviews(driver.ID, page, pageSize)
}

// ReviewsOf 指定骑手的评价列表（顾客、药房侧查看）
func (s *DriverService) ReviewsOf(driverID uint, page, pageSize int) ([]models.DriverReview, int64, error) {
	driver, err := s.driverRepo.GetByID(driverID)
	if err != nil {
		return nil, 0, err
	}
	if driver == nil {
		return nil, 0, ErrDriverNotFound
	}
	return s.driverRepo.ListReviews(driver.ID, page, pageSize)
}

// RoundRating 评分保留两位小数
func RoundRating(rating float64) float64 {
	rounded, _ := decimal.NewFromFloat(rating).Round(2).Float64()
	return rounded
}
