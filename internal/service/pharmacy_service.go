package service

import (
	"strings"

	"github.com/healer-next/internal/models"
	"github.com/healer-next/internal/repository"
)

// PharmacyService 药房服务
type PharmacyService struct {
	pharmacyRepo repository.PharmacyRepository
	clock        Clock
}

// NewPharmacyService 创建药房服务
func NewPharmacyService(pharmacyRepo repository.PharmacyRepository) *PharmacyService {
	return &PharmacyService{
		pharmacyRepo: pharmacyRepo,
		clock:        SystemClock(),
	}
}

// CreatePharmacyInput 创建药房输入
type CreatePharmacyInput struct {
	OwnerID       uint
	Name          string
	Address       string
	State         string
	Latitude      float64
	Longitude     float64
	Phone         string
	LicenseNumber string
}

// Create 创建药房，一个药房账号只能登记一家药房
func (s *PharmacyService) Create(input CreatePharmacyInput) (*models.Pharmacy, error) {
	if input.OwnerID == 0 {
		return nil, ErrNotFound
	}
	exist, err := s.pharmacyRepo.GetByOwner(input.OwnerID)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrPharmacyExists
	}

	now := s.clock.Now()
	pharmacy := &models.Pharmacy{
		OwnerID:       input.OwnerID,
		Name:          strings.TrimSpace(input.Name),
		Address:       strings.TrimSpace(input.Address),
		State:         strings.TrimSpace(input.State),
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		Phone:         strings.TrimSpace(input.Phone),
		LicenseNumber: strings.TrimSpace(input.LicenseNumber),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.pharmacyRepo.Create(pharmacy); err != nil {
		return nil, err
	}
	return pharmacy, nil
}

// GetByID 获取药房详情
func (s *PharmacyService) GetByID(id uint) (*models.Pharmacy, error) {
	if id == 0 {
		return nil, ErrPharmacyNotFound
	}
	pharmacy, err := s.pharmacyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pharmacy == nil {
		return nil, ErrPharmacyNotFound
	}
	return pharmacy, nil
}

// GetByOwner 获取当前账号的药房
func (s *PharmacyService) GetByOwner(ownerID uint) (*models.Pharmacy, error) {
	pharmacy, err := s.pharmacyRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if pharmacy == nil {
		return nil, ErrPharmacyNotFound
	}
	return pharmacy, nil
}

// UpdatePharmacyInput 更新药房输入，nil 字段表示不修改
type UpdatePharmacyInput struct {
	Name          *string
	Address       *string
	State         *string
	Latitude      *float64
	Longitude     *float64
	Phone         *string
	LicenseNumber *string
	IsActive      *bool
}

// Update 更新当前账号的药房资料
func (s *PharmacyService) Update(ownerID uint, input UpdatePharmacyInput) (*models.Pharmacy, error) {
	pharmacy, err := s.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		pharmacy.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		pharmacy.Address = strings.TrimSpace(*input.Address)
	}
	if input.State != nil {
		pharmacy.State = strings.TrimSpace(*input.State)
	}
	if input.Latitude != nil {
		pharmacy.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		pharmacy.Longitude = *input.Longitude
	}
	if input.Phone != nil {
		pharmacy.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.LicenseNumber != nil {
		pharmacy.LicenseNumber = strings.TrimSpace(*input.LicenseNumber)
	}
	if input.IsActive != nil {
		pharmacy.IsActive = *input.IsActive
	}
	pharmacy.UpdatedAt = s.clock.Now()

	if err := s.pharmacyRepo.Update(pharmacy); err != nil {
		return nil, err
	}
	return pharmacy, nil
}

// List 药房列表
func (s *PharmacyService) List(filter repository.PharmacyListFilter) ([]models.Pharmacy, int64, error) {
	return s.pharmacyRepo.List(filter)
}
