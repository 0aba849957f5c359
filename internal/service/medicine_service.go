package service

import (
	"sort"
	"strings"

	"github.com/healer-next/internal/geo"
	"github.com/healer-next/internal/models"
	"github.com/healer-next/internal/repository"

	"github.com/shopspring/decimal"
)

// MedicineService 药品服务
type MedicineService struct {
	medicineRepo repository.MedicineRepository
	pharmacyRepo repository.PharmacyRepository
	clock        Clock
}

// NewMedicineService 创建药品服务
func NewMedicineService(medicineRepo repository.MedicineRepository, pharmacyRepo repository.PharmacyRepository) *MedicineService {
	return &MedicineService{
		medicineRepo: medicineRepo,
		pharmacyRepo: pharmacyRepo,
		clock:        SystemClock(),
	}
}

// CreateMedicineInput 创建/更新药品输入
type CreateMedicineInput struct {
	Name                 string
	Description          string
	Category             string
	Price                decimal.Decimal
	Stock                int
	RequiresPrescription bool
}

// Create 创建药品，药品挂在当前账号的药房名下
func (s *MedicineService) Create(ownerID uint, input CreateMedicineInput) (*models.Medicine, error) {
	pharmacy, err := s.pharmacyRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if pharmacy == nil {
		return nil, ErrPharmacyNotFound
	}

	now := s.clock.Now()
	medicine := &models.Medicine{
		PharmacyID:           pharmacy.ID,
		Name:                 strings.TrimSpace(input.Name),
		Description:          strings.TrimSpace(input.Description),
		Category:             strings.TrimSpace(input.Category),
		Price:                models.NewMoneyFromDecimal(input.Price),
		Stock:                input.Stock,
		RequiresPrescription: input.RequiresPrescription,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.medicineRepo.Create(medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

// Update 更新药品，仅限所属药房
func (s *MedicineService) Update(ownerID, medicineID uint, input CreateMedicineInput, isActive *bool) (*models.Medicine, error) {
	medicine, err := s.requireOwnedMedicine(ownerID, medicineID)
	if err != nil {
		return nil, err
	}

	medicine.Name = strings.TrimSpace(input.Name)
	medicine.Description = strings.TrimSpace(input.Description)
	medicine.Category = strings.TrimSpace(input.Category)
	medicine.Price = models.NewMoneyFromDecimal(input.Price)
	medicine.Stock = input.Stock
	medicine.RequiresPrescription = input.RequiresPrescription
	if isActive != nil {
		medicine.IsActive = *isActive
	}
	medicine.UpdatedAt = s.clock.Now()
	if err := s.medicineRepo.Update(medicine); err != nil {
		return nil, err
	}
	return medicine, nil
}

// Delete 删除药品，仅限所属药房
func (s *MedicineService) Delete(ownerID, medicineID uint) error {
	if _, err := s.requireOwnedMedicine(ownerID, medicineID); err != nil {
		return err
	}
	return s.medicineRepo.Delete(medicineID)
}

// GetByID 获取药品详情
func (s *MedicineService) GetByID(id uint) (*models.Medicine, error) {
	if id == 0 {
		return nil, ErrMedicineNotFound
	}
	medicine, err := s.medicineRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}
	return medicine, nil
}

// ListByOwner 当前药房的药品列表
func (s *MedicineService) ListByOwner(ownerID uint, page, pageSize int) ([]models.Medicine, int64, error) {
	pharmacy, err := s.pharmacyRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, 0, err
	}
	if pharmacy == nil {
		return nil, 0, ErrPharmacyNotFound
	}
	return s.medicineRepo.List(repository.MedicineListFilter{
		PharmacyID: pharmacy.ID,
		Page:       page,
		PageSize:   pageSize,
	})
}

// List 药品目录（仅上架药品）
func (s *MedicineService) List(filter repository.MedicineListFilter) ([]models.Medicine, int64, error) {
	filter.ActiveOnly = true
	return s.medicineRepo.List(filter)
}

// SearchResult 搜索结果项，按调用方位置补充距离与预计送达时间
type SearchResult struct {
	Medicine         models.Medicine `json:"medicine"`
	DistanceKm       *float64        `json:"distance_km,omitempty"`
	EstimatedMinutes *int            `json:"estimated_minutes,omitempty"`
}

// Search 搜索上架药品。给定调用方坐标时计算与各药房的距离并按距离排序，
// 否则按价格排序。
func (s *MedicineService) Search(filter repository.MedicineListFilter, latitude, longitude *float64) ([]SearchResult, int64, error) {
	filter.ActiveOnly = true
	medicines, total, err := s.medicineRepo.Search(filter)
	if err != nil {
		return nil, 0, err
	}

	results := make([]SearchResult, 0, len(medicines))
	for _, medicine := range medicines {
		result := SearchResult{Medicine: medicine}
		if latitude != nil && longitude != nil && medicine.Pharmacy != nil {
			distance := geo.DistanceKm(
				geo.Point{Latitude: *latitude, Longitude: *longitude},
				geo.Point{Latitude: medicine.Pharmacy.Latitude, Longitude: medicine.Pharmacy.Longitude},
			)
			eta := geo.EstimatedMinutes(distance)
			result.DistanceKm = &distance
			result.EstimatedMinutes = &eta
		}
		results = append(results, result)
	}

	if latitude != nil && longitude != nil {
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].DistanceKm == nil || results[j].DistanceKm == nil {
				return results[j].DistanceKm == nil
			}
			return *results[i].DistanceKm < *results[j].DistanceKm
		})
	}
	return results, total, nil
}

func (s *MedicineService) requireOwnedMedicine(ownerID, medicineID uint) (*models.Medicine, error) {
	pharmacy, err := s.pharmacyRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if pharmacy == nil {
		return nil, ErrPharmacyNotFound
	}
	medicine, err := s.medicineRepo.GetByID(medicineID)
	if err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}
	if medicine.PharmacyID != pharmacy.ID {
		return nil, ErrMedicineWrongPharmacy
	}
	return medicine, nil
}
