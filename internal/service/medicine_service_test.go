package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/healer-next/internal/models"
	"github.com/healer-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupMedicineServiceTest(t *testing.T) (*MedicineService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:medicine_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Pharmacy{}, &models.Medicine{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewMedicineService(
		repository.NewMedicineRepository(db),
		repository.NewPharmacyRepository(db),
	)
	return svc, db
}

func createMedicineTestPharmacy(t *testing.T, db *gorm.DB, ownerID uint, name string, lat, lon float64) models.Pharmacy {
	t.Helper()

	now := time.Now()
	pharmacy := models.Pharmacy{
		OwnerID:   ownerID,
		Name:      name,
		Address:   "1 Test Road",
		State:     "Maharashtra",
		Latitude:  lat,
		Longitude: lon,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&pharmacy).Error; err != nil {
		t.Fatalf("create pharmacy failed: %v", err)
	}
	return pharmacy
}

func TestMedicineCreateRequiresPharmacy(t *testing.T) {
	svc, _ := setupMedicineServiceTest(t)

	_, err := svc.Create(42, CreateMedicineInput{Name: "Paracetamol", Price: decimal.NewFromInt(30), Stock: 10})
	if !errors.Is(err, ErrPharmacyNotFound) {
		t.Fatalf("expected pharmacy not found, got: %v", err)
	}
}

func TestMedicineCreateAndUpdateOwnership(t *testing.T) {
	svc, db := setupMedicineServiceTest(t)
	pharmacy := createMedicineTestPharmacy(t, db, 1, "Sharma Medicos", 18.52, 73.85)
	other := createMedicineTestPharmacy(t, db, 2, "Other Medicos", 18.60, 73.90)

	medicine, err := svc.Create(1, CreateMedicineInput{
		Name:     "  Paracetamol 500mg  ",
		Category: "fever",
		Price:    decimal.NewFromInt(30),
		Stock:    100,
	})
	if err != nil {
		t.Fatalf("create medicine failed: %v", err)
	}
	if medicine.PharmacyID != pharmacy.ID {
		t.Fatalf("medicine bound to wrong pharmacy: %d", medicine.PharmacyID)
	}
	if medicine.Name != "Paracetamol 500mg" {
		t.Fatalf("name should be trimmed, got %q", medicine.Name)
	}
	if !medicine.IsActive {
		t.Fatalf("new medicine should be active")
	}

	// 其他药房不能改动
	if _, err := svc.Update(other.OwnerID, medicine.ID, CreateMedicineInput{Name: "X", Price: decimal.NewFromInt(1)}, nil); !errors.Is(err, ErrMedicineWrongPharmacy) {
		t.Fatalf("expected wrong pharmacy error, got: %v", err)
	}
	if err := svc.Delete(other.OwnerID, medicine.ID); !errors.Is(err, ErrMedicineWrongPharmacy) {
		t.Fatalf("expected wrong pharmacy error on delete, got: %v", err)
	}

	inactive := false
	updated, err := svc.Update(1, medicine.ID, CreateMedicineInput{
		Name:  "Paracetamol 650mg",
		Price: decimal.NewFromInt(35),
		Stock: 80,
	}, &inactive)
	if err != nil {
		t.Fatalf("update medicine failed: %v", err)
	}
	if updated.Name != "Paracetamol 650mg" || updated.Stock != 80 || updated.IsActive {
		t.Fatalf("unexpected updated medicine: %+v", updated)
	}

	// 下架药品不出现在目录里
	rows, total, err := svc.List(repository.MedicineListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Fatalf("inactive medicine should be hidden, got total=%d", total)
	}

	if err := svc.Delete(1, medicine.ID); err != nil {
		t.Fatalf("delete medicine failed: %v", err)
	}
	if _, err := svc.GetByID(medicine.ID); !errors.Is(err, ErrMedicineNotFound) {
		t.Fatalf("expected not found after delete, got: %v", err)
	}
}

func TestMedicineSearchSortsByDistance(t *testing.T) {
	svc, db := setupMedicineServiceTest(t)
	near := createMedicineTestPharmacy(t, db, 1, "Near Pharmacy", 18.5204, 73.8567)
	far := createMedicineTestPharmacy(t, db, 2, "Far Pharmacy", 19.0760, 72.8777)

	now := time.Now()
	for _, m := range []models.Medicine{
		{PharmacyID: far.ID, Name: "Cetirizine 10mg", Category: "allergy", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(20)), Stock: 10, IsActive: true, CreatedAt: now, UpdatedAt: now},
		{PharmacyID: near.ID, Name: "Cetirizine 10mg", Category: "allergy", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(45)), Stock: 10, IsActive: true, CreatedAt: now, UpdatedAt: now},
	} {
		medicine := m
		if err := db.Create(&medicine).Error; err != nil {
			t.Fatalf("create medicine failed: %v", err)
		}
	}

	// 无坐标时按价格排序
	results, total, err := svc.Search(repository.MedicineListFilter{Page: 1, Keyword: "Cetirizine"}, nil, nil)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 2 || len(results) != 2 {
		t.Fatalf("search want 2 got total=%d len=%d", total, len(results))
	}
	if results[0].Medicine.PharmacyID != far.ID {
		t.Fatalf("price order should put cheaper first")
	}
	if results[0].DistanceKm != nil {
		t.Fatalf("distance should be absent without caller location")
	}

	// 给定坐标时按距离排序并附带预计送达时间
	lat, lon := 18.5204, 73.8567
	results, _, err = svc.Search(repository.MedicineListFilter{Page: 1, Keyword: "Cetirizine"}, &lat, &lon)
	if err != nil {
		t.Fatalf("search with location failed: %v", err)
	}
	if results[0].Medicine.PharmacyID != near.ID {
		t.Fatalf("distance order should put nearest first")
	}
	if results[0].DistanceKm == nil || *results[0].DistanceKm > 0.1 {
		t.Fatalf("unexpected distance for nearest: %v", results[0].DistanceKm)
	}
	if results[0].EstimatedMinutes == nil || *results[0].EstimatedMinutes < 5 {
		t.Fatalf("unexpected eta: %v", results[0].EstimatedMinutes)
	}
	if results[1].DistanceKm == nil || *results[1].DistanceKm < 50 {
		t.Fatalf("unexpected distance for far pharmacy: %v", results[1].DistanceKm)
	}
}

func TestMedicineListByOwnerIncludesInactive(t *testing.T) {
	svc, db := setupMedicineServiceTest(t)
	createMedicineTestPharmacy(t, db, 1, "Sharma Medicos", 18.52, 73.85)

	medicine, err := svc.Create(1, CreateMedicineInput{Name: "ORS Powder", Price: decimal.NewFromInt(22), Stock: 50})
	if err != nil {
		t.Fatalf("create medicine failed: %v", err)
	}
	inactive := false
	if _, err := svc.Update(1, medicine.ID, CreateMedicineInput{Name: "ORS Powder", Price: decimal.NewFromInt(22), Stock: 50}, &inactive); err != nil {
		t.Fatalf("deactivate medicine failed: %v", err)
	}

	rows, total, err := svc.ListByOwner(1, 1, 10)
	if err != nil {
		t.Fatalf("list by owner failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("owner list should include inactive, got total=%d", total)
	}

	if _, _, err := svc.ListByOwner(99, 1, 10); !errors.Is(err, ErrPharmacyNotFound) {
		t.Fatalf("expected pharmacy not found, got: %v", err)
	}
}
