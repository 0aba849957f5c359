package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/healer-next/internal/constants"
	"github.com/healer-next/internal/models"
	"github.com/healer-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestRegisterDriverProfile(t *testing.T) {
	svc, db := setupDriverServiceTest(t)
	user := createDriverTestUser(t, db, "rider@example.com", constants.RoleDriver)

	driver, err := svc.RegisterProfile(RegisterDriverInput{
		UserID:        user.ID,
		VehicleNumber: " MH12XY9876 ",
		LicenseNumber: "DL-123",
		State:         "Maharashtra",
	})
	if err != nil {
		t.Fatalf("register profile failed: %v", err)
	}
	if driver.VehicleNumber != "MH12XY9876" {
		t.Fatalf("expected trimmed vehicle number, got %q", driver.VehicleNumber)
	}
	if !driver.IsAvailable {
		t.Fatalf("expected new driver to be available")
	}

	if _, err := svc.RegisterProfile(RegisterDriverInput{UserID: user.ID, VehicleNumber: "X", State: "Delhi"}); !errors.Is(err, ErrDriverExists) {
		t.Fatalf("expected duplicate profile error, got: %v", err)
	}
}

func TestRegisterDriverProfileRejectsWrongRole(t *testing.T) {
	svc, db := setupDriverServiceTest(t)
	user := createDriverTestUser(t, db, "buyer@example.com", constants.RoleCustomer)

	if _, err := svc.RegisterProfile(RegisterDriverInput{UserID: user.ID, VehicleNumber: "X", State: "Delhi"}); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected role error, got: %v", err)
	}
}

func TestSetAvailabilityAndLocation(t *testing.T) {
	svc, db := setupDriverServiceTest(t)
	user := createDriverTestUser(t, db, "rider@example.com", constants.RoleDriver)
	if _, err := svc.RegisterProfile(RegisterDriverInput{UserID: user.ID, VehicleNumber: "DL01AB1234", State: "Delhi"}); err != nil {
		t.Fatalf("register profile failed: %v", err)
	}

	driver, err := svc.SetAvailability(user.ID, false)
	if err != nil {
		t.Fatalf("set availability failed: %v", err)
	}
	if driver.IsAvailable {
		t.Fatalf("expected driver to be unavailable")
	}

	if err := svc.UpdateLocation(user.ID, 28.7, 77.1); err != nil {
		t.Fatalf("update location failed: %v", err)
	}

	var reloaded models.Driver
	if err := db.Where("user_id = ?", user.ID).First(&reloaded).Error; err != nil {
		t.Fatalf("reload driver failed: %v", err)
	}
	if reloaded.IsAvailable {
		t.Fatalf("availability not persisted")
	}
	if reloaded.CurrentLatitude != 28.7 || reloaded.CurrentLongitude != 77.1 {
		t.Fatalf("location not persisted: %+v", reloaded)
	}
}

func TestDriverEarningsSummary(t *testing.T) {
	svc, db := setupDriverServiceTest(t)
	user := createDriverTestUser(t, db, "rider@example.com", constants.RoleDriver)
	profile, err := svc.RegisterProfile(RegisterDriverInput{UserID: user.ID, VehicleNumber: "DL01AB1234", State: "Delhi"})
	if err != nil {
		t.Fatalf("register profile failed: %v", err)
	}

	driverRepo := repository.NewDriverRepository(db)
	for i := 0; i < 3; i++ {
		earning := models.DriverEarning{
			DriverID:   profile.ID,
			OrderID:    uint(100 + i),
			Amount:     models.Money{},
			DistanceKm: 2,
			State:      "Delhi",
			CreatedAt:  time.Now(),
		}
		if err := driverRepo.CreateEarning(&earning); err != nil {
			t.Fatalf("create earning failed: %v", err)
		}
	}

	summary, err := svc.Earnings(user.ID, repository.DriverEarningListFilter{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("earnings failed: %v", err)
	}
	if summary.RecordTotal != 3 {
		t.Fatalf("expected 3 records total, got %d", summary.RecordTotal)
	}
	if len(summary.Records) != 2 {
		t.Fatalf("expected page of 2 records, got %d", len(summary.Records))
	}
}

func TestDriverProfileNotFound(t *testing.T) {
	svc, db := setupDriverServiceTest(t)
	user := createDriverTestUser(t, db, "rider@example.com", constants.RoleDriver)

	if _, err := svc.GetProfile(user.ID); !errors.Is(err, ErrDriverNotFound) {
		t.Fatalf("expected not found error, got: %v", err)
	}
}

func setupDriverServiceTest(t *testing.T) (*DriverService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:driver_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Driver{}, &models.DriverEarning{}, &models.DriverReview{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewDriverService(repository.NewDriverRepository(db), repository.NewUserRepository(db)), db
}

func createDriverTestUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()

	now := time.Now()
	user := models.User{
		Email:        email,
		PasswordHash: "hash",
		Name:         "rider",
		Role:         role,
		Status:       constants.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}
