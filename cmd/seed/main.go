package main

import (
	"time"

	"github.com/healer-next/internal/config"
	"github.com/healer-next/internal/constants"
	"github.com/healer-next/internal/logger"
	"github.com/healer-next/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	now := time.Now()
	verifiedAt := now

	// 示例账号（顾客 / 药房 / 骑手各一）
	users := []models.User{
		{
			Email:   "customer@healer.dev",
			Name:    "Asha Patel",
			Phone:   "9876500001",
			Role:    constants.RoleCustomer,
			Address: "14 MG Road, Pune",
			Status:  constants.UserStatusActive,
		},
		{
			Email:  "pharmacy@healer.dev",
			Name:   "Ravi Sharma",
			Phone:  "9876500002",
			Role:   constants.RolePharmacy,
			Status: constants.UserStatusActive,
		},
		{
			Email:  "driver@healer.dev",
			Name:   "Vikram Singh",
			Phone:  "9876500003",
			Role:   constants.RoleDriver,
			Status: constants.UserStatusActive,
		},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("healer123"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash seed password: %v", err)
	}

	userIDs := map[string]uint{}
	for _, u := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", u.Email).First(&existing).Error; err != nil {
			u.PasswordHash = string(hash)
			u.EmailVerifiedAt = &verifiedAt
			if err := models.DB.Create(&u).Error; err != nil {
				stdLog.Printf("Failed to create user %s: %v", u.Email, err)
				continue
			}
			stdLog.Printf("Created user: %s (%s)", u.Email, u.Role)
			userIDs[u.Role] = u.ID
		} else {
			stdLog.Printf("User already exists: %s", u.Email)
			userIDs[existing.Role] = existing.ID
		}
	}

	// 示例药房
	pharmacyOwnerID := userIDs[constants.RolePharmacy]
	var pharmacyID uint
	if pharmacyOwnerID != 0 {
		var existing models.Pharmacy
		if err := models.DB.Where("owner_id = ?", pharmacyOwnerID).First(&existing).Error; err != nil {
			pharmacy := models.Pharmacy{
				OwnerID:       pharmacyOwnerID,
				Name:          "Sharma Medicos",
				Address:       "22 FC Road, Pune",
				State:         "Maharashtra",
				Latitude:      18.5204,
				Longitude:     73.8567,
				Phone:         "9876500002",
				LicenseNumber: "MH-PH-2024-1122",
				IsActive:      true,
			}
			if err := models.DB.Create(&pharmacy).Error; err != nil {
				stdLog.Printf("Failed to create pharmacy: %v", err)
			} else {
				stdLog.Printf("Created pharmacy: %s", pharmacy.Name)
				pharmacyID = pharmacy.ID
			}
		} else {
			stdLog.Printf("Pharmacy already exists: %s", existing.Name)
			pharmacyID = existing.ID
		}
	}

	// 示例药品
	if pharmacyID != 0 {
		medicines := []models.Medicine{
			{
				Name:        "Paracetamol 500mg",
				Description: "Pain reliever and fever reducer, strip of 15 tablets",
				Category:    "fever",
				Price:       models.NewMoneyFromFloat(30.00),
				Stock:       200,
			},
			{
				Name:        "Cetirizine 10mg",
				Description: "Antihistamine for allergy relief, strip of 10 tablets",
				Category:    "allergy",
				Price:       models.NewMoneyFromFloat(45.50),
				Stock:       120,
			},
			{
				Name:                 "Amoxicillin 250mg",
				Description:          "Broad-spectrum antibiotic, strip of 10 capsules",
				Category:             "antibiotic",
				Price:                models.NewMoneyFromFloat(92.00),
				Stock:                60,
				RequiresPrescription: true,
			},
			{
				Name:        "ORS Electrolyte Powder",
				Description: "Oral rehydration salts, pack of 21.8g",
				Category:    "hydration",
				Price:       models.NewMoneyFromFloat(22.00),
				Stock:       300,
			},
		}
		for _, m := range medicines {
			var existing models.Medicine
			if err := models.DB.Where("pharmacy_id = ? AND name = ?", pharmacyID, m.Name).First(&existing).Error; err != nil {
				m.PharmacyID = pharmacyID
				m.IsActive = true
				if err := models.DB.Create(&m).Error; err != nil {
					stdLog.Printf("Failed to create medicine %s: %v", m.Name, err)
				} else {
					stdLog.Printf("Created medicine: %s", m.Name)
				}
			} else {
				stdLog.Printf("Medicine already exists: %s", m.Name)
			}
		}
	}

	// 示例骑手档案
	driverUserID := userIDs[constants.RoleDriver]
	if driverUserID != 0 {
		var existing models.Driver
		if err := models.DB.Where("user_id = ?", driverUserID).First(&existing).Error; err != nil {
			driver := models.Driver{
				UserID:           driverUserID,
				VehicleNumber:    "MH12AB3456",
				LicenseNumber:    "MH-DL-2023-998877",
				State:            "Maharashtra",
				IsAvailable:      true,
				CurrentLatitude:  18.5310,
				CurrentLongitude: 73.8446,
			}
			if err := models.DB.Create(&driver).Error; err != nil {
				stdLog.Printf("Failed to create driver profile: %v", err)
			} else {
				stdLog.Printf("Created driver profile: %s", driver.VehicleNumber)
			}
		} else {
			stdLog.Printf("Driver profile already exists: %s", existing.VehicleNumber)
		}
	}

	stdLog.Println("Seed completed")
}
