package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/healer-next/internal/config"
	"github.com/healer-next/internal/constants"
	"github.com/healer-next/internal/models"
	"github.com/healer-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func TestPharmacyTransitionTable(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusAccepted, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPending, constants.OrderStatusPreparing, false},
		{constants.OrderStatusAccepted, constants.OrderStatusPreparing, true},
		{constants.OrderStatusAccepted, constants.OrderStatusPickedUp, false},
		{constants.OrderStatusPreparing, constants.OrderStatusCancelled, true},
		{constants.OrderStatusInTransit, constants.OrderStatusCancelled, true},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled, false},
		{constants.OrderStatusPending, constants.OrderStatusPending, true},
	}
	for _, tc := range cases {
		if got := isTransitionAllowed(pharmacyTransitions, tc.from, tc.to); got != tc.allowed {
			t.Fatalf("pharmacy %s -> %s = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestDriverTransitionTable(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{constants.OrderStatusAccepted, constants.OrderStatusPickedUp, true},
		{constants.OrderStatusPreparing, constants.OrderStatusPickedUp, true},
		{constants.OrderStatusPickedUp, constants.OrderStatusInTransit, true},
		// 送达不走流转表，只能通过完成配送流程
		{constants.OrderStatusPickedUp, constants.OrderStatusDelivered, false},
		{constants.OrderStatusInTransit, constants.OrderStatusDelivered, false},
		{constants.OrderStatusPending, constants.OrderStatusPickedUp, false},
		{constants.OrderStatusAccepted, constants.OrderStatusDelivered, false},
		{constants.OrderStatusPickedUp, constants.OrderStatusCancelled, false},
	}
	for _, tc := range cases {
		if got := isTransitionAllowed(driverTransitions, tc.from, tc.to); got != tc.allowed {
			t.Fatalf("driver %s -> %s = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestCreateOrderComputesPricing(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	customer := createOrderTestUser(t, db, "buyer@example.com", constants.RoleCustomer, 0)
	pharmacy := createOrderTestPharmacy(t, db, "owner@example.com")
	medicine := createOrderTestMedicine(t, db, pharmacy.ID, "Paracetamol", "50", 10)

	order, err := svc.Create(CreateOrderInput{
		CustomerID:        customer.ID,
		PharmacyID:        pharmacy.ID,
		Items:             []CreateOrderItemInput{{MedicineID: medicine.ID, Quantity: 2}},
		DeliveryAddress:   "12 MG Road",
		DeliveryLatitude:  pharmacy.Latitude,
		DeliveryLongitude: pharmacy.Longitude,
		PaymentMethod:     constants.PaymentMethodCashOnDelivery,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("unexpected status: %s", order.Status)
	}
	if !order.ItemTotal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected item total: %s", order.ItemTotal.String())
	}
	if !order.DeliveryFee.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("unexpected delivery fee: %s", order.DeliveryFee.String())
	}
	if !order.PlatformFee.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("unexpected platform fee: %s", order.PlatformFee.String())
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(125)) {
		t.Fatalf("unexpected total: %s", order.TotalAmount.String())
	}
	if order.PointsEarned != 6 {
		t.Fatalf("unexpected points earned: %d", order.PointsEarned)
	}
	if order.OrderNo == "" {
		t.Fatalf("expected order no to be generated")
	}

	var reloadedMedicine models.Medicine
	if err := db.First(&reloadedMedicine, medicine.ID).Error; err != nil {
		t.Fatalf("reload medicine failed: %v", err)
	}
	if reloadedMedicine.Stock != 8 {
		t.Fatalf("expected stock 8 after order, got %d", reloadedMedicine.Stock)
	}

	var reloadedCustomer models.User
	if err := db.First(&reloadedCustomer, customer.ID).Error; err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if reloadedCustomer.RewardPoints != 6 {
		t.Fatalf("expected 6 reward points, got %d", reloadedCustomer.RewardPoints)
	}
}

func TestCreateOrderRedeemsPoints(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	customer := createOrderTestUser(t, db, "buyer@example.com", constants.RoleCustomer, 100)
	pharmacy := createOrderTestPharmacy(t, db, "owner@example.com")
	medicine := createOrderTestMedicine(t, db, pharmacy.ID, "Ibuprofen", "100", 5)

	order, err := svc.Create(CreateOrderInput{
		CustomerID:        customer.ID,
		PharmacyID:        pharmacy.ID,
		Items:             []CreateOrderItemInput{{MedicineID: medicine.ID, Quantity: 1}},
		DeliveryLatitude:  pharmacy.Latitude,
		DeliveryLongitude: pharmacy.Longitude,
		PaymentMethod:     constants.PaymentMethodOnline,
		RedeemPoints:      true,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.PointsRedeemed != 100 {
		t.Fatalf("expected 100 points redeemed, got %d", order.PointsRedeemed)
	}
	if !order.DiscountAmount.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("unexpected discount: %s", order.DiscountAmount.String())
	}
	// 100 + 20 + 5 - 25
	if !order.TotalAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected total: %s", order.TotalAmount.String())
	}
	if order.PointsEarned != 5 {
		t.Fatalf("unexpected points earned: %d", order.PointsEarned)
	}

	var reloaded models.User
	if err := db.First(&reloaded, customer.ID).Error; err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if reloaded.RewardPoints != 5 {
		t.Fatalf("expected balance 5 after redeem and earn, got %d", reloaded.RewardPoints)
	}
}

func TestCreateOrderOutOfStock(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	customer := createOrderTestUser(t, db, "buyer@example.com", constants.RoleCustomer, 0)
	pharmacy := createOrderTestPharmacy(t, db, "owner@example.com")
	medicine := createOrderTestMedicine(t, db, pharmacy.ID, "Cetirizine", "30", 1)

	_, err := svc.Create(CreateOrderInput{
		CustomerID:        customer.ID,
		PharmacyID:        pharmacy.ID,
		Items:             []CreateOrderItemInput{{MedicineID: medicine.ID, Quantity: 2}},
		DeliveryLatitude:  pharmacy.Latitude,
		DeliveryLongitude: pharmacy.Longitude,
		PaymentMethod:     constants.PaymentMethodOnline,
	})
	if !errors.Is(err, ErrMedicineOutOfStock) {
		t.Fatalf("expected out of stock error, got: %v", err)
	}
}

func TestCreateOrderRejectsCODBeyondDistanceLimit(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	customer := createOrderTestUser(t, db, "buyer@example.com", constants.RoleCustomer, 0)
	pharmacy := createOrderTestPharmacy(t, db, "owner@example.com")
	medicine := createOrderTestMedicine(t, db, pharmacy.ID, "Amoxicillin", "80", 5)

	// 纬度偏移 0.1 度约 11 公里
	_, err := svc.Create(CreateOrderInput{
		CustomerID:        customer.ID,
		PharmacyID:        pharmacy.ID,
		Items:             []CreateOrderItemInput{{MedicineID: medicine.ID, Quantity: 1}},
		DeliveryLatitude:  pharmacy.Latitude + 0.1,
		DeliveryLongitude: pharmacy.Longitude,
		PaymentMethod:     constants.PaymentMethodCashOnDelivery,
	})
	if !errors.Is(err, ErrCODDistanceExceeded) {
		t.Fatalf("expected COD distance error, got: %v", err)
	}
}

func TestUpdateStatusAsPharmacy(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	customer := createOrderTestUser(t, db, "buyer@example.com", constants.RoleCustomer, 0)
	pharmacy := createOrderTestPharmacy(t, db, "owner@example.com")
	medicine := createOrderTestMedicine(t, db, pharmacy.ID, "Paracetamol", "50", 10)
	order := createTestOrder(t, svc, customer.ID, pharmacy, medicine)

	updated, err := svc.UpdateStatusAsPharmacy(pharmacy.OwnerID, order.ID, constants.OrderStatusAccepted)
	if err != nil {
		t.Fatalf("accept order failed: %v", err)
	}
	if updated.Status != constants.OrderStatusAccepted {
		t.Fatalf("unexpected status: %s", updated.Status)
	}

	if _, err := svc.UpdateStatusAsPharmacy(pharmacy.OwnerID, order.ID, constants.OrderStatusPickedUp); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected invalid transition error, got: %v", err)
	}

	other := createOrderTestUser(t, db, "other@example.com", constants.RolePharmacy, 0)
	if _, err := svc.UpdateStatusAsPharmacy(other.ID, order.ID, constants.OrderStatusPreparing); err == nil {
		t.Fatalf("expected error for foreign pharmacy owner")
	}
}

func TestDriverAcceptAndCompleteDelivery(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	customer := createOrderTestUser(t, db, "buyer@example.com", constants.RoleCustomer, 0)
	pharmacy := createOrderTestPharmacy(t, db, "owner@example.com")
	medicine := createOrderTestMedicine(t, db, pharmacy.ID, "Paracetamol", "50", 10)
	order := createTestOrder(t, svc, customer.ID, pharmacy, medicine)
	driver := createOrderTestDriver(t, db, "rider@example.com", "Maharashtra")

	if _, err := svc.UpdateStatusAsPharmacy(pharmacy.OwnerID, order.ID, constants.OrderStatusAccepted); err != nil {
		t.Fatalf("accept order failed: %v", err)
	}
	if _, err := svc.AcceptAsDriver(driver.UserID, order.ID); err != nil {
		t.Fatalf("driver accept failed: %v", err)
	}

	second := createOrderTestDriver(t, db, "rider2@example.com", "Delhi")
	if _, err := svc.AcceptAsDriver(second.UserID, order.ID); !errors.Is(err, ErrOrderAlreadyAssigned) {
		t.Fatalf("expected already assigned error, got: %v", err)
	}

	if _, err := svc.UpdateStatusAsDriver(driver.UserID, order.ID, constants.OrderStatusPickedUp); err != nil {
		t.Fatalf("pickup failed: %v", err)
	}
	if _, err := svc.UpdateStatusAsDriver(driver.UserID, order.ID, constants.OrderStatusInTransit); err != nil {
		t.Fatalf("in transit failed: %v", err)
	}

	delivered, err := svc.CompleteDelivery(driver.UserID, order.ID)
	if err != nil {
		t.Fatalf("complete delivery failed: %v", err)
	}
	if delivered.Status != constants.OrderStatusDelivered {
		t.Fatalf("unexpected status: %s", delivered.Status)
	}
	if delivered.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected COD order paid on delivery, got %s", delivered.PaymentStatus)
	}

	if _, err := svc.CompleteDelivery(driver.UserID, order.ID); !errors.Is(err, ErrOrderAlreadyDelivered) {
		t.Fatalf("expected already delivered error, got: %v", err)
	}

	var reloadedDriver models.Driver
	if err := db.First(&reloadedDriver, driver.ID).Error; err != nil {
		t.Fatalf("reload driver failed: %v", err)
	}
	if reloadedDriver.TotalDeliveries != 1 {
		t.Fatalf("expected 1 delivery, got %d", reloadedDriver.TotalDeliveries)
	}
	// Maharashtra 底价 30，配送距离 0 公里
	if !reloadedDriver.TotalEarnings.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("unexpected total earnings: %s", reloadedDriver.TotalEarnings.String())
	}

	var earning models.DriverEarning
	if err := db.Where("order_id = ?", order.ID).First(&earning).Error; err != nil {
		t.Fatalf("load earning failed: %v", err)
	}
	if earning.DriverID != driver.ID || earning.State != "Maharashtra" {
		t.Fatalf("unexpected earning record: %+v", earning)
	}
}

func TestCancelAsCustomerStampsChargeOnly(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	customer := createOrderTestUser(t, db, "buyer@example.com", constants.RoleCustomer, 100)
	pharmacy := createOrderTestPharmacy(t, db, "owner@example.com")
	medicine := createOrderTestMedicine(t, db, pharmacy.ID, "Ibuprofen", "100", 5)

	order, err := svc.Create(CreateOrderInput{
		CustomerID:        customer.ID,
		PharmacyID:        pharmacy.ID,
		Items:             []CreateOrderItemInput{{MedicineID: medicine.ID, Quantity: 2}},
		DeliveryLatitude:  pharmacy.Latitude,
		DeliveryLongitude: pharmacy.Longitude,
		PaymentMethod:     constants.PaymentMethodOnline,
		RedeemPoints:      true,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	// 200 抵扣 100 积分、获得 10 积分，取消后余额不再变化
	balanceAfterOrder := 100 - order.PointsRedeemed + order.PointsEarned

	// 下单 3 分钟后取消，手续费为总额的 10%
	svc.clock = fixedClock{now: order.CreatedAt.Add(3 * time.Minute)}

	cancelled, err := svc.CancelAsCustomer(customer.ID, order.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("unexpected status: %s", cancelled.Status)
	}
	want := order.TotalAmount.Decimal.Mul(decimal.NewFromFloat(0.10)).Round(2)
	if !cancelled.CancellationCharge.Equal(want) {
		t.Fatalf("unexpected cancellation charge: %s, want %s", cancelled.CancellationCharge.String(), want.String())
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled_at to be set")
	}
	if cancelled.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("cancel must not touch payment status, got %s", cancelled.PaymentStatus)
	}

	var reloadedMedicine models.Medicine
	if err := db.First(&reloadedMedicine, medicine.ID).Error; err != nil {
		t.Fatalf("reload medicine failed: %v", err)
	}
	if reloadedMedicine.Stock != 5 {
		t.Fatalf("expected stock restored to 5, got %d", reloadedMedicine.Stock)
	}

	var reloadedCustomer models.User
	if err := db.First(&reloadedCustomer, customer.ID).Error; err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if reloadedCustomer.RewardPoints != balanceAfterOrder {
		t.Fatalf("cancel must not move points, want %d got %d", balanceAfterOrder, reloadedCustomer.RewardPoints)
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if stored.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("stored payment status must stay pending, got %s", stored.PaymentStatus)
	}

	if _, err := svc.CancelAsCustomer(customer.ID, order.ID); !errors.Is(err, ErrOrderTerminal) {
		t.Fatalf("expected terminal error on second cancel, got: %v", err)
	}
}

func TestUnassignedOrdersAcceptedOnly(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	customer := createOrderTestUser(t, db, "buyer@example.com", constants.RoleCustomer, 0)
	pharmacy := createOrderTestPharmacy(t, db, "owner@example.com")
	medicine := createOrderTestMedicine(t, db, pharmacy.ID, "Paracetamol", "50", 10)
	order := createTestOrder(t, svc, customer.ID, pharmacy, medicine)
	driver := createOrderTestDriver(t, db, "rider@example.com", "Delhi")

	// pending 订单不可浏览
	if orders, total, err := svc.ListUnassigned(1, 20); err != nil || total != 0 || len(orders) != 0 {
		t.Fatalf("pending order must not be browsable: total=%d err=%v", total, err)
	}

	if _, err := svc.UpdateStatusAsPharmacy(pharmacy.OwnerID, order.ID, constants.OrderStatusAccepted); err != nil {
		t.Fatalf("accept order failed: %v", err)
	}
	if orders, total, err := svc.ListUnassigned(1, 20); err != nil || total != 1 || len(orders) != 1 {
		t.Fatalf("accepted order must be browsable: total=%d err=%v", total, err)
	}

	// 进入备货后不再开放抢单
	if _, err := svc.UpdateStatusAsPharmacy(pharmacy.OwnerID, order.ID, constants.OrderStatusPreparing); err != nil {
		t.Fatalf("move to preparing failed: %v", err)
	}
	if orders, total, err := svc.ListUnassigned(1, 20); err != nil || total != 0 || len(orders) != 0 {
		t.Fatalf("preparing order must not be browsable: total=%d err=%v", total, err)
	}
	if _, err := svc.AcceptAsDriver(driver.UserID, order.ID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected status invalid on claiming preparing order, got: %v", err)
	}
}

func TestReviewDriver(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	customer := createOrderTestUser(t, db, "buyer@example.com", constants.RoleCustomer, 0)
	pharmacy := createOrderTestPharmacy(t, db, "owner@example.com")
	medicine := createOrderTestMedicine(t, db, pharmacy.ID, "Paracetamol", "50", 10)
	order := createTestOrder(t, svc, customer.ID, pharmacy, medicine)
	driver := createOrderTestDriver(t, db, "rider@example.com", "Delhi")

	if _, err := svc.ReviewDriver(customer.ID, order.ID, 4, "quick"); !errors.Is(err, ErrOrderNotDelivered) {
		t.Fatalf("expected not delivered error, got: %v", err)
	}

	if _, err := svc.UpdateStatusAsPharmacy(pharmacy.OwnerID, order.ID, constants.OrderStatusAccepted); err != nil {
		t.Fatalf("accept order failed: %v", err)
	}
	if _, err := svc.AcceptAsDriver(driver.UserID, order.ID); err != nil {
		t.Fatalf("driver accept failed: %v", err)
	}
	if _, err := svc.UpdateStatusAsDriver(driver.UserID, order.ID, constants.OrderStatusPickedUp); err != nil {
		t.Fatalf("pickup failed: %v", err)
	}
	if _, err := svc.CompleteDelivery(driver.UserID, order.ID); err != nil {
		t.Fatalf("complete delivery failed: %v", err)
	}

	if _, err := svc.ReviewDriver(customer.ID, order.ID, 6, ""); !errors.Is(err, ErrReviewRatingInvalid) {
		t.Fatalf("expected rating invalid error, got: %v", err)
	}
	review, err := svc.ReviewDriver(customer.ID, order.ID, 4, "quick and careful")
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if review.DriverID != driver.ID || review.Rating != 4 {
		t.Fatalf("unexpected review: %+v", review)
	}
	if _, err := svc.ReviewDriver(customer.ID, order.ID, 5, "again"); !errors.Is(err, ErrReviewExists) {
		t.Fatalf("expected duplicate review error, got: %v", err)
	}

	var reloadedDriver models.Driver
	if err := db.First(&reloadedDriver, driver.ID).Error; err != nil {
		t.Fatalf("reload driver failed: %v", err)
	}
	if reloadedDriver.Rating != 4 {
		t.Fatalf("expected rating 4, got %v", reloadedDriver.Rating)
	}
}

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:order_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Pharmacy{},
		&models.Medicine{},
		&models.Order{},
		&models.OrderItem{},
		&models.Driver{},
		&models.DriverEarning{},
		&models.DriverReview{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.Site.Currency = "INR"

	svc := NewOrderService(
		cfg,
		repository.NewOrderRepository(db),
		repository.NewUserRepository(db),
		repository.NewPharmacyRepository(db),
		repository.NewMedicineRepository(db),
		repository.NewDriverRepository(db),
		nil,
	)
	return svc, db
}

func createOrderTestUser(t *testing.T, db *gorm.DB, email, role string, points int) models.User {
	t.Helper()

	now := time.Now()
	user := models.User{
		Email:        email,
		PasswordHash: "hash",
		Name:         "tester",
		Role:         role,
		RewardPoints: points,
		Status:       constants.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createOrderTestPharmacy(t *testing.T, db *gorm.DB, ownerEmail string) models.Pharmacy {
	t.Helper()

	owner := createOrderTestUser(t, db, ownerEmail, constants.RolePharmacy, 0)
	now := time.Now()
	pharmacy := models.Pharmacy{
		OwnerID:   owner.ID,
		Name:      "City Pharmacy",
		Address:   "1 Connaught Place",
		State:     "Delhi",
		Latitude:  28.6139,
		Longitude: 77.2090,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&pharmacy).Error; err != nil {
		t.Fatalf("create pharmacy failed: %v", err)
	}
	return pharmacy
}

func createOrderTestMedicine(t *testing.T, db *gorm.DB, pharmacyID uint, name, price string, stock int) models.Medicine {
	t.Helper()

	amount, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("parse price failed: %v", err)
	}
	now := time.Now()
	medicine := models.Medicine{
		PharmacyID: pharmacyID,
		Name:       name,
		Price:      models.NewMoneyFromDecimal(amount),
		Stock:      stock,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := db.Create(&medicine).Error; err != nil {
		t.Fatalf("create medicine failed: %v", err)
	}
	return medicine
}

func createOrderTestDriver(t *testing.T, db *gorm.DB, email, state string) models.Driver {
	t.Helper()

	user := createOrderTestUser(t, db, email, constants.RoleDriver, 0)
	now := time.Now()
	driver := models.Driver{
		UserID:        user.ID,
		VehicleNumber: "DL01AB1234",
		State:         state,
		IsAvailable:   true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.Create(&driver).Error; err != nil {
		t.Fatalf("create driver failed: %v", err)
	}
	return driver
}

func createTestOrder(t *testing.T, svc *OrderService, customerID uint, pharmacy models.Pharmacy, medicine models.Medicine) *models.Order {
	t.Helper()

	order, err := svc.Create(CreateOrderInput{
		CustomerID:        customerID,
		PharmacyID:        pharmacy.ID,
		Items:             []CreateOrderItemInput{{MedicineID: medicine.ID, Quantity: 1}},
		DeliveryAddress:   "12 MG Road",
		DeliveryLatitude:  pharmacy.Latitude,
		DeliveryLongitude: pharmacy.Longitude,
		PaymentMethod:     constants.PaymentMethodCashOnDelivery,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}
