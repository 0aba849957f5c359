package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/healer-next/internal/config"
	"github.com/healer-next/internal/constants"
	"github.com/healer-next/internal/models"
	"github.com/healer-next/internal/provider"
	"github.com/healer-next/internal/queue"
	"github.com/healer-next/internal/repository"
	"github.com/healer-next/internal/service"
)

func setupWorkerTest(t *testing.T) (*gorm.DB, *Consumer) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	container := &provider.Container{
		UserRepo:     repository.NewUserRepository(db),
		OrderRepo:    repository.NewOrderRepository(db),
		EmailService: service.NewEmailService(&config.EmailConfig{Enabled: false}),
	}
	return db, NewConsumer(container)
}

func newOrderStatusEmailTask(t *testing.T, payload queue.OrderStatusEmailPayload) *asynq.Task {
	t.Helper()
	task, err := queue.NewOrderStatusEmailTask(payload)
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	return task
}

func TestHandleOrderStatusEmailInvalidJSON(t *testing.T) {
	_, consumer := setupWorkerTest(t)

	task := asynq.NewTask(queue.TaskOrderStatusEmail, []byte("{not-json"))
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestHandleOrderStatusEmailZeroOrderID(t *testing.T) {
	_, consumer := setupWorkerTest(t)

	task := newOrderStatusEmailTask(t, queue.OrderStatusEmailPayload{OrderID: 0})
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("zero order id should be skipped, got %v", err)
	}
}

func TestHandleOrderStatusEmailOrderNotFound(t *testing.T) {
	_, consumer := setupWorkerTest(t)

	task := newOrderStatusEmailTask(t, queue.OrderStatusEmailPayload{OrderID: 9999, Status: constants.OrderStatusAccepted})
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("missing order should be skipped, got %v", err)
	}
}

func TestHandleOrderStatusEmailDisabledServiceDoesNotRetry(t *testing.T) {
	db, consumer := setupWorkerTest(t)

	now := time.Now()
	user := models.User{
		Email:        "worker_customer@example.com",
		PasswordHash: "hash",
		Role:         constants.RoleCustomer,
		Status:       constants.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	order := models.Order{
		OrderNo:       "HL20260301120000123456",
		CustomerID:    user.ID,
		PharmacyID:    1,
		Status:        constants.OrderStatusAccepted,
		Currency:      constants.SiteCurrencyDefault,
		PaymentMethod: constants.PaymentMethodCashOnDelivery,
		PaymentStatus: constants.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	task := newOrderStatusEmailTask(t, queue.OrderStatusEmailPayload{OrderID: order.ID, Status: constants.OrderStatusPreparing})
	if err := consumer.handleOrderStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("disabled email service should not trigger a retry, got %v", err)
	}
}
