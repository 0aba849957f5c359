package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/healer-next/internal/config"
	"github.com/healer-next/internal/constants"
	"github.com/healer-next/internal/geo"
	"github.com/healer-next/internal/logger"
	"github.com/healer-next/internal/models"
	"github.com/healer-next/internal/pricing"
	"github.com/healer-next/internal/queue"
	"github.com/healer-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	cfg          *config.Config
	orderRepo    repository.OrderRepository
	userRepo     repository.UserRepository
	pharmacyRepo repository.PharmacyRepository
	medicineRepo repository.MedicineRepository
	driverRepo   repository.DriverRepository
	queueClient  *queue.Client
	clock        Clock
}

// NewOrderService 创建订单服务
func NewOrderService(
	cfg *config.Config,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	pharmacyRepo repository.PharmacyRepository,
	medicineRepo repository.MedicineRepository,
	driverRepo repository.DriverRepository,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		cfg:          cfg,
		orderRepo:    orderRepo,
		userRepo:     userRepo,
		pharmacyRepo: pharmacyRepo,
		medicineRepo: medicineRepo,
		driverRepo:   driverRepo,
		queueClient:  queueClient,
		clock:        SystemClock(),
	}
}

// 药房可执行的状态流转
var pharmacyTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusAccepted:  true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusAccepted: {
		constants.OrderStatusPreparing: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusPreparing: {
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusPickedUp: {
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusInTransit: {
		constants.OrderStatusCancelled: true,
	},
}

// 骑手可执行的状态流转。delivered 不在表内，
// 送达在 CompleteDelivery 里单独处理。
var driverTransitions = map[string]map[string]bool{
	constants.OrderStatusAccepted: {
		constants.OrderStatusPickedUp: true,
	},
	constants.OrderStatusPreparing: {
		constants.OrderStatusPickedUp: true,
	},
	constants.OrderStatusPickedUp: {
		constants.OrderStatusInTransit: true,
	},
}

func isTransitionAllowed(transitions map[string]map[string]bool, current, target string) bool {
	if current == target {
		return true
	}
	allowed, ok := transitions[current]
	if !ok {
		return false
	}
	return allowed[target]
}

// CreateOrderItemInput 下单药品项
type CreateOrderItemInput struct {
	MedicineID uint
	Quantity   int
}

// CreateOrderInput 下单输入
type CreateOrderInput struct {
	CustomerID        uint
	PharmacyID        uint
	Items             []CreateOrderItemInput
	DeliveryAddress   string
	DeliveryLatitude  float64
	DeliveryLongitude float64
	PaymentMethod     string
	ContactPhone      string
	RedeemPoints      bool
	Notes             string
}

// Create 下单。校验药品与库存、计算配送距离与各项费用、
// 处理积分抵扣与积分发放，全部落在同一个事务中。
func (s *OrderService) Create(input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrOrderEmptyItems
	}

	customer, err := s.userRepo.GetByID(input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrNotFound
	}

	pharmacy, err := s.pharmacyRepo.GetByID(input.PharmacyID)
	if err != nil {
		return nil, err
	}
	if pharmacy == nil {
		return nil, ErrPharmacyNotFound
	}
	if !pharmacy.IsActive {
		return nil, ErrPharmacyInactive
	}

	paymentMethod := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if paymentMethod != constants.PaymentMethodCashOnDelivery && paymentMethod != constants.PaymentMethodOnline {
		return nil, ErrPaymentMethodInvalid
	}

	now := s.clock.Now()
	itemTotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, ErrOrderInvalidQuantity
		}
		medicine, err := s.medicineRepo.GetByID(item.MedicineID)
		if err != nil {
			return nil, err
		}
		if medicine == nil {
			return nil, ErrMedicineNotFound
		}
		if !medicine.IsActive {
			return nil, ErrMedicineInactive
		}
		if medicine.PharmacyID != pharmacy.ID {
			return nil, ErrMedicineWrongPharmacy
		}
		if medicine.Stock < item.Quantity {
			return nil, ErrMedicineOutOfStock
		}
		lineTotal := medicine.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		itemTotal = itemTotal.Add(lineTotal)
		orderItems = append(orderItems, models.OrderItem{
			MedicineID:   medicine.ID,
			MedicineName: medicine.Name,
			UnitPrice:    medicine.Price,
			Quantity:     item.Quantity,
			TotalPrice:   models.NewMoneyFromDecimal(lineTotal),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	distance := geo.DistanceKm(
		geo.Point{Latitude: pharmacy.Latitude, Longitude: pharmacy.Longitude},
		geo.Point{Latitude: input.DeliveryLatitude, Longitude: input.DeliveryLongitude},
	)
	if paymentMethod == constants.PaymentMethodCashOnDelivery && !pricing.CODAllowed(distance) {
		return nil, ErrCODDistanceExceeded
	}

	deliveryFee := pricing.DeliveryFee(distance, customer.ProActive(now))
	platformFee := pricing.PlatformFee()

	redeemed := 0
	discount := decimal.Zero
	if input.RedeemPoints {
		redeemed = pricing.RedeemablePoints(customer.RewardPoints, itemTotal)
		discount = pricing.PointsDiscount(redeemed)
	}

	total := itemTotal.Add(deliveryFee).Add(platformFee).Sub(discount)
	earned := pricing.PointsEarned(total)

	orderNo, err := generateOrderNo()
	if err != nil {
		return nil, err
	}

	address := strings.TrimSpace(input.DeliveryAddress)
	if address == "" {
		address = customer.Address
	}
	phone := strings.TrimSpace(input.ContactPhone)
	if phone == "" {
		phone = customer.Phone
	}

	order := &models.Order{
		OrderNo:           orderNo,
		CustomerID:        customer.ID,
		PharmacyID:        pharmacy.ID,
		Status:            constants.OrderStatusPending,
		Currency:          s.resolveCurrency(),
		ItemTotal:         models.NewMoneyFromDecimal(itemTotal),
		DeliveryFee:       models.NewMoneyFromDecimal(deliveryFee),
		PlatformFee:       models.NewMoneyFromDecimal(platformFee),
		DiscountAmount:    models.NewMoneyFromDecimal(discount),
		TotalAmount:       models.NewMoneyFromDecimal(total),
		PointsRedeemed:    redeemed,
		PointsEarned:      earned,
		DistanceKm:        distance,
		EstimatedMinutes:  geo.EstimatedMinutes(distance),
		DeliveryAddress:   address,
		DeliveryLatitude:  input.DeliveryLatitude,
		DeliveryLongitude: input.DeliveryLongitude,
		ContactPhone:      phone,
		Notes:             strings.TrimSpace(input.Notes),
		PaymentMethod:     paymentMethod,
		PaymentStatus:     constants.PaymentStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		medicineRepo := s.medicineRepo.WithTx(tx)
		for i := range orderItems {
			rows, err := medicineRepo.DecrementStock(orderItems[i].MedicineID, orderItems[i].Quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				return ErrMedicineOutOfStock
			}
		}

		if err := s.orderRepo.WithTx(tx).Create(order, orderItems); err != nil {
			return err
		}

		delta := earned - redeemed
		rows, err := s.userRepo.WithTx(tx).AdjustRewardPoints(customer.ID, delta)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrInsufficientPoints
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Items = orderItems

	s.notifyStatus(order.ID, order.Status)
	return order, nil
}

// GetForActor 按角色校验归属后返回订单详情
func (s *OrderService) GetForActor(userID uint, role string, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	switch role {
	case constants.RoleCustomer:
		if order.CustomerID != userID {
			return nil, ErrOrderNotFound
		}
	case constants.RolePharmacy:
		pharmacy, err := s.pharmacyRepo.GetByOwner(userID)
		if err != nil {
			return nil, err
		}
		if pharmacy == nil || order.PharmacyID != pharmacy.ID {
			return nil, ErrOrderNotFound
		}
	case constants.RoleDriver:
		driver, err := s.driverRepo.GetByUserID(userID)
		if err != nil {
			return nil, err
		}
		if driver == nil || order.DriverID == nil || *order.DriverID != driver.ID {
			return nil, ErrOrderNotFound
		}
	default:
		return nil, ErrForbidden
	}
	return order, nil
}

// ListMine 按角色列出自己名下的订单
func (s *OrderService) ListMine(userID uint, role string, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	switch role {
	case constants.RoleCustomer:
		filter.CustomerID = userID
		return s.orderRepo.ListByCustomer(filter)
	case constants.RolePharmacy:
		pharmacy, err := s.pharmacyRepo.GetByOwner(userID)
		if err != nil {
			return nil, 0, err
		}
		if pharmacy == nil {
			return nil, 0, ErrPharmacyNotFound
		}
		filter.PharmacyID = pharmacy.ID
		return s.orderRepo.ListByPharmacy(filter)
	case constants.RoleDriver:
		driver, err := s.driverRepo.GetByUserID(userID)
		if err != nil {
			return nil, 0, err
		}
		if driver == nil {
			return nil, 0, ErrDriverNotFound
		}
		filter.DriverID = driver.ID
		return s.orderRepo.ListByDriver(filter)
	default:
		return nil, 0, ErrForbidden
	}
}

// ListUnassigned 待接单订单列表（骑手侧）
func (s *OrderService) ListUnassigned(page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListUnassigned(page, pageSize)
}

// UpdateStatusAsPharmacy 药房更新自己订单的状态
func (s *OrderService) UpdateStatusAsPharmacy(ownerID, orderID uint, target string) (*models.Order, error) {
	pharmacy, err := s.pharmacyRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if pharmacy == nil {
		return nil, ErrPharmacyNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.PharmacyID != pharmacy.ID {
		return nil, ErrOrderNotFound
	}

	target = strings.ToLower(strings.TrimSpace(target))
	if order.Terminal() {
		return nil, ErrOrderTerminal
	}
	if !isTransitionAllowed(pharmacyTransitions, order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}
	if order.Status == target {
		return order, nil
	}

	if target == constants.OrderStatusCancelled {
		return s.cancelOrder(order, models.Money{})
	}

	if err := s.orderRepo.UpdateStatus(order.ID, target, map[string]interface{}{
		"updated_at": s.clock.Now(),
	}); err != nil {
		return nil, err
	}
	order.Status = target

	s.notifyStatus(order.ID, target)
	return order, nil
}

// UpdateStatusAsDriver 骑手更新负责订单的状态。delivered 走完成配送
// 流程，保证收入结算与幂等。
func (s *OrderService) UpdateStatusAsDriver(userID, orderID uint, target string) (*models.Order, error) {
	driver, err := s.driverRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrDriverNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.DriverID == nil || *order.DriverID != driver.ID {
		return nil, ErrOrderNotAssignedToYou
	}

	target = strings.ToLower(strings.TrimSpace(target))
	if target == constants.OrderStatusDelivered {
		return s.CompleteDelivery(userID, orderID)
	}
	if order.Terminal() {
		return nil, ErrOrderTerminal
	}
	if !isTransitionAllowed(driverTransitions, order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}
	if order.Status == target {
		return order, nil
	}

	if err := s.orderRepo.UpdateStatus(order.ID, target, map[string]interface{}{
		"updated_at": s.clock.Now(),
	}); err != nil {
		return nil, err
	}
	order.Status = target

	s.notifyStatus(order.ID, target)
	return order, nil
}

// CancelAsCustomer 顾客取消订单。按下单后的耗时分档收取取消手续费。
func (s *OrderService) CancelAsCustomer(customerID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Terminal() {
		return nil, ErrOrderTerminal
	}

	elapsed := s.clock.Now().Sub(order.CreatedAt)
	charge := pricing.CancellationCharge(elapsed, order.TotalAmount.Decimal)
	return s.cancelOrder(order, models.NewMoneyFromDecimal(charge))
}

// cancelOrder 取消订单的公共路径。只盖取消状态与手续费并回补库存，
// 积分余额和支付状态保持下单后的样子不动。
func (s *OrderService) cancelOrder(order *models.Order, charge models.Money) (*models.Order, error) {
	now := s.clock.Now()
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).UpdateStatus(order.ID, constants.OrderStatusCancelled, map[string]interface{}{
			"cancellation_charge": charge,
			"cancelled_at":        now,
			"updated_at":          now,
		}); err != nil {
			return err
		}

		medicineRepo := s.medicineRepo.WithTx(tx)
		for _, item := range order.Items {
			if err := medicineRepo.IncrementStock(item.MedicineID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = constants.OrderStatusCancelled
	order.CancellationCharge = charge
	order.CancelledAt = &now

	s.notifyStatus(order.ID, constants.OrderStatusCancelled)
	return order, nil
}

// AssignDriver 药房为自己的订单指派骑手
func (s *OrderService) AssignDriver(ownerID, orderID, driverID uint) (*models.Order, error) {
	pharmacy, err := s.pharmacyRepo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if pharmacy == nil {
		return nil, ErrPharmacyNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.PharmacyID != pharmacy.ID {
		return nil, ErrOrderNotFound
	}

	driver, err := s.driverRepo.GetByID(driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrDriverNotFound
	}
	if !driver.IsAvailable {
		return nil, ErrDriverUnavailable
	}

	return s.assign(order, driver)
}

// AcceptAsDriver 骑手自行接单
func (s *OrderService) AcceptAsDriver(userID, orderID uint) (*models.Order, error) {
	driver, err := s.driverRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrDriverNotFound
	}
	if !driver.IsAvailable {
		return nil, ErrDriverUnavailable
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	return s.assign(order, driver)
}

// assign 条件更新抢占订单，零行更新时回读区分已被指派和状态不符
func (s *OrderService) assign(order *models.Order, driver *models.Driver) (*models.Order, error) {
	rows, err := s.orderRepo.AssignDriver(order.ID, driver.ID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		current, err := s.orderRepo.GetByID(order.ID)
		if err != nil {
			return nil, err
		}
		if current != nil && current.DriverID != nil {
			return nil, ErrOrderAlreadyAssigned
		}
		return nil, ErrOrderStatusInvalid
	}

	driverID := driver.ID
	order.DriverID = &driverID
	return order, nil
}

// CompleteDelivery 骑手完成配送。条件更新保证幂等，同事务结算
// 骑手收入，货到付款订单在送达时标记已支付。
func (s *OrderService) CompleteDelivery(userID, orderID uint) (*models.Order, error) {
	driver, err := s.driverRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if driver == nil {
		return nil, ErrDriverNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.DriverID == nil || *order.DriverID != driver.ID {
		return nil, ErrOrderNotAssignedToYou
	}

	now := s.clock.Now()
	amount := models.NewMoneyFromDecimal(pricing.DriverEarning(order.DistanceKm, driver.State))

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		rows, err := orderRepo.MarkDelivered(order.ID, driver.ID, now)
		if err != nil {
			return err
		}
		if rows == 0 {
			if order.Status == constants.OrderStatusDelivered {
				return ErrOrderAlreadyDelivered
			}
			return ErrOrderStatusInvalid
		}

		if order.PaymentMethod == constants.PaymentMethodCashOnDelivery &&
			order.PaymentStatus != constants.PaymentStatusPaid {
			if err := orderRepo.UpdateStatus(order.ID, constants.OrderStatusDelivered, map[string]interface{}{
				"payment_status": constants.PaymentStatusPaid,
			}); err != nil {
				return err
			}
		}

		driverRepo := s.driverRepo.WithTx(tx)
		if err := driverRepo.CreateEarning(&models.DriverEarning{
			DriverID:   driver.ID,
			OrderID:    order.ID,
			Amount:     amount,
			DistanceKm: order.DistanceKm,
			State:      driver.State,
			CreatedAt:  now,
		}); err != nil {
			return err
		}
		return driverRepo.ApplyDeliveryResult(driver.ID, amount)
	})
	if err != nil {
		return nil, err
	}

	order.Status = constants.OrderStatusDelivered
	order.DeliveredAt = &now
	if order.PaymentMethod == constants.PaymentMethodCashOnDelivery {
		order.PaymentStatus = constants.PaymentStatusPaid
	}

	s.notifyStatus(order.ID, constants.OrderStatusDelivered)
	return order, nil
}

// ReviewDriver 顾客评价订单骑手，一单一评，随后重算骑手平均分
func (s *OrderService) ReviewDriver(customerID, orderID uint, rating int, comment string) (*models.DriverReview, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrReviewRatingInvalid
	}
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusDelivered {
		return nil, ErrOrderNotDelivered
	}
	if order.DriverID == nil {
		return nil, ErrDriverNotFound
	}

	exist, err := s.driverRepo.GetReviewByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrReviewExists
	}

	review := &models.DriverReview{
		OrderID:    order.ID,
		DriverID:   *order.DriverID,
		CustomerID: customerID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
		CreatedAt:  s.clock.Now(),
	}
	if err := s.driverRepo.CreateReview(review); err != nil {
		return nil, err
	}

	avg, count, err := s.driverRepo.AverageRating(*order.DriverID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		if err := s.driverRepo.UpdateRating(*order.DriverID, RoundRating(avg)); err != nil {
			return nil, err
		}
	}
	return review, nil
}

func (s *OrderService) notifyStatus(orderID uint, status string) {
	if _, err := enqueueOrderStatusEmailTaskIfEligible(s.orderRepo, s.queueClient, orderID, status); err != nil {
		logger.Warnw("order_status_email_enqueue_failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
	}
}

func (s *OrderService) resolveCurrency() string {
	if s.cfg != nil && strings.TrimSpace(s.cfg.Site.Currency) != "" {
		return strings.TrimSpace(s.cfg.Site.Currency)
	}
	return constants.SiteCurrencyDefault
}

func generateOrderNo() (string, error) {
	suffix, err := randNumericString(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("HL%s%s", time.Now().Format("20060102150405"), suffix), nil
}

func randNumericString(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%d", n.Int64())
	}
	return b.String(), nil
}
