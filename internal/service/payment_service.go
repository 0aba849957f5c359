package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/healer-next/internal/config"
	"github.com/healer-next/internal/constants"
	"github.com/healer-next/internal/logger"
	"github.com/healer-next/internal/models"
	"github.com/healer-next/internal/payment/razorpay"
	"github.com/healer-next/internal/repository"
)

// PaymentService 在线支付服务
type PaymentService struct {
	cfg       *config.Config
	orderRepo repository.OrderRepository
	clock     Clock
}

// NewPaymentService 创建支付服务
func NewPaymentService(cfg *config.Config, orderRepo repository.OrderRepository) *PaymentService {
	return &PaymentService{
		cfg:       cfg,
		orderRepo: orderRepo,
		clock:     SystemClock(),
	}
}

// InitiateResult 发起支付结果，返回给前端拉起收银台
type InitiateResult struct {
	OrderNo        string       `json:"order_no"`
	GatewayOrderID string       `json:"gateway_order_id"`
	Amount         models.Money `json:"amount"`
	AmountSubunit  int64        `json:"amount_subunit"`
	Currency       string       `json:"currency"`
	KeyID          string       `json:"key_id"`
}

// Initiate 为在线支付订单创建网关订单。重复调用复用已有的网关订单。
func (s *PaymentService) Initiate(ctx context.Context, customerID, orderID uint) (*InitiateResult, error) {
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.PaymentMethod != constants.PaymentMethodOnline {
		return nil, ErrPaymentNotRequired
	}
	if order.PaymentStatus == constants.PaymentStatusPaid {
		return nil, ErrPaymentAlreadyPaid
	}
	if order.Terminal() {
		return nil, ErrOrderTerminal
	}

	gwCfg := s.gatewayConfig()
	if order.GatewayOrderID != "" {
		return &InitiateResult{
			OrderNo:        order.OrderNo,
			GatewayOrderID: order.GatewayOrderID,
			Amount:         order.TotalAmount,
			AmountSubunit:  razorpay.SubunitAmount(order.TotalAmount.Decimal),
			Currency:       order.Currency,
			KeyID:          gwCfg.KeyID,
		}, nil
	}

	result, err := razorpay.CreateOrder(ctx, gwCfg, razorpay.CreateInput{
		OrderNo:  order.OrderNo,
		Amount:   order.TotalAmount.Decimal,
		Currency: order.Currency,
		Notes: map[string]string{
			"order_id": strconv.FormatUint(uint64(order.ID), 10),
		},
	})
	if err != nil {
		logger.Errorw("payment_gateway_order_create_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
		if errors.Is(err, razorpay.ErrConfigInvalid) {
			return nil, err
		}
		return nil, ErrPaymentGatewayFailure
	}

	if err := s.orderRepo.UpdateStatus(order.ID, order.Status, map[string]interface{}{
		"gateway_order_id": result.GatewayOrderID,
		"updated_at":       s.clock.Now(),
	}); err != nil {
		return nil, err
	}

	return &InitiateResult{
		OrderNo:        order.OrderNo,
		GatewayOrderID: result.GatewayOrderID,
		Amount:         order.TotalAmount,
		AmountSubunit:  result.Amount,
		Currency:       order.Currency,
		KeyID:          gwCfg.KeyID,
	}, nil
}

// VerifyInput 支付确认输入，由前端在网关回跳后提交
type VerifyInput struct {
	GatewayPaymentID string
	Signature        string
}

// Verify 校验支付回传签名并标记订单已支付
func (s *PaymentService) Verify(customerID, orderID uint, input VerifyInput) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.PaymentMethod != constants.PaymentMethodOnline {
		return nil, ErrPaymentNotRequired
	}
	if order.PaymentStatus == constants.PaymentStatusPaid {
		return nil, ErrPaymentAlreadyPaid
	}
	if order.Terminal() {
		return nil, ErrOrderTerminal
	}
	if order.GatewayOrderID == "" {
		return nil, ErrPaymentVerifyFailed
	}

	if err := razorpay.VerifyPaymentSignature(s.gatewayConfig(), order.GatewayOrderID, input.GatewayPaymentID, input.Signature); err != nil {
		logger.Warnw("payment_signature_verify_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"gateway_order_id", order.GatewayOrderID,
		)
		if errors.Is(err, razorpay.ErrSignatureInvalid) {
			return nil, ErrPaymentVerifyFailed
		}
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(order.ID, order.Status, map[string]interface{}{
		"payment_status": constants.PaymentStatusPaid,
		"updated_at":     s.clock.Now(),
	}); err != nil {
		return nil, err
	}
	order.PaymentStatus = constants.PaymentStatusPaid

	logger.Infow("payment_confirmed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"gateway_order_id", order.GatewayOrderID,
	)
	return order, nil
}

func (s *PaymentService) gatewayConfig() *razorpay.Config {
	if s.cfg == nil {
		return &razorpay.Config{}
	}
	return &razorpay.Config{
		KeyID:     s.cfg.Payment.KeyID,
		KeySecret: s.cfg.Payment.KeySecret,
		BaseURL:   s.cfg.Payment.BaseURL,
		TimeoutMS: s.cfg.Payment.TimeoutMS,
	}
}
