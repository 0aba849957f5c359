package api

import (
	"errors"

	"github.com/healer-next/internal/http/response"
	"github.com/healer-next/internal/payment/razorpay"
	"github.com/healer-next/internal/service"

	"github.com/gin-gonic/gin"
)

// InitiatePayment 为在线支付订单创建网关支付单
func (h *Handler) InitiatePayment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.PaymentService.Initiate(c.Request.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, razorpay.ErrConfigInvalid) {
			respondError(c, response.CodeInternal, "payment gateway not configured", err)
			return
		}
		respondWithMappedError(c, err, paymentErrorRules, response.CodeInternal, "failed to initiate payment")
		return
	}

	response.Success(c, result)
}

// VerifyPaymentRequest 支付验签请求
type VerifyPaymentRequest struct {
	GatewayPaymentID string `json:"gateway_payment_id" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
}

// VerifyPayment 校验支付回跳签名并标记订单已支付
func (h *Handler) VerifyPayment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.PaymentService.Verify(userID, orderID, service.VerifyInput{
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
	})
	if err != nil {
		respondWithMappedError(c, err, paymentErrorRules, response.CodeInternal, "failed to verify payment")
		return
	}

	response.Success(c, order)
}
