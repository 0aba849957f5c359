package service

import "errors"

// 业务错误，由 handler 层映射为 HTTP 状态码
var (
	ErrNotFound                  = errors.New("resource not found")
	ErrForbidden                 = errors.New("operation not allowed")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrEmailExists               = errors.New("email already registered")
	ErrInvalidCredentials        = errors.New("invalid email or password")
	ErrInvalidPassword           = errors.New("invalid password")
	ErrWeakPassword              = errors.New("password too weak")
	ErrUserDisabled              = errors.New("user is disabled")
	ErrEmailNotVerified          = errors.New("email not verified")
	ErrInvalidRole               = errors.New("invalid role")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailRecipientRejected    = errors.New("recipient address rejected")
	ErrInvalidVerifyPurpose      = errors.New("invalid verification purpose")
	ErrVerifyCodeInvalid         = errors.New("verification code invalid")
	ErrVerifyCodeExpired         = errors.New("verification code expired")
	ErrVerifyCodeTooFrequent     = errors.New("verification code requested too frequently")
	ErrVerifyCodeAttemptsExceeded = errors.New("verification attempts exceeded")

	ErrPharmacyExists       = errors.New("pharmacy already registered for this account")
	ErrPharmacyNotFound     = errors.New("pharmacy not found")
	ErrPharmacyInactive     = errors.New("pharmacy is not active")
	ErrMedicineNotFound     = errors.New("medicine not found")
	ErrMedicineInactive     = errors.New("medicine is not available")
	ErrMedicineOutOfStock   = errors.New("medicine out of stock")
	ErrMedicineWrongPharmacy = errors.New("medicine does not belong to this pharmacy")

	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderEmptyItems       = errors.New("order has no items")
	ErrOrderInvalidQuantity  = errors.New("order item quantity must be positive")
	ErrOrderStatusInvalid    = errors.New("order status transition not allowed")
	ErrOrderTerminal         = errors.New("order already in a terminal state")
	ErrCODDistanceExceeded   = errors.New("cash on delivery unavailable for this distance")
	ErrInsufficientPoints    = errors.New("insufficient reward points")
	ErrPaymentMethodInvalid  = errors.New("invalid payment method")

	ErrDriverExists           = errors.New("driver already registered for this account")
	ErrDriverNotFound         = errors.New("driver not found")
	ErrDriverUnavailable      = errors.New("driver is not available")
	ErrOrderAlreadyAssigned   = errors.New("order already assigned to a driver")
	ErrOrderNotAssignedToYou  = errors.New("order is not assigned to this driver")
	ErrOrderAlreadyDelivered  = errors.New("order already delivered")
	ErrOrderNotDelivered      = errors.New("order not delivered yet")
	ErrReviewExists           = errors.New("order already reviewed")
	ErrReviewRatingInvalid    = errors.New("review rating must be between 1 and 5")

	ErrMembershipPlanInvalid = errors.New("invalid membership plan")

	ErrPaymentNotRequired    = errors.New("order does not require online payment")
	ErrPaymentAlreadyPaid    = errors.New("order already paid")
	ErrPaymentVerifyFailed   = errors.New("payment signature verification failed")
	ErrPaymentGatewayFailure = errors.New("payment gateway request failed")
)
