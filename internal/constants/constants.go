package constants

// 用户角色常量
const (
	RoleCustomer = "customer"
	RolePharmacy = "pharmacy"
	RoleDriver   = "driver"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusAccepted  = "accepted"
	OrderStatusPreparing = "preparing"
	OrderStatusPickedUp  = "picked_up"
	OrderStatusInTransit = "in_transit"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// 支付方式常量
const (
	PaymentMethodCashOnDelivery = "cash_on_delivery"
	PaymentMethodOnline         = "online"
)

// 支付状态常量
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// 会员套餐常量
const (
	MembershipPlanMonthly = "monthly"
	MembershipPlanYearly  = "yearly"
)

// 验证码用途常量
const (
	VerifyPurposeRegister = "register"
	VerifyPurposeLogin    = "login"
	VerifyPurposeReset    = "reset"
)

// 队列常量
const (
	QueueDefault         = "default"
	TaskOrderStatusEmail = "order:status_email"
	TaskVerifyCodeEmail  = "email:verify_code"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "hl"
)

// 币种常量
const (
	SiteCurrencyDefault = "INR"
)

// 站点常量
const (
	SiteNameDefault = "Healer"
)
