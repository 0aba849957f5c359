package models

import (
	"time"

	"github.com/healer-next/internal/constants"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                 // 主键
	OrderNo            string         `gorm:"uniqueIndex;not null" json:"order_no"` // 订单编号
	CustomerID         uint           `gorm:"index;not null" json:"customer_id"`    // 下单顾客ID
	PharmacyID         uint           `gorm:"index;not null" json:"pharmacy_id"`    // 药房ID
	DriverID           *uint          `gorm:"index" json:"driver_id,omitempty"`     // 配送骑手ID
	Status             string         `gorm:"index;not null" json:"status"`         // 订单状态
	Currency           string         `gorm:"not null" json:"currency"`             // 币种
	ItemTotal          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"item_total"`          // 药品小计
	DeliveryFee        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_fee"`        // 配送费
	PlatformFee        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"platform_fee"`        // 平台服务费
	DiscountAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`     // 积分抵扣金额
	TotalAmount        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`        // 实付金额
	CancellationCharge Money          `gorm:"type:decimal(20,2);not null;default:0" json:"cancellation_charge"` // 取消手续费
	PointsRedeemed     int            `gorm:"not null;default:0" json:"points_redeemed"` // 本单抵扣积分
	PointsEarned       int            `gorm:"not null;default:0" json:"points_earned"`   // 本单获得积分
	DistanceKm         float64        `gorm:"not null;default:0" json:"distance_km"`     // 配送距离（公里）
	EstimatedMinutes   int            `gorm:"not null;default:0" json:"estimated_minutes"` // 预计送达分钟数
	DeliveryAddress    string         `gorm:"not null" json:"delivery_address"`          // 收货地址
	DeliveryLatitude   float64        `gorm:"not null" json:"delivery_latitude"`         // 收货纬度
	DeliveryLongitude  float64        `gorm:"not null" json:"delivery_longitude"`        // 收货经度
	ContactPhone       string         `gorm:"default:''" json:"contact_phone"`           // 联系电话
	Notes              string         `gorm:"default:''" json:"notes"`                   // 订单备注
	PaymentMethod      string         `gorm:"index;not null" json:"payment_method"`      // 支付方式
	PaymentStatus      string         `gorm:"index;not null" json:"payment_status"`      // 支付状态
	GatewayOrderID     string         `gorm:"index;default:''" json:"gateway_order_id,omitempty"` // 支付网关订单号
	DeliveredAt        *time.Time     `gorm:"index" json:"delivered_at"`                 // 送达时间
	CancelledAt        *time.Time     `gorm:"index" json:"cancelled_at"`                 // 取消时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                   // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                   // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                            // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// Terminal 订单是否处于终态
func (o *Order) Terminal() bool {
	return o.Status == constants.OrderStatusDelivered || o.Status == constants.OrderStatusCancelled
}
