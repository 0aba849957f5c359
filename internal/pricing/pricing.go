package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// 配送费阶梯（公里上限 -> 费用）
var (
	feeUpTo2Km  = decimal.NewFromInt(20)
	feeUpTo5Km  = decimal.NewFromInt(30)
	feeUpTo10Km = decimal.NewFromInt(50)
	feeBeyond   = decimal.NewFromInt(70)
)

// platformFee 平台服务费（每单固定）
var platformFee = decimal.NewFromInt(5)

// pointValue 单个积分的抵扣金额
var pointValue = decimal.NewFromFloat(0.25)

// pointsEarnDivisor 每消费 20 元得 1 积分
var pointsEarnDivisor = decimal.NewFromInt(20)

// maxRedeemRatio 积分抵扣不超过药品小计的一半
var maxRedeemRatio = decimal.NewFromFloat(0.5)

// CODMaxDistanceKm 货到付款的最大配送距离（公里），达到该距离拒绝货到付款
const CODMaxDistanceKm = 10.0

// StateRate 各邦骑手计费费率
type StateRate struct {
	Base  decimal.Decimal // 起步价
	PerKm decimal.Decimal // 每公里加价
}

var stateRates = map[string]StateRate{
	"Delhi":         {Base: decimal.NewFromInt(25), PerKm: decimal.NewFromInt(8)},
	"Maharashtra":   {Base: decimal.NewFromInt(30), PerKm: decimal.NewFromInt(10)},
	"Karnataka":     {Base: decimal.NewFromInt(28), PerKm: decimal.NewFromInt(9)},
	"Tamil Nadu":    {Base: decimal.NewFromInt(25), PerKm: decimal.NewFromInt(8)},
	"Uttar Pradesh": {Base: decimal.NewFromInt(20), PerKm: decimal.NewFromInt(7)},
	"Gujarat":       {Base: decimal.NewFromInt(25), PerKm: decimal.NewFromInt(8)},
	"West Bengal":   {Base: decimal.NewFromInt(22), PerKm: decimal.NewFromInt(7)},
	"Rajasthan":     {Base: decimal.NewFromInt(23), PerKm: decimal.NewFromInt(7)},
}

var defaultStateRate = StateRate{Base: decimal.NewFromInt(25), PerKm: decimal.NewFromInt(8)}

// RateForState 返回指定邦的骑手费率，未配置的邦使用默认费率
func RateForState(state string) StateRate {
	if rate, ok := stateRates[state]; ok {
		return rate
	}
	return defaultStateRate
}

// DeliveryFee 配送费：Pro 会员免配送费，否则按距离阶梯计费
func DeliveryFee(distanceKm float64, proMember bool) decimal.Decimal {
	if proMember {
		return decimal.Zero
	}
	switch {
	case distanceKm <= 2:
		return feeUpTo2Km
	case distanceKm <= 5:
		return feeUpTo5Km
	case distanceKm <= 10:
		return feeUpTo10Km
	default:
		return feeBeyond
	}
}

// PlatformFee 平台服务费
func PlatformFee() decimal.Decimal {
	return platformFee
}

// DriverEarning 骑手单笔配送收入：起步价加每公里加价，保留 2 位小数
func DriverEarning(distanceKm float64, state string) decimal.Decimal {
	rate := RateForState(state)
	return rate.Base.Add(rate.PerKm.Mul(decimal.NewFromFloat(distanceKm))).Round(2)
}

// PointsEarned 按实付金额计算获得积分：每 20 元得 1 积分，向下取整
func PointsEarned(total decimal.Decimal) int {
	if total.Sign() <= 0 {
		return 0
	}
	return int(total.Div(pointsEarnDivisor).IntPart())
}

// PointsDiscount 积分抵扣金额：每积分 0.25 元
func PointsDiscount(points int) decimal.Decimal {
	if points <= 0 {
		return decimal.Zero
	}
	return pointValue.Mul(decimal.NewFromInt(int64(points)))
}

// MaxRedeemablePoints 本单最多可抵扣的积分数：抵扣金额不超过药品小计的一半
func MaxRedeemablePoints(itemTotal decimal.Decimal) int {
	if itemTotal.Sign() <= 0 {
		return 0
	}
	return int(itemTotal.Mul(maxRedeemRatio).Div(pointValue).IntPart())
}

// RedeemablePoints 实际抵扣积分：余额与本单上限取小
func RedeemablePoints(balance int, itemTotal decimal.Decimal) int {
	if balance <= 0 {
		return 0
	}
	limit := MaxRedeemablePoints(itemTotal)
	if balance < limit {
		return balance
	}
	return limit
}

// CODAllowed 货到付款是否可用
func CODAllowed(distanceKm float64) bool {
	return distanceKm < CODMaxDistanceKm
}

// CancellationCharge 取消手续费：下单 2 分钟内免费，5 分钟内收 10%，
// 20 分钟内收 15%，超过 20 分钟全额扣除
func CancellationCharge(elapsed time.Duration, total decimal.Decimal) decimal.Decimal {
	switch {
	case elapsed <= 2*time.Minute:
		return decimal.Zero
	case elapsed <= 5*time.Minute:
		return total.Mul(decimal.NewFromFloat(0.10)).Round(2)
	case elapsed <= 20*time.Minute:
		return total.Mul(decimal.NewFromFloat(0.15)).Round(2)
	default:
		return total.Round(2)
	}
}
