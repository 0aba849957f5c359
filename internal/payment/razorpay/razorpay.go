package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrConfigInvalid    = errors.New("razorpay config invalid")
	ErrRequestFailed    = errors.New("razorpay request failed")
	ErrResponseInvalid  = errors.New("razorpay response invalid")
	ErrSignatureInvalid = errors.New("razorpay signature invalid")
)

// 网关订单状态
const (
	StatusCreated   = "created"
	StatusAttempted = "attempted"
	StatusPaid      = "paid"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// Config Razorpay 配置
type Config struct {
	KeyID     string `json:"key_id"`     // API Key ID
	KeySecret string `json:"key_secret"` // API Key Secret
	BaseURL   string `json:"base_url"`   // 网关地址，默认官方地址
	TimeoutMS int    `json:"timeout_ms"` // 请求超时（毫秒）
}

// ValidateConfig 校验配置
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return ErrConfigInvalid
	}
	if strings.TrimSpace(cfg.KeyID) == "" {
		return fmt.Errorf("%w: key_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.KeySecret) == "" {
		return fmt.Errorf("%w: key_secret is required", ErrConfigInvalid)
	}
	return nil
}

func (c *Config) normalize() {
	c.KeyID = strings.TrimSpace(c.KeyID)
	c.KeySecret = strings.TrimSpace(c.KeySecret)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.TimeoutMS <= 0 {
		c.TimeoutMS = 5000
	}
}

// CreateInput 创建网关订单输入
type CreateInput struct {
	OrderNo  string          // 商户订单编号，作为 receipt 传递
	Amount   decimal.Decimal // 金额（主币单位）
	Currency string          // 币种，如 INR
	Notes    map[string]string
}

// CreateResult 创建网关订单结果
type CreateResult struct {
	GatewayOrderID string                 // 网关订单 ID，如 order_xxx
	Amount         int64                  // 金额（最小币单位）
	Currency       string                 // 币种
	Status         string                 // 网关订单状态
	Raw            map[string]interface{} // 原始响应
}

// CreateOrder 创建网关订单。金额按最小币单位（paise）上送。
func CreateOrder(ctx context.Context, cfg *Config, input CreateInput) (*CreateResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	if strings.TrimSpace(input.OrderNo) == "" || !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: order_no and positive amount are required", ErrConfigInvalid)
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "INR"
	}

	params := map[string]interface{}{
		"amount":   SubunitAmount(input.Amount),
		"currency": currency,
		"receipt":  input.OrderNo,
	}
	if len(input.Notes) > 0 {
		params["notes"] = input.Notes
	}

	respBytes, err := postJSON(ctx, cfg, cfg.BaseURL+"/orders", params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var resp struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Status   string `json:"status"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("%w: missing order id", ErrResponseInvalid)
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(respBytes, &raw)

	return &CreateResult{
		GatewayOrderID: resp.ID,
		Amount:         resp.Amount,
		Currency:       resp.Currency,
		Status:         resp.Status,
		Raw:            raw,
	}, nil
}

// FetchOrder 查询网关订单
func FetchOrder(ctx context.Context, cfg *Config, gatewayOrderID string) (*CreateResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	if strings.TrimSpace(gatewayOrderID) == "" {
		return nil, fmt.Errorf("%w: gateway order id is required", ErrConfigInvalid)
	}

	respBytes, err := getJSON(ctx, cfg, cfg.BaseURL+"/orders/"+strings.TrimSpace(gatewayOrderID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var resp struct {
		ID       string `json:"id"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Status   string `json:"status"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}

	var raw map[string]interface{}
	_ = json.Unmarshal(respBytes, &raw)

	return &CreateResult{
		GatewayOrderID: resp.ID,
		Amount:         resp.Amount,
		Currency:       resp.Currency,
		Status:         resp.Status,
		Raw:            raw,
	}, nil
}

// VerifyPaymentSignature 校验支付回传签名。
// 签名为 HMAC-SHA256(gateway_order_id + "|" + payment_id, key_secret) 的十六进制串。
func VerifyPaymentSignature(cfg *Config, gatewayOrderID, paymentID, signature string) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	gatewayOrderID = strings.TrimSpace(gatewayOrderID)
	paymentID = strings.TrimSpace(paymentID)
	signature = strings.ToLower(strings.TrimSpace(signature))
	if gatewayOrderID == "" || paymentID == "" || signature == "" {
		return ErrSignatureInvalid
	}

	expected := SignPayload(gatewayOrderID+"|"+paymentID, cfg.KeySecret)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return ErrSignatureInvalid
	}
	return nil
}

// SignPayload 计算 HMAC-SHA256 签名（十六进制小写）
func SignPayload(payload, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

// SubunitAmount 主币金额换算为最小币单位
func SubunitAmount(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func postJSON(ctx context.Context, cfg *Config, endpoint string, params map[string]interface{}) ([]byte, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return doRequest(cfg, req)
}

func getJSON(ctx context.Context, cfg *Config, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return doRequest(cfg, req)
}

func doRequest(cfg *Config, req *http.Request) ([]byte, error) {
	req.SetBasicAuth(cfg.KeyID, cfg.KeySecret)

	client := &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	return payload, nil
}
