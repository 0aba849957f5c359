package razorpay

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
	if err := ValidateConfig(&Config{KeyID: "rzp_test_abc"}); err == nil {
		t.Fatalf("expected error for missing key secret")
	}
	cfg := &Config{KeyID: "rzp_test_abc", KeySecret: "secret"}
	if err := ValidateConfig(cfg); err != nil {
		t.Fatalf("validate config failed: %v", err)
	}
	cfg.normalize()
	if cfg.BaseURL != defaultBaseURL {
		t.Fatalf("unexpected default base url: %s", cfg.BaseURL)
	}
	if cfg.TimeoutMS != 5000 {
		t.Fatalf("unexpected default timeout: %d", cfg.TimeoutMS)
	}
}

func TestVerifyPaymentSignature(t *testing.T) {
	cfg := &Config{KeyID: "rzp_test_abc", KeySecret: "secret"}
	sig := SignPayload("order_abc|pay_def", cfg.KeySecret)

	if err := VerifyPaymentSignature(cfg, "order_abc", "pay_def", sig); err != nil {
		t.Fatalf("expected valid signature, got: %v", err)
	}
	if err := VerifyPaymentSignature(cfg, "order_abc", "pay_def", "deadbeef"); err == nil {
		t.Fatalf("expected invalid signature error")
	}
	if err := VerifyPaymentSignature(cfg, "order_abc", "pay_other", sig); err == nil {
		t.Fatalf("expected signature mismatch for different payment id")
	}
	if err := VerifyPaymentSignature(cfg, "", "pay_def", sig); err == nil {
		t.Fatalf("expected error for empty gateway order id")
	}
}

func TestSubunitAmount(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"0", 0},
		{"1", 100},
		{"99.00", 9900},
		{"123.45", 12345},
		{"123.456", 12346},
	}
	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("parse amount %s: %v", tc.amount, err)
		}
		if got := SubunitAmount(amount); got != tc.want {
			t.Fatalf("subunit of %s = %d, want %d", tc.amount, got, tc.want)
		}
	}
}
