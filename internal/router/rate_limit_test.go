package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRateLimitTestContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/send-code", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "203.0.113.7:40000"
	return c, w
}

func TestKeyByIPAndJSONField(t *testing.T) {
	c, _ := newRateLimitTestContext(t, `{"email":" Asha@Example.com "}`)

	key := KeyByIPAndJSONField("email")(c)
	if key != "asha@example.com|203.0.113.7" {
		t.Fatalf("key want asha@example.com|203.0.113.7 got %s", key)
	}

	// 读取字段后请求体要能再次被 BindJSON 消费
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), "Asha@Example.com") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	c, _ := newRateLimitTestContext(t, `{"phone":"9876543210"}`)

	key := KeyByIPAndJSONField("email")(c)
	if key != "203.0.113.7" {
		t.Fatalf("key want plain client ip got %s", key)
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 1}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}

func TestParseRateLimitReply(t *testing.T) {
	count, ttl, ok := parseRateLimitReply([]interface{}{int64(3), int64(42)})
	if !ok || count != 3 || ttl != 42 {
		t.Fatalf("parse want (3,42,true) got (%d,%d,%v)", count, ttl, ok)
	}

	if _, _, ok := parseRateLimitReply("not-a-slice"); ok {
		t.Fatalf("non-slice reply should not parse")
	}
	if _, _, ok := parseRateLimitReply([]interface{}{int64(1)}); ok {
		t.Fatalf("short reply should not parse")
	}
	if _, _, ok := parseRateLimitReply([]interface{}{"bad", int64(1)}); ok {
		t.Fatalf("non-numeric count should not parse")
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "uint8", input: uint8(12), want: 12, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "string", input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("value want %d got %d", tc.want, got)
			}
		})
	}
}
