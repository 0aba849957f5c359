package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceUserWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("pharmacy", "/orders/:id/status", "PATCH"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}

	allow, err := svc.EnforceUser(1, "pharmacy", "/api/v1/orders/42/status", "patch")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceUser(1, "pharmacy", "/api/v1/orders/42/status", "DELETE")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}

	allow, err = svc.EnforceUser(1, "customer", "/api/v1/orders/42/status", "PATCH")
	if err != nil {
		t.Fatalf("enforce other role failed: %v", err)
	}
	if allow {
		t.Fatalf("expected customer role to be denied")
	}
}

func TestEnforceUserDirectPolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantUserPolicy(7, "/pharmacy/medicines", "GET"); err != nil {
		t.Fatalf("grant user policy failed: %v", err)
	}

	allow, err := svc.EnforceUser(7, "customer", "/pharmacy/medicines", "GET")
	if err != nil {
		t.Fatalf("enforce direct policy failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected direct user policy to allow")
	}

	if err := svc.RevokeUserPolicies(7); err != nil {
		t.Fatalf("revoke user policies failed: %v", err)
	}
	allow, err = svc.EnforceUser(7, "customer", "/pharmacy/medicines", "GET")
	if err != nil {
		t.Fatalf("enforce after revoke failed: %v", err)
	}
	if allow {
		t.Fatalf("expected revoked policy to deny")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/orders/:id", want: "/orders/:id"},
		{in: "/orders/:id", want: "/orders/:id"},
		{in: "driver/earnings", want: "/driver/earnings"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	wantRoles := map[string]bool{
		"role:authenticated": true,
		"role:customer":      true,
		"role:pharmacy":      true,
		"role:driver":        true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}

	allow, err := svc.EnforceUser(3, "customer", "/api/v1/orders", "POST")
	if err != nil {
		t.Fatalf("enforce customer create order failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected customer to place orders")
	}

	// 通过 authenticated 继承的公共路由
	allow, err = svc.EnforceUser(3, "driver", "/api/v1/me", "GET")
	if err != nil {
		t.Fatalf("enforce inherited profile failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected inherited profile permission")
	}

	allow, err = svc.EnforceUser(3, "customer", "/api/v1/driver/earnings", "GET")
	if err != nil {
		t.Fatalf("enforce cross role failed: %v", err)
	}
	if allow {
		t.Fatalf("expected customer denied driver earnings")
	}
}
