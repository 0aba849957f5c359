package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 系统预置角色矩阵。
// 三种业务角色的可访问路由在此声明，归属校验在服务层完成。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "authenticated",
			Policies: []Policy{
				{Object: "/me", Action: "GET"},
				{Object: "/me", Action: "PATCH"},
			},
			Immutable: true,
		},
		{
			Role:     "customer",
			Inherits: []string{"authenticated"},
			Policies: []Policy{
				{Object: "/orders", Action: "POST"},
				{Object: "/orders", Action: "GET"},
				{Object: "/orders/:id", Action: "GET"},
				{Object: "/orders/:id/cancel", Action: "POST"},
				{Object: "/orders/:id/review", Action: "POST"},
				{Object: "/orders/:id/payment", Action: "POST"},
				{Object: "/orders/:id/payment/verify", Action: "POST"},
				{Object: "/membership/plans", Action: "GET"},
				{Object: "/membership/status", Action: "GET"},
				{Object: "/membership/subscribe", Action: "POST"},
			},
			Immutable: true,
		},
		{
			Role:     "pharmacy",
			Inherits: []string{"authenticated"},
			Policies: []Policy{
				{Object: "/pharmacy", Action: "*"},
				{Object: "/pharmacy/medicines", Action: "*"},
				{Object: "/pharmacy/medicines/:id", Action: "*"},
				{Object: "/orders", Action: "GET"},
				{Object: "/orders/:id", Action: "GET"},
				{Object: "/orders/:id/status", Action: "PATCH"},
				{Object: "/orders/:id/assign-driver", Action: "POST"},
			},
			Immutable: true,
		},
		{
			Role:     "driver",
			Inherits: []string{"authenticated"},
			Policies: []Policy{
				{Object: "/driver/profile", Action: "*"},
				{Object: "/driver/availability", Action: "PATCH"},
				{Object: "/driver/location", Action: "PATCH"},
				{Object: "/driver/orders/available", Action: "GET"},
				{Object: "/driver/earnings", Action: "GET"},
				{Object: "/driver/reviews", Action: "GET"},
				{Object: "/orders", Action: "GET"},
				{Object: "/orders/:id", Action: "GET"},
				{Object: "/orders/:id/status", Action: "PATCH"},
				{Object: "/orders/:id/accept", Action: "POST"},
				{Object: "/orders/:id/complete", Action: "POST"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor); err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}

	return nil
}
