package authz

import (
	"fmt"

	"github.com/rarebeats-player/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 前台访问角色矩阵
// visitor 只读目录与购物车；embedded 为持有有效令牌的嵌入页，可写购物车并结账
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleVisitor,
			Policies: []Policy{
				{Object: "/", Action: "GET"},
				{Object: "/products", Action: "GET"},
				{Object: "/products/:id", Action: "GET"},
				{Object: "/filters", Action: "GET"},
				{Object: "/cart", Action: "GET"},
			},
		},
		{
			Role:     constants.RoleEmbedded,
			Inherits: []string{constants.RoleVisitor},
			Policies: []Policy{
				{Object: "/cart", Action: "POST"},
				{Object: "/cart", Action: "DELETE"},
				{Object: "/cart/:id", Action: "DELETE"},
				{Object: "/checkout", Action: "POST"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
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
