package api

import "github.com/healer-next/internal/provider"

// Handler API 接口处理器入口
// 顾客、药房、骑手三种角色共用，接口访问权限由路由层 RBAC 判定，
// 资源归属校验在服务层完成。
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
