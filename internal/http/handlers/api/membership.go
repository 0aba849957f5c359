package api

import (
	"errors"

	"github.com/healer-next/internal/http/response"
	"github.com/healer-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetMembershipPlans 会员套餐列表
func (h *Handler) GetMembershipPlans(c *gin.Context) {
	response.Success(c, gin.H{"plans": h.MembershipService.Plans()})
}

// GetMembershipStatus 当前会员状态
func (h *Handler) GetMembershipStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	status, err := h.MembershipService.Status(userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "user not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load membership status", err)
		return
	}

	response.Success(c, status)
}

// SubscribeMembershipRequest 订阅会员请求
type SubscribeMembershipRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// SubscribeMembership 订阅会员，已有会员则顺延到期时间
func (h *Handler) SubscribeMembership(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req SubscribeMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, err := h.MembershipService.Subscribe(userID, req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMembershipPlanInvalid):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "user not found", nil)
		default:
			respondError(c, response.CodeInternal, "failed to subscribe membership", err)
		}
		return
	}

	response.Success(c, gin.H{
		"is_pro":         user.IsPro,
		"pro_expires_at": user.ProExpiresAt,
	})
}
