package service

import (
	"strings"
	"time"

	"github.com/healer-next/internal/config"
	"github.com/healer-next/internal/constants"
	"github.com/healer-next/internal/models"
	"github.com/healer-next/internal/repository"

	"github.com/shopspring/decimal"
)

// MembershipService 会员服务
type MembershipService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	clock    Clock
}

// NewMembershipService 创建会员服务
func NewMembershipService(cfg *config.Config, userRepo repository.UserRepository) *MembershipService {
	return &MembershipService{
		cfg:      cfg,
		userRepo: userRepo,
		clock:    SystemClock(),
	}
}

// MembershipPlan 会员套餐
type MembershipPlan struct {
	Plan  string       `json:"plan"`
	Price models.Money `json:"price"`
	Days  int          `json:"days"`
}

// Plans 当前可订阅的套餐
func (s *MembershipService) Plans() []MembershipPlan {
	return []MembershipPlan{
		{
			Plan:  constants.MembershipPlanMonthly,
			Price: models.NewMoneyFromDecimal(s.planPrice(constants.MembershipPlanMonthly)),
			Days:  s.planDays(constants.MembershipPlanMonthly),
		},
		{
			Plan:  constants.MembershipPlanYearly,
			Price: models.NewMoneyFromDecimal(s.planPrice(constants.MembershipPlanYearly)),
			Days:  s.planDays(constants.MembershipPlanYearly),
		},
	}
}

// Subscribe 订阅会员。已是会员时在剩余有效期上顺延。
func (s *MembershipService) Subscribe(userID uint, plan string) (*models.User, error) {
	plan = strings.ToLower(strings.TrimSpace(plan))
	if plan != constants.MembershipPlanMonthly && plan != constants.MembershipPlanYearly {
		return nil, ErrMembershipPlanInvalid
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	now := s.clock.Now()
	base := now
	if user.ProActive(now) && user.ProExpiresAt != nil && user.ProExpiresAt.After(now) {
		base = *user.ProExpiresAt
	}
	expires := base.AddDate(0, 0, s.planDays(plan))

	user.IsPro = true
	user.ProExpiresAt = &expires
	user.UpdatedAt = now
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Status 会员状态
type MembershipStatus struct {
	IsPro     bool       `json:"is_pro"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Status 查询会员状态
func (s *MembershipService) Status(userID uint) (*MembershipStatus, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return &MembershipStatus{
		IsPro:     user.IsPro,
		Active:    user.ProActive(s.clock.Now()),
		ExpiresAt: user.ProExpiresAt,
	}, nil
}

// PlanPrice 套餐价格，供支付侧复用
func (s *MembershipService) PlanPrice(plan string) (decimal.Decimal, error) {
	plan = strings.ToLower(strings.TrimSpace(plan))
	if plan != constants.MembershipPlanMonthly && plan != constants.MembershipPlanYearly {
		return decimal.Zero, ErrMembershipPlanInvalid
	}
	return s.planPrice(plan), nil
}

func (s *MembershipService) planPrice(plan string) decimal.Decimal {
	raw := ""
	if s.cfg != nil {
		if plan == constants.MembershipPlanYearly {
			raw = s.cfg.Site.ProYearlyPrice
		} else {
			raw = s.cfg.Site.ProMonthlyPrice
		}
	}
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || price.IsNegative() {
		if plan == constants.MembershipPlanYearly {
			return decimal.NewFromInt(999)
		}
		return decimal.NewFromInt(99)
	}
	return price
}

func (s *MembershipService) planDays(plan string) int {
	if s.cfg != nil {
		if plan == constants.MembershipPlanYearly && s.cfg.Site.ProYearlyDays > 0 {
			return s.cfg.Site.ProYearlyDays
		}
		if plan == constants.MembershipPlanMonthly && s.cfg.Site.ProMonthlyDays > 0 {
			return s.cfg.Site.ProMonthlyDays
		}
	}
	if plan == constants.MembershipPlanYearly {
		return 365
	}
	return 30
}
