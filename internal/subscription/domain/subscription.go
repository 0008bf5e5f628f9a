package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound    = errors.New("subscription not found")
	ErrInvalidPlan = errors.New("invalid subscription plan")
)

type Plan string

const (
	PlanBasic    Plan = "basic"
	PlanStandard Plan = "standard"
	PlanPremium  Plan = "premium"
)

// PlanSpec describes what a plan grants.
type PlanSpec struct {
	Plan         Plan          `json:"plan"`
	Duration     time.Duration `json:"-"`
	DurationDays int           `json:"duration_days"`
	ListingQuota int64         `json:"listing_quota"`
	PriceINR     int64         `json:"price_inr"`
}

func planSpec(plan Plan, days int, quota, price int64) PlanSpec {
	return PlanSpec{
		Plan:         plan,
		Duration:     time.Duration(days) * 24 * time.Hour,
		DurationDays: days,
		ListingQuota: quota,
		PriceINR:     price,
	}
}

// Catalog lists the plans in ascending order.
var Catalog = []PlanSpec{
	planSpec(PlanBasic, 30, 5, 999),
	planSpec(PlanStandard, 90, 25, 2499),
	planSpec(PlanPremium, 365, 100, 7999),
}

// Lookup returns the spec of plan.
func Lookup(plan Plan) (PlanSpec, error) {
	for _, s := range Catalog {
		if s.Plan == plan {
			return s, nil
		}
	}
	return PlanSpec{}, fmt.Errorf("%w: %q", ErrInvalidPlan, plan)
}

type Subscription struct {
	ID        string
	DealerID  string
	Plan      Plan
	ExpiresAt time.Time
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCurrent reports whether the subscription grants privileges at now.
func (s *Subscription) IsCurrent(now time.Time) bool {
	return s != nil && s.IsActive && now.Before(s.ExpiresAt)
}

type SubscriptionRepository interface {
	FindByDealer(ctx context.Context, dealerID string) (*Subscription, error)
	// Upsert stores s keyed by DealerID, keeping one subscription per dealer.
	Upsert(ctx context.Context, s *Subscription) error
	Deactivate(ctx context.Context, dealerID string, at time.Time) error
}
