package coupon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-shop-api/internal/domain"
)

// DynamoDB attribute names touched by coupon updates.
const (
	fieldDiscount      = "discount"
	fieldMinOrderValue = "min_order_value"
	fieldUsageLimit    = "usage_limit"
	fieldIsActive      = "is_active"
	fieldValidFrom     = "valid_from"
	fieldValidTill     = "valid_till"
	fieldApplicableTo  = "applicable_to"
)

// ApplyRequest asks whether a coupon covers the given cart.
type ApplyRequest struct {
	Code       string   `json:"code" validate:"required"`
	OrderValue float64  `json:"order_value" validate:"required,gt=0"`
	ProductIDs []string `json:"product_ids" validate:"required,min=1"`
}

// ApplyResult reports the discount a valid coupon grants.
type ApplyResult struct {
	Code        string  `json:"code"`
	Discount    float64 `json:"discount"`
	AmountOff   float64 `json:"amount_off"`
	FinalAmount float64 `json:"final_amount"`
}

type Service interface {
	Create(ctx context.Context, req domain.CreateCouponRequest) (*domain.Coupon, error)
	Get(ctx context.Context, code string) (*domain.Coupon, error)
	Update(ctx context.Context, code string, req domain.UpdateCouponRequest) (*domain.Coupon, error)
	Delete(ctx context.Context, code string) error
	List(ctx context.Context, limit int32, cursor string) ([]domain.Coupon, string, error)
	Apply(ctx context.Context, req ApplyRequest) (*ApplyResult, error)
}

type couponStore interface {
	Create(ctx context.Context, c *domain.Coupon) error
	Get(ctx context.Context, code string) (*domain.Coupon, error)
	Update(ctx context.Context, code string, updates map[string]interface{}) (*domain.Coupon, error)
	Delete(ctx context.Context, code string) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Coupon, string, error)
}

type productStore interface {
	Get(ctx context.Context, productID string) (*domain.Product, error)
}

type service struct {
	coupons  couponStore
	products productStore
}

func NewService(coupons couponStore, products productStore) Service {
	return &service{coupons: coupons, products: products}
}

func (s *service) Create(ctx context.Context, req domain.CreateCouponRequest) (*domain.Coupon, error) {
	from, till, err := parseWindow(req.ValidFrom, req.ValidTill)
	if err != nil {
		return nil, err
	}

	// Every product the coupon applies to must exist.
	for _, pid := range req.ApplicableTo {
		if _, err := s.products.Get(ctx, pid); err != nil {
			return nil, fmt.Errorf("applicable product %s: %w", pid, domain.ErrBadRequest)
		}
	}

	now := time.Now().UTC()
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	c := &domain.Coupon{
		Code:          normalizeCode(req.Code),
		Discount:      req.Discount,
		MinOrderValue: req.MinOrderValue,
		UsageLimit:    req.UsageLimit,
		IsActive:      active,
		ValidFrom:     from,
		ValidTill:     till,
		ApplicableTo:  req.ApplicableTo,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.coupons.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, code string) (*domain.Coupon, error) {
	return s.coupons.Get(ctx, normalizeCode(code))
}

func (s *service) Update(ctx context.Context, code string, req domain.UpdateCouponRequest) (*domain.Coupon, error) {
	updates := map[string]interface{}{}
	if req.Discount != nil {
		updates[fieldDiscount] = *req.Discount
	}
	if req.MinOrderValue != nil {
		updates[fieldMinOrderValue] = *req.MinOrderValue
	}
	if req.UsageLimit != nil {
		updates[fieldUsageLimit] = *req.UsageLimit
	}
	if req.IsActive != nil {
		updates[fieldIsActive] = *req.IsActive
	}
	if req.ValidFrom != nil {
		from, err := parseTimestamp(*req.ValidFrom)
		if err != nil {
			return nil, err
		}
		updates[fieldValidFrom] = from.Format(time.RFC3339)
	}
	if req.ValidTill != nil {
		till, err := parseTimestamp(*req.ValidTill)
		if err != nil {
			return nil, err
		}
		updates[fieldValidTill] = till.Format(time.RFC3339)
	}
	if req.ApplicableTo != nil {
		for _, pid := range req.ApplicableTo {
			if _, err := s.products.Get(ctx, pid); err != nil {
				return nil, fmt.Errorf("applicable product %s: %w", pid, domain.ErrBadRequest)
			}
		}
		updates[fieldApplicableTo] = req.ApplicableTo
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("nothing to update: %w", domain.ErrBadRequest)
	}
	return s.coupons.Update(ctx, normalizeCode(code), updates)
}

func (s *service) Delete(ctx context.Context, code string) error {
	if _, err := s.coupons.Get(ctx, normalizeCode(code)); err != nil {
		return err
	}
	return s.coupons.Delete(ctx, normalizeCode(code))
}

func (s *service) List(ctx context.Context, limit int32, cursor string) ([]domain.Coupon, string, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.coupons.ScanPage(ctx, limit, cursor)
}

// Apply checks the coupon against the cart: active, inside its validity
// window, order value above the minimum, and at least one cart product in
// the applicable set.
func (s *service) Apply(ctx context.Context, req ApplyRequest) (*ApplyResult, error) {
	c, err := s.coupons.Get(ctx, normalizeCode(req.Code))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch {
	case !c.IsActive:
		return nil, fmt.Errorf("coupon %s is inactive: %w", c.Code, domain.ErrBadRequest)
	case now.Before(c.ValidFrom):
		return nil, fmt.Errorf("coupon %s is not yet valid: %w", c.Code, domain.ErrBadRequest)
	case now.After(c.ValidTill):
		return nil, fmt.Errorf("coupon %s has expired: %w", c.Code, domain.ErrBadRequest)
	case req.OrderValue < c.MinOrderValue:
		return nil, fmt.Errorf("order value below coupon minimum %.2f: %w", c.MinOrderValue, domain.ErrBadRequest)
	}

	applicable := map[string]bool{}
	for _, pid := range c.ApplicableTo {
		applicable[pid] = true
	}
	covered := false
	for _, pid := range req.ProductIDs {
		if applicable[pid] {
			covered = true
			break
		}
	}
	if !covered {
		return nil, fmt.Errorf("coupon %s does not apply to any cart product: %w", c.Code, domain.ErrBadRequest)
	}

	amountOff := req.OrderValue * c.Discount / 100
	return &ApplyResult{
		Code:        c.Code,
		Discount:    c.Discount,
		AmountOff:   amountOff,
		FinalAmount: req.OrderValue - amountOff,
	}, nil
}

func parseWindow(from, till string) (time.Time, time.Time, error) {
	f, err := parseTimestamp(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	t, err := parseTimestamp(till)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !t.After(f) {
		return time.Time{}, time.Time{}, fmt.Errorf("valid_till must be after valid_from: %w", domain.ErrBadRequest)
	}
	return f, t, nil
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, domain.ErrBadRequest)
	}
	return t.UTC(), nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
