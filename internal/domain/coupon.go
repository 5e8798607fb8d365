package domain

import "time"

type Coupon struct {
	Code          string    `json:"code" dynamodbav:"code"`
	Discount      float64   `json:"discount" dynamodbav:"discount"` // percent off
	MinOrderValue float64   `json:"min_order_value" dynamodbav:"min_order_value"`
	UsageLimit    int       `json:"usage_limit" dynamodbav:"usage_limit"`
	IsActive      bool      `json:"is_active" dynamodbav:"is_active"`
	ValidFrom     time.Time `json:"valid_from" dynamodbav:"valid_from"`
	ValidTill     time.Time `json:"valid_till" dynamodbav:"valid_till"`
	ApplicableTo  []string  `json:"applicable_to" dynamodbav:"applicable_to"` // product IDs
	CreatedAt     time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateCouponRequest struct {
	Code          string   `json:"code" validate:"required,alphanum,min=3,max=32"`
	Discount      float64  `json:"discount" validate:"required,gt=0,lte=100"`
	MinOrderValue float64  `json:"min_order_value" validate:"gte=0"`
	UsageLimit    int      `json:"usage_limit" validate:"gte=0"`
	IsActive      *bool    `json:"is_active"`
	ValidFrom     string   `json:"valid_from" validate:"required"` // RFC 3339
	ValidTill     string   `json:"valid_till" validate:"required"` // RFC 3339
	ApplicableTo  []string `json:"applicable_to" validate:"required,min=1"`
}

type UpdateCouponRequest struct {
	Discount      *float64 `json:"discount" validate:"omitempty,gt=0,lte=100"`
	MinOrderValue *float64 `json:"min_order_value" validate:"omitempty,gte=0"`
	UsageLimit    *int     `json:"usage_limit" validate:"omitempty,gte=0"`
	IsActive      *bool    `json:"is_active"`
	ValidFrom     *string  `json:"valid_from"`
	ValidTill     *string  `json:"valid_till"`
	ApplicableTo  []string `json:"applicable_to"`
}
