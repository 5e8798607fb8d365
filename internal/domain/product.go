package domain

import "time"

type Product struct {
	ProductID     string    `json:"id" dynamodbav:"product_id"`
	Name          string    `json:"name" dynamodbav:"name"`
	SKU           string    `json:"sku" dynamodbav:"sku"`
	Description   string    `json:"description" dynamodbav:"description"`
	Category      string    `json:"category" dynamodbav:"category"`
	SubCategory   string    `json:"sub_category" dynamodbav:"sub_category"`
	Design        string    `json:"design" dynamodbav:"design"`
	Price         float64   `json:"price" dynamodbav:"price"`
	Images        []string  `json:"images" dynamodbav:"images"`
	IsActive      bool      `json:"is_active" dynamodbav:"is_active"`
	AverageRating float64   `json:"average_rating" dynamodbav:"average_rating"`
	RatingCount   int       `json:"rating_count" dynamodbav:"rating_count"`
	CreatedAt     time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	SKU         string   `json:"sku" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"required"`
	SubCategory string   `json:"sub_category"`
	Design      string   `json:"design"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Images      []string `json:"images"`
	IsActive    *bool    `json:"is_active"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	SubCategory *string  `json:"sub_category"`
	Design      *string  `json:"design"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Images      []string `json:"images"`
	IsActive    *bool    `json:"is_active"`
}

// ProductFilter holds the public catalog query parameters.
type ProductFilter struct {
	Search      string // name substring, admin listing
	Category    string
	SubCategory string
	Design      string
	PriceMin    *float64
	PriceMax    *float64
	RatingMin   *float64
	ActiveOnly  bool
	Limit       int32
	Cursor      string
}
