package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/go-shop-api/internal/domain"
	"github.com/go-shop-api/internal/pkg/id"
)

// DynamoDB attribute names touched by catalog updates.
const (
	fieldName          = "name"
	fieldDescription   = "description"
	fieldCategory      = "category"
	fieldSubCategory   = "sub_category"
	fieldDesign        = "design"
	fieldPrice         = "price"
	fieldImages        = "images"
	fieldIsActive      = "is_active"
	fieldAverageRating = "average_rating"
	fieldRatingCount   = "rating_count"
)

// ProductDetail is a product together with its reviews.
type ProductDetail struct {
	Product *domain.Product `json:"product"`
	Reviews []domain.Review `json:"reviews"`
}

type Service interface {
	List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, string, error)
	Detail(ctx context.Context, productID string) (*ProductDetail, error)
	AddReview(ctx context.Context, productID, userID string, req domain.CreateReviewRequest) (*domain.Review, error)

	Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	Update(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error)
	Delete(ctx context.Context, productID string) error
}

type productStore interface {
	Put(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	Update(ctx context.Context, productID string, updates map[string]interface{}) (*domain.Product, error)
	Delete(ctx context.Context, productID string) error
	ScanFilter(ctx context.Context, f domain.ProductFilter) ([]domain.Product, string, error)
}

type reviewStore interface {
	Put(ctx context.Context, rev *domain.Review) error
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
}

type service struct {
	products productStore
	reviews  reviewStore
}

func NewService(products productStore, reviews reviewStore) Service {
	return &service{products: products, reviews: reviews}
}

func (s *service) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, string, error) {
	return s.products.ScanFilter(ctx, f)
}

func (s *service) Detail(ctx context.Context, productID string) (*ProductDetail, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return &ProductDetail{Product: p, Reviews: reviews}, nil
}

// AddReview stores the review and folds its rating into the product's
// running average. The recalc is a read-modify-write; a lost update under
// concurrent reviews only skews the average by one sample.
func (s *service) AddReview(ctx context.Context, productID, userID string, req domain.CreateReviewRequest) (*domain.Review, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	rev := &domain.Review{
		ReviewID:  id.New(),
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.reviews.Put(ctx, rev); err != nil {
		return nil, err
	}

	count := p.RatingCount + 1
	avg := (p.AverageRating*float64(p.RatingCount) + float64(req.Rating)) / float64(count)
	if _, err := s.products.Update(ctx, productID, map[string]interface{}{
		fieldAverageRating: avg,
		fieldRatingCount:   count,
	}); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *service) Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	now := time.Now().UTC()
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	p := &domain.Product{
		ProductID:   id.New(),
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Design:      req.Design,
		Price:       req.Price,
		Images:      req.Images,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
	}
	if req.Category != nil {
		updates[fieldCategory] = *req.Category
	}
	if req.SubCategory != nil {
		updates[fieldSubCategory] = *req.SubCategory
	}
	if req.Design != nil {
		updates[fieldDesign] = *req.Design
	}
	if req.Price != nil {
		updates[fieldPrice] = *req.Price
	}
	if req.Images != nil {
		updates[fieldImages] = req.Images
	}
	if req.IsActive != nil {
		updates[fieldIsActive] = *req.IsActive
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("nothing to update: %w", domain.ErrBadRequest)
	}
	return s.products.Update(ctx, productID, updates)
}

func (s *service) Delete(ctx context.Context, productID string) error {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return err
	}
	return s.products.Delete(ctx, productID)
}
