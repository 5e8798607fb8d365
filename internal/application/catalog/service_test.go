package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/go-shop-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) Put(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockProductStore) Get(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if p, _ := args.Get(0).(*domain.Product); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProductStore) Update(ctx context.Context, productID string, updates map[string]interface{}) (*domain.Product, error) {
	args := m.Called(ctx, productID, updates)
	if p, _ := args.Get(0).(*domain.Product); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProductStore) Delete(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}
func (m *mockProductStore) ScanFilter(ctx context.Context, f domain.ProductFilter) ([]domain.Product, string, error) {
	args := m.Called(ctx, f)
	products, _ := args.Get(0).([]domain.Product)
	return products, args.String(1), args.Error(2)
}

type mockReviewStore struct{ mock.Mock }

func (m *mockReviewStore) Put(ctx context.Context, rev *domain.Review) error {
	return m.Called(ctx, rev).Error(0)
}
func (m *mockReviewStore) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	reviews, _ := args.Get(0).([]domain.Review)
	return reviews, args.Error(1)
}

func TestDetail_ReturnsProductWithReviews(t *testing.T) {
	ps := &mockProductStore{}
	rs := &mockReviewStore{}

	ps.On("Get", mock.Anything, "p1").Return(&domain.Product{ProductID: "p1", Name: "Mug"}, nil)
	rs.On("ListByProduct", mock.Anything, "p1").Return([]domain.Review{{ReviewID: "r1", Rating: 5}}, nil)

	svc := NewService(ps, rs)
	detail, err := svc.Detail(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "Mug", detail.Product.Name)
	assert.Len(t, detail.Reviews, 1)
}

func TestDetail_NoReviews_EmptySlice(t *testing.T) {
	ps := &mockProductStore{}
	rs := &mockReviewStore{}

	ps.On("Get", mock.Anything, "p1").Return(&domain.Product{ProductID: "p1"}, nil)
	rs.On("ListByProduct", mock.Anything, "p1").Return(nil, nil)

	svc := NewService(ps, rs)
	detail, err := svc.Detail(context.Background(), "p1")

	require.NoError(t, err)
	assert.NotNil(t, detail.Reviews)
	assert.Empty(t, detail.Reviews)
}

func TestDetail_ProductNotFound(t *testing.T) {
	ps := &mockProductStore{}
	rs := &mockReviewStore{}

	ps.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(ps, rs)
	_, err := svc.Detail(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	rs.AssertNotCalled(t, "ListByProduct", mock.Anything, mock.Anything)
}

func TestAddReview_RecalculatesAverage(t *testing.T) {
	ps := &mockProductStore{}
	rs := &mockReviewStore{}

	ps.On("Get", mock.Anything, "p1").Return(&domain.Product{
		ProductID: "p1", AverageRating: 4.0, RatingCount: 2,
	}, nil)
	rs.On("Put", mock.Anything, mock.MatchedBy(func(rev *domain.Review) bool {
		return rev.ProductID == "p1" && rev.UserID == "u1" && rev.Rating == 1 && rev.ReviewID != ""
	})).Return(nil)
	// (4.0*2 + 1) / 3 = 3.0
	ps.On("Update", mock.Anything, "p1", mock.MatchedBy(func(m map[string]interface{}) bool {
		return m[fieldAverageRating] == 3.0 && m[fieldRatingCount] == 3
	})).Return(&domain.Product{ProductID: "p1"}, nil)

	svc := NewService(ps, rs)
	rev, err := svc.AddReview(context.Background(), "p1", "u1", domain.CreateReviewRequest{Rating: 1})

	require.NoError(t, err)
	assert.Equal(t, 1, rev.Rating)
	ps.AssertExpectations(t)
	rs.AssertExpectations(t)
}

func TestAddReview_FirstReview(t *testing.T) {
	ps := &mockProductStore{}
	rs := &mockReviewStore{}

	ps.On("Get", mock.Anything, "p1").Return(&domain.Product{ProductID: "p1"}, nil)
	rs.On("Put", mock.Anything, mock.Anything).Return(nil)
	ps.On("Update", mock.Anything, "p1", mock.MatchedBy(func(m map[string]interface{}) bool {
		return m[fieldAverageRating] == 5.0 && m[fieldRatingCount] == 1
	})).Return(&domain.Product{ProductID: "p1"}, nil)

	svc := NewService(ps, rs)
	_, err := svc.AddReview(context.Background(), "p1", "u1", domain.CreateReviewRequest{Rating: 5})

	require.NoError(t, err)
	ps.AssertExpectations(t)
}

func TestAddReview_ProductNotFound(t *testing.T) {
	ps := &mockProductStore{}
	rs := &mockReviewStore{}

	ps.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(ps, rs)
	_, err := svc.AddReview(context.Background(), "missing", "u1", domain.CreateReviewRequest{Rating: 5})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	rs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreate_DefaultsToActive(t *testing.T) {
	ps := &mockProductStore{}

	ps.On("Put", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.IsActive && p.ProductID != "" && p.Name == "Mug"
	})).Return(nil)

	svc := NewService(ps, &mockReviewStore{})
	p, err := svc.Create(context.Background(), domain.CreateProductRequest{
		Name: "Mug", SKU: "MUG-1", Category: "kitchen", Price: 9.5,
	})

	require.NoError(t, err)
	assert.True(t, p.IsActive)
	ps.AssertExpectations(t)
}

func TestCreate_ExplicitlyInactive(t *testing.T) {
	ps := &mockProductStore{}

	inactive := false
	ps.On("Put", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return !p.IsActive
	})).Return(nil)

	svc := NewService(ps, &mockReviewStore{})
	p, err := svc.Create(context.Background(), domain.CreateProductRequest{
		Name: "Mug", SKU: "MUG-1", Category: "kitchen", Price: 9.5, IsActive: &inactive,
	})

	require.NoError(t, err)
	assert.False(t, p.IsActive)
}

func TestUpdate_NothingToUpdate(t *testing.T) {
	ps := &mockProductStore{}

	svc := NewService(ps, &mockReviewStore{})
	_, err := svc.Update(context.Background(), "p1", domain.UpdateProductRequest{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	ps.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_ProductNotFound(t *testing.T) {
	ps := &mockProductStore{}
	ps.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(ps, &mockReviewStore{})
	err := svc.Delete(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	ps.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
