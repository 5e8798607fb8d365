package account

import (
	"context"
	"fmt"
	"time"

	"github.com/go-shop-api/internal/domain"
	"github.com/go-shop-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName   = "name"
	fieldAvatar = "avatar"
)

type Service interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateAccountRequest) (*domain.User, error)
	List(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
	ListAddresses(ctx context.Context, userID string) ([]domain.Address, error)
	CreateAddress(ctx context.Context, userID string, req domain.CreateAddressRequest) (*domain.Address, error)
	UpdateAddress(ctx context.Context, userID, addressID string, req domain.UpdateAddressRequest) (*domain.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID string) error
}

type userStore interface {
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, email string, updates map[string]interface{}) (*domain.User, error)
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

type addressStore interface {
	Put(ctx context.Context, a *domain.Address) error
	Get(ctx context.Context, addressID string) (*domain.Address, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)
	Update(ctx context.Context, addressID string, updates map[string]interface{}) (*domain.Address, error)
	Delete(ctx context.Context, addressID string) error
}

type service struct {
	users     userStore
	addresses addressStore
}

func NewService(users userStore, addresses addressStore) Service {
	return &service{users: users, addresses: addresses}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// Update edits profile fields only. Email, password and role have their
// own guarded paths and are rejected before this is reached.
func (s *service) Update(ctx context.Context, userID string, req domain.UpdateAccountRequest) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Avatar != nil {
		updates[fieldAvatar] = *req.Avatar
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("nothing to update: %w", domain.ErrBadRequest)
	}
	return s.users.Update(ctx, u.Email, updates)
}

func (s *service) List(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error) {
	return s.users.ScanPage(ctx, limit, cursor)
}

func (s *service) ListAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	return s.addresses.ListByUser(ctx, userID)
}

func (s *service) CreateAddress(ctx context.Context, userID string, req domain.CreateAddressRequest) (*domain.Address, error) {
	existing, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= domain.MaxAddressesPerUser {
		return nil, fmt.Errorf("maximum of %d addresses allowed: %w", domain.MaxAddressesPerUser, domain.ErrBadRequest)
	}
	now := time.Now().UTC()
	a := &domain.Address{
		AddressID:  id.New(),
		UserID:     userID,
		Label:      req.Label,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Phone:      req.Phone,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.addresses.Put(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) UpdateAddress(ctx context.Context, userID, addressID string, req domain.UpdateAddressRequest) (*domain.Address, error) {
	a, err := s.addresses.Get(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, fmt.Errorf("address %s: %w", addressID, domain.ErrNotFound)
	}
	updates := map[string]interface{}{}
	setIf := func(field string, v *string) {
		if v != nil {
			updates[field] = *v
		}
	}
	setIf("label", req.Label)
	setIf("line1", req.Line1)
	setIf("line2", req.Line2)
	setIf("city", req.City)
	setIf("state", req.State)
	setIf("postal_code", req.PostalCode)
	setIf("country", req.Country)
	setIf("phone", req.Phone)
	if len(updates) == 0 {
		return nil, fmt.Errorf("nothing to update: %w", domain.ErrBadRequest)
	}
	return s.addresses.Update(ctx, addressID, updates)
}

func (s *service) DeleteAddress(ctx context.Context, userID, addressID string) error {
	a, err := s.addresses.Get(ctx, addressID)
	if err != nil {
		return err
	}
	if a.UserID != userID {
		return fmt.Errorf("address %s: %w", addressID, domain.ErrNotFound)
	}
	return s.addresses.Delete(ctx, addressID)
}
