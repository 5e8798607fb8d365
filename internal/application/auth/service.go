package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/go-shop-api/internal/domain"
	"github.com/go-shop-api/internal/pkg/id"
	"github.com/go-shop-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// ConfirmRequest carries a submitted verification code.
type ConfirmRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// PasswordResetRequest escrows the intended new password until the code
// is confirmed.
type PasswordResetRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// AuthResult is a confirmed account plus its freshly minted session credential.
type AuthResult struct {
	User  *domain.User
	Token string
}

// Service drives the one-time-code workflow gating account creation and
// password reset, plus the credential-based login that sits next to it.
type Service interface {
	RequestSignupCode(ctx context.Context, req domain.SignupRequest) error
	ConfirmSignup(ctx context.Context, email, code string) (*AuthResult, error)
	RequestPasswordResetCode(ctx context.Context, req PasswordResetRequest) error
	ConfirmPasswordReset(ctx context.Context, email, code string) (*AuthResult, error)
	Login(ctx context.Context, req domain.LoginRequest) (*AuthResult, error)
}

type verificationStore interface {
	Put(ctx context.Context, v *domain.VerificationEntry) error
	Get(ctx context.Context, purpose domain.Purpose, email string) (*domain.VerificationEntry, error)
	Consume(ctx context.Context, purpose domain.Purpose, email, code string, now time.Time) (*domain.VerificationEntry, error)
}

type identityStore interface {
	Exists(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	UpdatePassword(ctx context.Context, email, newPasswordHash string) (*domain.User, error)
}

type mailer interface {
	Send(to, toName, subject, body string) error
}

type credentialSigner interface {
	Sign(userID, email, role string) (string, error)
}

type service struct {
	verifications verificationStore
	identities    identityStore
	mailer        mailer
	signer        credentialSigner
	otpTTL        time.Duration
	adminEmails   []string
}

type ServiceDeps struct {
	VerificationRepo verificationStore
	UserRepo         identityStore
	Mailer           mailer
	Signer           credentialSigner
	OTPTTL           time.Duration
	AdminEmails      []string // lowercase; granted ADMIN at issuance
}

func NewService(deps ServiceDeps) Service {
	return &service{
		verifications: deps.VerificationRepo,
		identities:    deps.UserRepo,
		mailer:        deps.Mailer,
		signer:        deps.Signer,
		otpTTL:        deps.OTPTTL,
		adminEmails:   deps.AdminEmails,
	}
}

func (s *service) RequestSignupCode(ctx context.Context, req domain.SignupRequest) error {
	email := normalizeEmail(req.Email)
	if !validate.Email(email) {
		return fmt.Errorf("invalid email %q: %w", email, domain.ErrBadRequest)
	}

	if err := s.ensureNoPending(ctx, domain.PurposeSignup, email); err != nil {
		return err
	}
	exists, err := s.identities.Exists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("signup for %s: %w", email, domain.ErrIdentityExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	code, err := s.issue(ctx, domain.PurposeSignup, email, domain.EscrowPayload{
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         s.roleFor(email),
	})
	if err != nil {
		return err
	}

	s.deliver(email, req.Name, "Your verification code",
		fmt.Sprintf("Your verification code is: %s", code))
	return nil
}

func (s *service) ConfirmSignup(ctx context.Context, email, code string) (*AuthResult, error) {
	email = normalizeEmail(email)

	entry, err := s.verifications.Consume(ctx, domain.PurposeSignup, email, code, time.Now())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         entry.Payload.Name,
		Email:        email,
		PasswordHash: entry.Payload.PasswordHash,
		Role:         entry.Payload.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.identities.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.startSession(u)
}

func (s *service) RequestPasswordResetCode(ctx context.Context, req PasswordResetRequest) error {
	email := normalizeEmail(req.Email)
	if !validate.Email(email) {
		return fmt.Errorf("invalid email %q: %w", email, domain.ErrBadRequest)
	}

	if err := s.ensureNoPending(ctx, domain.PurposePasswordReset, email); err != nil {
		return err
	}
	u, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("password reset for %s: %w", email, domain.ErrIdentityNotFound)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	code, err := s.issue(ctx, domain.PurposePasswordReset, email, domain.EscrowPayload{
		NewPasswordHash: string(hash),
	})
	if err != nil {
		return err
	}

	s.deliver(email, u.Name, "Your password reset code",
		fmt.Sprintf("Your password reset code is: %s", code))
	return nil
}

func (s *service) ConfirmPasswordReset(ctx context.Context, email, code string) (*AuthResult, error) {
	email = normalizeEmail(email)

	entry, err := s.verifications.Consume(ctx, domain.PurposePasswordReset, email, code, time.Now())
	if err != nil {
		return nil, err
	}

	u, err := s.identities.UpdatePassword(ctx, email, entry.Payload.NewPasswordHash)
	if err != nil {
		return nil, err
	}
	return s.startSession(u)
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*AuthResult, error) {
	email := normalizeEmail(req.Email)

	// A live signup entry means the email is mid-verification; make the
	// caller finish or wait out the code instead of logging in around it.
	if entry, err := s.verifications.Get(ctx, domain.PurposeSignup, email); err == nil && entry.Live(time.Now()) {
		return nil, fmt.Errorf("signup verification pending for %s: %w", email, domain.ErrAlreadyPending)
	}

	u, err := s.identities.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	return s.startSession(u)
}

// ensureNoPending rejects issuance while a live entry exists for the key.
// The original code stays authoritative until it expires; issuing another
// would enable code-flooding.
func (s *service) ensureNoPending(ctx context.Context, purpose domain.Purpose, email string) error {
	entry, err := s.verifications.Get(ctx, purpose, email)
	if err != nil {
		if errors.Is(err, domain.ErrNoPendingCode) {
			return nil
		}
		return err
	}
	if entry.Live(time.Now()) {
		return fmt.Errorf("code already sent for %s/%s: %w", purpose, email, domain.ErrAlreadyPending)
	}
	return nil
}

// issue generates a code, escrows it with the payload, and returns the
// code for out-of-band delivery. The store's conditional put closes the
// race the ensureNoPending pre-check cannot.
func (s *service) issue(ctx context.Context, purpose domain.Purpose, email string, payload domain.EscrowPayload) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	now := time.Now()
	entry := &domain.VerificationEntry{
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		Payload:   payload,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.otpTTL).Unix(),
	}
	if err := s.verifications.Put(ctx, entry); err != nil {
		return "", err
	}
	return code, nil
}

func (s *service) startSession(u *domain.User) (*AuthResult, error) {
	token, err := s.signer.Sign(u.UserID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: token}, nil
}

// deliver sends the code out of band. A delivery failure is logged but
// does not invalidate the entry: the code stays honorable for its TTL.
func (s *service) deliver(to, toName, subject, body string) {
	if err := s.mailer.Send(to, toName, subject, body); err != nil {
		slog.Warn("verification code delivery failed", "to", to, "err", err)
	}
}

func (s *service) roleFor(email string) string {
	for _, admin := range s.adminEmails {
		if admin == email {
			return domain.RoleAdmin
		}
	}
	return domain.RoleUser
}

// generateCode returns a uniformly random 6-digit code in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
