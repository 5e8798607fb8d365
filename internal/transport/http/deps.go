package http

import (
	"github.com/go-shop-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-shop-api/internal/infrastructure/jwt"
	s3infra "github.com/go-shop-api/internal/infrastructure/s3"
	"github.com/go-shop-api/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	VerificationRepo *dynamo.VerificationRepo
	ProductRepo      *dynamo.ProductRepo
	ReviewRepo       *dynamo.ReviewRepo
	CouponRepo       *dynamo.CouponRepo
	AddressRepo      *dynamo.AddressRepo
	S3Store          *s3infra.Store
	Mailer           smtp.Mailer
	JWTProvider      *jwtinfra.Provider
}
