package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-shop-api/internal/application/account"
	"github.com/go-shop-api/internal/application/auth"
	"github.com/go-shop-api/internal/application/catalog"
	"github.com/go-shop-api/internal/application/coupon"
	"github.com/go-shop-api/internal/application/media"
	"github.com/go-shop-api/internal/config"
	"github.com/go-shop-api/internal/domain"
	"github.com/go-shop-api/internal/transport/http/handler"
	appmiddleware "github.com/go-shop-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10. The single-pending-code rule already
	// throttles per identity; this throttles per caller.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		VerificationRepo: deps.VerificationRepo,
		UserRepo:         deps.UserRepo,
		Mailer:           deps.Mailer,
		Signer:           deps.JWTProvider,
		OTPTTL:           cfg.OTPTTL,
		AdminEmails:      cfg.AdminEmails,
	})
	accountSvc := account.NewService(deps.UserRepo, deps.AddressRepo)
	catalogSvc := catalog.NewService(deps.ProductRepo, deps.ReviewRepo)
	couponSvc := coupon.NewService(deps.CouponRepo, deps.ProductRepo)
	mediaSvc := media.NewService(deps.S3Store, 15*time.Minute)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc, deps.JWTProvider.Expiry())
	accountH := handler.NewAccountHandler(accountSvc)
	productH := handler.NewProductHandler(catalogSvc)
	couponH := handler.NewCouponHandler(couponSvc)
	mediaH := handler.NewMediaHandler(mediaSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/auth/sign-up", authH.SignUp)
		r.With(sensitiveRL.Limit).Post("/auth/verify-email", authH.VerifyEmail)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.Get("/auth/logout", authH.Logout)
		r.With(sensitiveRL.Limit).Post("/auth/forgot-password", authH.ForgotPassword)
		r.With(sensitiveRL.Limit).Post("/auth/verify-forgot-password", authH.VerifyForgotPassword)

		r.Get("/products", productH.List)
		r.Get("/products/{id}", productH.Detail)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/account/me", accountH.Me)
			r.Put("/account/me", accountH.Update)
			r.Get("/account/addresses", accountH.ListAddresses)
			r.Post("/account/addresses", accountH.CreateAddress)
			r.Put("/account/addresses/{id}", accountH.UpdateAddress)
			r.Delete("/account/addresses/{id}", accountH.DeleteAddress)

			r.Post("/products/{id}/reviews", productH.AddReview)
			r.Post("/coupons/apply", couponH.Apply)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/users", accountH.List)

				r.Post("/products", productH.Create)
				r.Put("/products/{id}", productH.Update)
				r.Delete("/products/{id}", productH.Delete)

				r.Get("/coupons", couponH.List)
				r.Post("/coupons", couponH.Create)
				r.Get("/coupons/{code}", couponH.Get)
				r.Put("/coupons/{code}", couponH.Update)
				r.Delete("/coupons/{code}", couponH.Delete)

				r.Post("/media", mediaH.Upload)
				r.Post("/media/base64", mediaH.UploadBase64)
				r.Get("/media/download-url", mediaH.DownloadURL)
			})
		})
	})

	return r
}
