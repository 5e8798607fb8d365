package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-shop-api/internal/config"
	"github.com/go-shop-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/go-shop-api/internal/infrastructure/jwt"
	s3infra "github.com/go-shop-api/internal/infrastructure/s3"
	"github.com/go-shop-api/internal/infrastructure/smtp"
	"github.com/go-shop-api/internal/infrastructure/sns"
	transporthttp "github.com/go-shop-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Session credentials are mandatory: signup confirmation mints one.
	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider: %v", err)
	}

	// S3 store for product images and avatars.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// Verification codes go out through SMTP by default; MAIL_PROVIDER=sns
	// hands them to an SNS topic instead.
	var mailer smtp.Mailer
	switch cfg.MailProvider {
	case "sns":
		publisher, err := sns.NewEmailPublisher(cfg)
		if err != nil {
			log.Fatalf("SNS publisher: %v", err)
		}
		mailer = publisher
	default:
		mailer = smtp.NewMailer(cfg)
	}

	deps := &transporthttp.Deps{
		UserRepo:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		VerificationRepo: dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.Verifications),
		ProductRepo:      dynamo.NewProductRepo(dynamoClient, cfg.DynamoTables.Products),
		ReviewRepo:       dynamo.NewReviewRepo(dynamoClient, cfg.DynamoTables.Reviews),
		CouponRepo:       dynamo.NewCouponRepo(dynamoClient, cfg.DynamoTables.Coupons),
		AddressRepo:      dynamo.NewAddressRepo(dynamoClient, cfg.DynamoTables.Addresses),
		S3Store:          s3Store,
		Mailer:           mailer,
		JWTProvider:      jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
