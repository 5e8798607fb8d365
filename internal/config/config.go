package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	SessionExpiry     time.Duration // JWT/cookie lifetime

	// OTPTTL bounds how long an issued verification code stays honorable.
	OTPTTL time.Duration

	// AdminEmails get the ADMIN role at signup-code issuance time.
	AdminEmails []string

	MailProvider string // "smtp" | "sns"
	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPFromName string
	SMTPUsername string
	SMTPPassword string
	SNSRegion    string
	SNSTopicARN  string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users         string
	Verifications string
	Products      string
	Reviews       string
	Coupons       string
	Addresses     string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:         getEnv("DYNAMO_TABLE_USERS", "users"),
			Verifications: getEnv("DYNAMO_TABLE_VERIFICATIONS", "verifications"),
			Products:      getEnv("DYNAMO_TABLE_PRODUCTS", "products"),
			Reviews:       getEnv("DYNAMO_TABLE_REVIEWS", "reviews"),
			Coupons:       getEnv("DYNAMO_TABLE_COUPONS", "coupons"),
			Addresses:     getEnv("DYNAMO_TABLE_ADDRESSES", "addresses"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "shop-media"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		SessionExpiry:     time.Duration(getEnvInt("SESSION_EXPIRY_DAYS", 30)) * 24 * time.Hour,

		OTPTTL: time.Duration(getEnvInt("OTP_TTL_SECONDS", 120)) * time.Second,

		AdminEmails: splitNonEmpty(getEnv("ADMIN_EMAILS", "")),

		MailProvider: getEnv("MAIL_PROVIDER", "smtp"),
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Shop"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SNSRegion:    getEnv("SNS_REGION", "us-east-1"),
		SNSTopicARN:  getEnv("SNS_TOPIC_ARN", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
