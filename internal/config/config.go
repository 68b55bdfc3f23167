package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string
	DBSSLMode     string
	JWTSecret     string
	JWTExpiry     time.Duration
	Port          string
	Env           string
	LogLevel      string
	AllowOrigins  string
	MaxUploadSize int64

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string
	Currency          string

	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	SMTPFrom  string
	PublicURL string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
	UploadFolder      string

	DeadlineSweepInterval time.Duration
	NotifyQueueSize       int
}

func NewConfigFromEnv() (*Config, error) {
	maxUploadSize, err := strconv.ParseInt(getenv("MAX_UPLOAD_SIZE", "5242880"), 10, 64)
	if err != nil || maxUploadSize <= 0 {
		return nil, errors.New("MAX_UPLOAD_SIZE must be a positive number of bytes")
	}
	smtpPort, err := strconv.Atoi(getenv("SMTP_PORT", "587"))
	if err != nil || smtpPort <= 0 || smtpPort > 65535 {
		return nil, errors.New("SMTP_PORT must be a valid port number")
	}
	queueSize, err := strconv.Atoi(getenv("NOTIFY_QUEUE_SIZE", "256"))
	if err != nil || queueSize <= 0 {
		return nil, errors.New("NOTIFY_QUEUE_SIZE must be a positive integer")
	}

	jwtExpiry, err := time.ParseDuration(getenv("JWT_EXPIRY", "720h"))
	if err != nil {
		return nil, errors.New("JWT_EXPIRY must be a duration such as 720h")
	}
	sweep, err := time.ParseDuration(getenv("DEADLINE_SWEEP_INTERVAL", "15m"))
	if err != nil {
		return nil, errors.New("DEADLINE_SWEEP_INTERVAL must be a duration such as 15m")
	}

	cfg := &Config{
		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPass:        getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "sportify"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		JWTSecret:     getenv("JWT_SECRET", ""),
		JWTExpiry:     jwtExpiry,
		Port:          getenv("PORT", "5000"),
		Env:           getenv("ENV", "development"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		AllowOrigins:  getenv("ALLOWED_ORIGINS", "*"),
		MaxUploadSize: maxUploadSize,

		RazorpayKeyID:     getenv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getenv("RAZORPAY_KEY_SECRET", ""),
		RazorpayBaseURL:   strings.TrimRight(getenv("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"), "/"),
		Currency:          getenv("PAYMENT_CURRENCY", "INR"),

		SMTPHost:  getenv("SMTP_HOST", ""),
		SMTPPort:  smtpPort,
		SMTPUser:  getenv("SMTP_USER", ""),
		SMTPPass:  getenv("SMTP_PASSWORD", ""),
		SMTPFrom:  getenv("SMTP_FROM", "Sportify <no-reply@sportify.local>"),
		PublicURL: strings.TrimRight(getenv("PUBLIC_URL", "http://localhost:3000"), "/"),

		R2AccountID:       getenv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getenv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: getenv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:      getenv("R2_BUCKET_NAME", ""),
		R2PublicBaseURL:   getenv("R2_PUBLIC_BASE_URL", ""),
		UploadFolder:      getenv("UPLOAD_FOLDER", "sportify/aadhar"),

		DeadlineSweepInterval: sweep,
		NotifyQueueSize:       queueSize,
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// DSN builds the postgres connection string for gorm.
func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPass +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
