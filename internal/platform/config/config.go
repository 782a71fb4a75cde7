package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	DBMaxConns        int32
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	SessionCookieName string
	MigrationsPath    string
	StaticDir         string

	GoogleClientID string `mapstructure:"GOOGLE_CLIENT_ID"`

	PayPalBaseURL      string `mapstructure:"PAYPAL_BASE_URL"`
	PayPalClientID     string `mapstructure:"PAYPAL_CLIENT_ID"`
	PayPalClientSecret string `mapstructure:"PAYPAL_CLIENT_SECRET"`
	CaptureLockTTL     time.Duration

	// PlatformCommissionRate is the fraction of a booking total kept by the platform.
	PlatformCommissionRate decimal.Decimal

	RedisURL      string `mapstructure:"REDIS_URL"`
	AMQPURL       string `mapstructure:"AMQP_URL"`
	AMQPExchange  string `mapstructure:"AMQP_EXCHANGE"`
	PosthogAPIKey string `mapstructure:"POSTHOG_API_KEY"`

	CORSAllowedOrigins []string
	LoginRateLimit     string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "borport")
	viper.SetDefault("SESSION_COOKIE_NAME", "borport_session")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("STATIC_DIR", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com")
	viper.SetDefault("PAYPAL_CLIENT_ID", "")
	viper.SetDefault("PAYPAL_CLIENT_SECRET", "")
	viper.SetDefault("CAPTURE_LOCK_TTL", "30s")
	viper.SetDefault("PLATFORM_COMMISSION_RATE", "0")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "borport.events")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.DBMaxConns = viper.GetInt32("DB_MAX_CONNS")

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.SessionCookieName = viper.GetString("SESSION_COOKIE_NAME")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.StaticDir = viper.GetString("STATIC_DIR")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	cfg.PayPalBaseURL = strings.TrimRight(viper.GetString("PAYPAL_BASE_URL"), "/")
	cfg.PayPalClientID = viper.GetString("PAYPAL_CLIENT_ID")
	cfg.PayPalClientSecret = viper.GetString("PAYPAL_CLIENT_SECRET")
	if cfg.PayPalClientID == "" || cfg.PayPalClientSecret == "" {
		log.Println("Warning: PAYPAL_CLIENT_ID or PAYPAL_CLIENT_SECRET not set. Payment capture will fail.")
	}

	lockTTLStr := viper.GetString("CAPTURE_LOCK_TTL")
	lockTTL, err := time.ParseDuration(lockTTLStr)
	if err != nil || lockTTL <= 0 {
		lockTTL = 30 * time.Second
		log.Printf("Warning: Invalid value for CAPTURE_LOCK_TTL ('%s'). Defaulting to %s.\n", lockTTLStr, lockTTL.String())
	}
	cfg.CaptureLockTTL = lockTTL

	rateStr := viper.GetString("PLATFORM_COMMISSION_RATE")
	rate, err := decimal.NewFromString(rateStr)
	if err != nil || rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		log.Printf("Warning: Invalid value for PLATFORM_COMMISSION_RATE ('%s'). Defaulting to 0.\n", rateStr)
		rate = decimal.Zero
	}
	cfg.PlatformCommissionRate = rate

	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Capture guard runs without Redis.")
	}
	cfg.AMQPURL = viper.GetString("AMQP_URL")
	cfg.AMQPExchange = viper.GetString("AMQP_EXCHANGE")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
