package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ServiceAuth    = "auth"
	ServiceCatalog = "catalog"
	ServiceCart    = "cart"
	ServiceOrder   = "order"
)

type Config struct {
	AppEnv   string
	AppPort  string
	Services []string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	JWTSecret    string
	JWTAlg       string
	JWTExpiresIn time.Duration

	CORSOrigins []string

	KafkaBrokers     []string
	KafkaTopicPrefix string

	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	expireMin, err := getEnvInt("JWT_EXPIRE_MIN", 120)
	if err != nil {
		return nil, err
	}
	rps, err := getEnvFloat("RATE_LIMIT_RPS", 10)
	if err != nil {
		return nil, err
	}
	burst, err := getEnvInt("RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		AppPort:  getEnv("APP_PORT", "8080"),
		Services: splitList(getEnv("APP_SERVICES", "auth,catalog,cart,order")),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBUser:     getEnv("DB_USER", "ecom_user"),
		DBPassword: getEnv("DB_PASSWORD", "ecom_pass"),
		DBName:     getEnv("DB_NAME", "ecommerce"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTAlg:       getEnv("JWT_ALG", "HS256"),
		JWTExpiresIn: time.Duration(expireMin) * time.Minute,

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),

		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", "storefront"),

		RateLimitRPS:   rps,
		RateLimitBurst: burst,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		// Only local development may run on the built-in secret.
		if c.AppEnv != "development" {
			return fmt.Errorf("JWT_SECRET is required when APP_ENV is %q", c.AppEnv)
		}
		c.JWTSecret = "change_this_secret"
	}

	switch c.JWTAlg {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported JWT_ALG %q", c.JWTAlg)
	}

	if c.JWTExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRE_MIN must be positive")
	}

	for _, s := range c.Services {
		switch s {
		case ServiceAuth, ServiceCatalog, ServiceCart, ServiceOrder:
		default:
			return fmt.Errorf("unknown service %q in APP_SERVICES", s)
		}
	}
	if len(c.Services) == 0 {
		return fmt.Errorf("APP_SERVICES must name at least one service")
	}

	return nil
}

// Enabled reports whether the named service is mounted by this process.
func (c *Config) Enabled(service string) bool {
	for _, s := range c.Services {
		if s == service {
			return true
		}
	}
	return false
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
