package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Auth      AuthConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// IsProduction reports whether cookies must be issued for cross-site use.
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

type MongoDBConfig struct {
	URI                     string
	User                    string
	Password                string
	Host                    string
	Database                string
	OpportunitiesCollection string
	ApplicationsCollection  string
	Timeout                 time.Duration
}

// ConnectionURI returns MongoDB's URI. An explicit URI wins; otherwise an SRV
// URI is assembled from user, password and host. Empty when nothing is configured.
func (m MongoDBConfig) ConnectionURI() string {
	if m.URI != "" {
		return m.URI
	}
	if m.Host == "" {
		return ""
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		Host:     m.Host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	if m.User != "" {
		u.User = url.UserPassword(m.User, m.Password)
	}
	return u.String()
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// AuthConfig controls the cookie gate. Strict rejects requests whose token
// fails verification; lenient lets them through without an identity.
type AuthConfig struct {
	Strict bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"https://volunteer-e5e10.web.app",
	"https://volunteer-e5e10.firebaseapp.com",
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "9000")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_DATABASE", "Volunteer")
	viper.SetDefault("MONGODB_OPPORTUNITIES_COLLECTION", "AddedVolunteer")
	viper.SetDefault("MONGODB_APPLICATIONS_COLLECTION", "BeAVolunteer")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("JWT_TOKEN_TTL", 10080)
	viper.SetDefault("AUTH_STRICT", true)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("RATE_LIMIT_ENABLED", false)
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:                     viper.GetString("MONGODB_URI"),
			User:                    viper.GetString("MONGODB_USER"),
			Password:                viper.GetString("MONGODB_PASSWORD"),
			Host:                    viper.GetString("MONGODB_HOST"),
			Database:                viper.GetString("MONGODB_DATABASE"),
			OpportunitiesCollection: viper.GetString("MONGODB_OPPORTUNITIES_COLLECTION"),
			ApplicationsCollection:  viper.GetString("MONGODB_APPLICATIONS_COLLECTION"),
			Timeout:                 time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       0,
		},
		JWT: JWTConfig{
			Secret:   viper.GetString("JWT_SECRET"),
			TokenTTL: time.Duration(viper.GetInt("JWT_TOKEN_TTL")) * time.Minute,
		},
		Auth: AuthConfig{
			Strict: viper.GetBool("AUTH_STRICT"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = append([]string(nil), defaultOrigins...)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET is required")
	}
	if cfg.JWT.TokenTTL <= 0 {
		return nil, fmt.Errorf("JWT_TOKEN_TTL must be positive, got %s", cfg.JWT.TokenTTL)
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
