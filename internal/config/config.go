package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

type Config struct {
	Server   ServerConfig   `mapstructure:",squash"`
	Database DatabaseConfig `mapstructure:",squash"`
	JWT      JWTConfig      `mapstructure:",squash"`
	SMTP     SMTPConfig     `mapstructure:",squash"`
	Redis    RedisConfig    `mapstructure:",squash"`
	Shop     ShopConfig     `mapstructure:",squash"`
}

type ServerConfig struct {
	Env                string   `mapstructure:"app_env"`
	Port               int      `mapstructure:"http_port"`
	AllowedOrigins     []string `mapstructure:"allowed_origins"`
	RateLimitPerMinute int      `mapstructure:"rate_limit_per_minute"`
	RateLimitBurst     int      `mapstructure:"rate_limit_burst"`
}

type DatabaseConfig struct {
	URL         string `mapstructure:"database_url"`
	MaxConns    int32  `mapstructure:"db_max_conns"`
	MinConns    int32  `mapstructure:"db_min_conns"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type JWTConfig struct {
	Secret    string        `mapstructure:"jwt_secret"`
	ExpiresIn time.Duration `mapstructure:"jwt_expires_in"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"smtp_host"`
	Port     int    `mapstructure:"smtp_port"`
	User     string `mapstructure:"smtp_user"`
	Password string `mapstructure:"smtp_pass"`
	From     string `mapstructure:"smtp_from"`
}

// Enabled reports whether mail can be delivered over SMTP.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type RedisConfig struct {
	Addr             string        `mapstructure:"redis_addr"`
	Password         string        `mapstructure:"redis_password"`
	DB               int           `mapstructure:"redis_db"`
	CategoryCacheTTL time.Duration `mapstructure:"category_cache_ttl"`
}

type ShopConfig struct {
	CurrencyCode       string  `mapstructure:"currency"`
	PaymentSuccessRate float64 `mapstructure:"payment_success_rate"`
	SuperadminEmail    string  `mapstructure:"superadmin_email"`
	FrontendURL        string  `mapstructure:"frontend_url"`

	Currency currency.Unit `mapstructure:"-"`
}

var defaults = map[string]any{
	"app_env":               "development",
	"http_port":             3000,
	"allowed_origins":       []string{"http://localhost:4200"},
	"rate_limit_per_minute": 100,
	"rate_limit_burst":      50,

	"database_url": "",
	"db_max_conns": 10,
	"db_min_conns": 1,
	"auto_migrate": false,

	"jwt_secret":     "",
	"jwt_expires_in": 24 * time.Hour,

	"smtp_host": "",
	"smtp_port": 587,
	"smtp_user": "",
	"smtp_pass": "",
	"smtp_from": "",

	"redis_addr":         "",
	"redis_password":     "",
	"redis_db":           0,
	"category_cache_ttl": 5 * time.Minute,

	"currency":             "MXN",
	"payment_success_rate": 0.9,
	"superadmin_email":     "",
	"frontend_url":         "http://localhost:4200",
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !isNotExist(err) {
		return Config{}, fmt.Errorf("godotenv.Load: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWT.ExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN[%s] must be positive", c.JWT.ExpiresIn)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE[%d] must be >= 0", c.Server.RateLimitPerMinute)
	}
	// a zero burst bucket never admits a request
	if c.Server.RateLimitPerMinute > 0 && c.Server.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST[%d] must be >= 1 when rate limiting is enabled", c.Server.RateLimitBurst)
	}
	if c.Shop.PaymentSuccessRate < 0 || c.Shop.PaymentSuccessRate > 1 {
		return fmt.Errorf("PAYMENT_SUCCESS_RATE[%v] must be within [0, 1]", c.Shop.PaymentSuccessRate)
	}

	unit, err := currency.ParseISO(c.Shop.CurrencyCode)
	if err != nil {
		return fmt.Errorf("CURRENCY[%s] is not valid: %w", c.Shop.CurrencyCode, err)
	}
	c.Shop.Currency = unit

	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
