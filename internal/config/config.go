package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

var (
	ErrAPIURLMissing  = errors.New("environment variable API_URL must be set")
	ErrSecretMissing  = errors.New("environment variable AUTH_JWT_SECRET must be set")
	ErrInvalidSetting = errors.New("invalid configuration value")
)

// Environment holds the raw settings as read from the environment.
type Environment struct {
	Port             int    `mapstructure:"PORT"`
	APIURL           string `mapstructure:"API_URL"`
	GinMode          string `mapstructure:"GIN_MODE"`
	LogFormat        string `mapstructure:"LOG_FORMAT"`
	DBPath           string `mapstructure:"DB_PATH"`
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	AuthJWTSecret    string `mapstructure:"AUTH_JWT_SECRET"`
	AuthIssuer       string `mapstructure:"AUTH_ISSUER"`
	AuthAudience     string `mapstructure:"AUTH_AUDIENCE"`
	CORSAllowOrigins string `mapstructure:"CORS_ALLOW_ORIGINS"`
	EnablePprof      bool   `mapstructure:"ENABLE_PPROF"`
	AMQPURL          string `mapstructure:"AMQP_URL"`
	AMQPExchange     string `mapstructure:"AMQP_EXCHANGE"`
	Currency         string `mapstructure:"CURRENCY"`
	Locale           string `mapstructure:"LOCALE"`
	DividendRate     string `mapstructure:"DIVIDEND_RATE"`
}

// Config is the validated configuration of the backend.
type Config struct {
	Environment

	// BaseURL is the parsed API_URL without a trailing slash
	BaseURL *url.URL

	// AllowOrigins lists the origins allowed for CORS requests. Empty disables CORS.
	AllowOrigins []string

	// Rate is the parsed DIVIDEND_RATE
	Rate decimal.Decimal
}

var defaults = map[string]any{
	"PORT":               8080,
	"API_URL":            "",
	"GIN_MODE":           "release",
	"LOG_FORMAT":         "",
	"DB_PATH":            "data/grovesmith.db",
	"DATABASE_URL":       "",
	"AUTH_JWT_SECRET":    "",
	"AUTH_ISSUER":        "",
	"AUTH_AUDIENCE":      "",
	"CORS_ALLOW_ORIGINS": "",
	"ENABLE_PPROF":       false,
	"AMQP_URL":           "",
	"AMQP_EXCHANGE":      "grovesmith.events",
	"CURRENCY":           "USD",
	"LOCALE":             "en-US",
	"DIVIDEND_RATE":      "0.05",
}

// Load reads the configuration from the environment. Variables from a .env
// file in the working directory are added if the file exists, without
// overriding variables that are already set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("could not read .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var env Environment
	if err := v.Unmarshal(&env); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidSetting, err)
	}

	return env.validate()
}

func (env Environment) validate() (Config, error) {
	if env.APIURL == "" {
		return Config{}, ErrAPIURLMissing
	}

	baseURL, err := url.Parse(strings.TrimSuffix(env.APIURL, "/"))
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return Config{}, fmt.Errorf("%w: API_URL %q is not an absolute URL", ErrInvalidSetting, env.APIURL)
	}

	if env.AuthJWTSecret == "" {
		return Config{}, ErrSecretMissing
	}

	rate, err := decimal.NewFromString(env.DividendRate)
	if err != nil || rate.IsNegative() {
		return Config{}, fmt.Errorf("%w: DIVIDEND_RATE %q must be a non-negative number", ErrInvalidSetting, env.DividendRate)
	}

	if env.GinMode != "debug" && env.GinMode != "release" && env.GinMode != "test" {
		return Config{}, fmt.Errorf("%w: GIN_MODE %q must be one of debug, release or test", ErrInvalidSetting, env.GinMode)
	}

	if env.Port <= 0 || env.Port > 65535 {
		return Config{}, fmt.Errorf("%w: PORT %d is out of range", ErrInvalidSetting, env.Port)
	}

	return Config{
		Environment:  env,
		BaseURL:      baseURL,
		AllowOrigins: strings.Fields(env.CORSAllowOrigins),
		Rate:         rate,
	}, nil
}
