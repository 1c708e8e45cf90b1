package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"oneof=development production test"`

	Server struct {
		Port            string        `yaml:"port" default:"8080" validate:"required,numeric"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"45s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	} `yaml:"log"`

	Cache Cache `yaml:"cache"`

	Database Database `yaml:"database"`

	Providers Providers `yaml:"providers"`

	Nisab struct {
		// lower | gold | silver
		ThresholdPolicy string `yaml:"threshold_policy" default:"lower" validate:"oneof=lower gold silver"`
		// gross | net
		WealthBasis string `yaml:"wealth_basis" default:"gross" validate:"oneof=gross net"`
	} `yaml:"nisab"`

	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
}

type Cache struct {
	// memory | redis | layered | database
	Backend         string        `yaml:"backend" default:"memory" validate:"oneof=memory redis layered database"`
	TTL             time.Duration `yaml:"ttl" default:"1h" validate:"gt=0"`
	EmergencyMaxAge time.Duration `yaml:"emergency_max_age" default:"24h" validate:"gtfield=TTL"`
	MemoryMaxSize   int           `yaml:"memory_max_size" default:"1000" validate:"gt=0"`
	Redis           struct {
		Addr     string `yaml:"addr" default:"localhost:6379"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix" default:"zakat"`
	} `yaml:"redis"`
}

type Database struct {
	// postgres | sqlite
	Driver     string `yaml:"driver" default:"sqlite" validate:"oneof=postgres sqlite"`
	Host       string `yaml:"host" default:"localhost"`
	Port       string `yaml:"port" default:"5433"`
	User       string `yaml:"user" default:"zakat_user"`
	Password   string `yaml:"password" default:"zakat_password"`
	Name       string `yaml:"name" default:"zakat"`
	SSLMode    string `yaml:"ssl_mode" default:"disable"`
	SQLitePath string `yaml:"sqlite_path" default:"zakat.db"`
}

type Providers struct {
	Timeout          time.Duration `yaml:"timeout" default:"10s" validate:"gt=0"`
	ChainTimeout     time.Duration `yaml:"chain_timeout" default:"30s" validate:"gtfield=Timeout"`
	FailureThreshold int           `yaml:"failure_threshold" default:"3" validate:"gte=1"`
	Cooldown         time.Duration `yaml:"cooldown" default:"5m"`
	MonthlyBudget    int           `yaml:"monthly_budget" default:"100" validate:"gte=0"`

	MetalPriceAPIKey   string `yaml:"metalpriceapi_key"`
	ExchangeRateAPIKey string `yaml:"exchangerate_api_key"`

	// Generic JSON providers for metal prices, tried after metalpriceapi.
	Generic []GenericProvider `yaml:"generic" validate:"dive"`
}

// GenericProvider describes a JSON endpoint whose price is found at ResponsePath.
// Endpoint, header values and the path accept {metal}, {symbol},
// {currency}, {currency_lower} and ${ENV_VAR} placeholders.
type GenericProvider struct {
	Name         string            `yaml:"name" validate:"required"`
	Endpoint     string            `yaml:"endpoint" validate:"required,url"`
	ResponsePath string            `yaml:"response_path" default:"price"`
	Unit         string            `yaml:"unit" default:"gram" validate:"oneof=gram troy_ounce tola"`
	Headers      map[string]string `yaml:"headers"`
	Paid         bool              `yaml:"paid"`
	Symbols      map[string]string `yaml:"symbols"`
}

func defaultGenericProviders() []GenericProvider {
	return []GenericProvider{{
		Name:         "goldapi",
		Endpoint:     "https://www.goldapi.io/api/{symbol}/{currency}",
		ResponsePath: "price_gram_24k",
		Unit:         "gram",
		Headers:      map[string]string{"x-access-token": "${GOLDAPI_KEY}"},
		Paid:         true,
		Symbols:      map[string]string{"gold": "XAU", "silver": "XAG"},
	}}
}

var validate = validator.New()

// Load reads the optional YAML file at path, fills defaults, applies .env and
// environment overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if c.Providers.Generic == nil {
		c.Providers.Generic = defaultGenericProviders()
	}
	for i := range c.Providers.Generic {
		if err := defaults.Set(&c.Providers.Generic[i]); err != nil {
			return nil, fmt.Errorf("apply provider defaults: %w", err)
		}
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

func (c *Config) applyEnv() {
	if v := firstEnv("APP_ENV"); v != "" {
		c.Environment = v
	}
	if v := firstEnv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := firstEnv("SERVER_PORT", "PORT"); v != "" {
		c.Server.Port = v
	}
	if v := firstEnv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := firstEnv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := firstEnv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := firstEnv("DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := firstEnv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := firstEnv("DB_PORT"); v != "" {
		c.Database.Port = v
	}
	if v := firstEnv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := firstEnv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := firstEnv("DB_NAME"); v != "" {
		c.Database.Name = v
	}
	if v := firstEnv("DB_SSL_MODE"); v != "" {
		c.Database.SSLMode = v
	}
	if v := firstEnv("METALPRICEAPI_KEY", "METAL_PRICE_API_KEY"); v != "" {
		c.Providers.MetalPriceAPIKey = v
	}
	if v := firstEnv("EXCHANGERATE_API_KEY"); v != "" {
		c.Providers.ExchangeRateAPIKey = v
	}
	if v := firstEnv("MONTHLY_API_BUDGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Providers.MonthlyBudget = n
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
