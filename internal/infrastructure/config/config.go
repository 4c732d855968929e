package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Suppliers SuppliersConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	TrustedProxies []string
}

// SuppliersConfig holds the per-supplier backend settings. A supplier whose
// required keys are empty is treated as not configured and its gateway is
// never registered; that is a normal state, not an error.
type SuppliersConfig struct {
	// CurrencyCode is the host default currency, shared by all suppliers
	// that cannot report one themselves
	CurrencyCode string
	// ProxyURL applies to all outbound supplier traffic
	ProxyURL string
	// TimeoutSeconds applies to all outbound supplier requests
	TimeoutSeconds int

	Mouser  MouserSettings
	DigiKey DigiKeySettings
	Farnell FarnellSettings
}

// MouserSettings holds the Mouser API keys and locale
type MouserSettings struct {
	SearchAPIKey string
	CartAPIKey   string
	BaseURL      string
	CountryCode  string
	Language     string
}

// Configured reports whether the required settings are present
func (s MouserSettings) Configured() bool {
	return s.SearchAPIKey != "" && s.CartAPIKey != ""
}

// DigiKeySettings holds the DigiKey OAuth2 client settings
type DigiKeySettings struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	RedirectURI  string
}

// Configured reports whether the required settings are present
func (s DigiKeySettings) Configured() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

// FarnellSettings holds the Farnell API key and store selection
type FarnellSettings struct {
	SearchAPIKey string
	BaseURL      string
	StoreID      string
}

// Configured reports whether the required settings are present
func (s FarnellSettings) Configured() bool {
	return s.SearchAPIKey != ""
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with SUPPLIER_ prefix (e.g., SUPPLIER_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("SUPPLIER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Build config struct
	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
			TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
		},
		Suppliers: SuppliersConfig{
			CurrencyCode:   v.GetString("suppliers.currency_code"),
			ProxyURL:       v.GetString("suppliers.proxy_url"),
			TimeoutSeconds: v.GetInt("suppliers.timeout_seconds"),
			Mouser: MouserSettings{
				SearchAPIKey: v.GetString("suppliers.mouser.search_api_key"),
				CartAPIKey:   v.GetString("suppliers.mouser.cart_api_key"),
				BaseURL:      v.GetString("suppliers.mouser.base_url"),
				CountryCode:  v.GetString("suppliers.mouser.country_code"),
				Language:     v.GetString("suppliers.mouser.language"),
			},
			DigiKey: DigiKeySettings{
				ClientID:     v.GetString("suppliers.digikey.client_id"),
				ClientSecret: v.GetString("suppliers.digikey.client_secret"),
				BaseURL:      v.GetString("suppliers.digikey.base_url"),
				RedirectURI:  v.GetString("suppliers.digikey.redirect_uri"),
			},
			Farnell: FarnellSettings{
				SearchAPIKey: v.GetString("suppliers.farnell.search_api_key"),
				BaseURL:      v.GetString("suppliers.farnell.base_url"),
				StoreID:      v.GetString("suppliers.farnell.store_id"),
			},
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "supplier-gateway"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "supplier_gateway"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.Suppliers.CurrencyCode == "" {
		cfg.Suppliers.CurrencyCode = "EUR"
	}
	if cfg.Suppliers.TimeoutSeconds == 0 {
		cfg.Suppliers.TimeoutSeconds = 15
	}
	if cfg.Suppliers.Mouser.CountryCode == "" {
		cfg.Suppliers.Mouser.CountryCode = "DE"
	}
	if cfg.Suppliers.Mouser.Language == "" {
		cfg.Suppliers.Mouser.Language = "English"
	}
	if cfg.Suppliers.Farnell.StoreID == "" {
		cfg.Suppliers.Farnell.StoreID = "de.farnell.com"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Suppliers.TimeoutSeconds < 0 {
		return fmt.Errorf("suppliers.timeout_seconds cannot be negative")
	}
	if c.Suppliers.ProxyURL != "" {
		if _, err := url.Parse(c.Suppliers.ProxyURL); err != nil {
			return fmt.Errorf("suppliers.proxy_url is not a valid URL: %w", err)
		}
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
