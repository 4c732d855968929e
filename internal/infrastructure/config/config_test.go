package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"SUPPLIER_APP_NAME":                        os.Getenv("SUPPLIER_APP_NAME"),
		"SUPPLIER_APP_ENV":                         os.Getenv("SUPPLIER_APP_ENV"),
		"SUPPLIER_APP_PORT":                        os.Getenv("SUPPLIER_APP_PORT"),
		"SUPPLIER_DATABASE_HOST":                   os.Getenv("SUPPLIER_DATABASE_HOST"),
		"SUPPLIER_DATABASE_PORT":                   os.Getenv("SUPPLIER_DATABASE_PORT"),
		"SUPPLIER_DATABASE_USER":                   os.Getenv("SUPPLIER_DATABASE_USER"),
		"SUPPLIER_DATABASE_PASSWORD":               os.Getenv("SUPPLIER_DATABASE_PASSWORD"),
		"SUPPLIER_DATABASE_DBNAME":                 os.Getenv("SUPPLIER_DATABASE_DBNAME"),
		"SUPPLIER_DATABASE_SSLMODE":                os.Getenv("SUPPLIER_DATABASE_SSLMODE"),
		"SUPPLIER_DATABASE_MAX_OPEN_CONNS":         os.Getenv("SUPPLIER_DATABASE_MAX_OPEN_CONNS"),
		"SUPPLIER_DATABASE_MAX_IDLE_CONNS":         os.Getenv("SUPPLIER_DATABASE_MAX_IDLE_CONNS"),
		"SUPPLIER_SUPPLIERS_CURRENCY_CODE":         os.Getenv("SUPPLIER_SUPPLIERS_CURRENCY_CODE"),
		"SUPPLIER_SUPPLIERS_MOUSER_SEARCH_API_KEY": os.Getenv("SUPPLIER_SUPPLIERS_MOUSER_SEARCH_API_KEY"),
		"SUPPLIER_SUPPLIERS_MOUSER_CART_API_KEY":   os.Getenv("SUPPLIER_SUPPLIERS_MOUSER_CART_API_KEY"),
		"SUPPLIER_SUPPLIERS_DIGIKEY_CLIENT_ID":     os.Getenv("SUPPLIER_SUPPLIERS_DIGIKEY_CLIENT_ID"),
		"SUPPLIER_SUPPLIERS_DIGIKEY_CLIENT_SECRET": os.Getenv("SUPPLIER_SUPPLIERS_DIGIKEY_CLIENT_SECRET"),
		"SUPPLIER_SUPPLIERS_FARNELL_SEARCH_API_KEY": os.Getenv("SUPPLIER_SUPPLIERS_FARNELL_SEARCH_API_KEY"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "supplier-gateway", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "supplier_gateway", cfg.Database.DBName)
		assert.Equal(t, "EUR", cfg.Suppliers.CurrencyCode)
		assert.Equal(t, 15, cfg.Suppliers.TimeoutSeconds)
		assert.Equal(t, "DE", cfg.Suppliers.Mouser.CountryCode)
		assert.Equal(t, "de.farnell.com", cfg.Suppliers.Farnell.StoreID)
	})

	t.Run("loads values from environment variables with SUPPLIER prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("SUPPLIER_APP_PORT", "9000")
		os.Setenv("SUPPLIER_DATABASE_HOST", "testdb.local")
		os.Setenv("SUPPLIER_SUPPLIERS_CURRENCY_CODE", "USD")
		os.Setenv("SUPPLIER_SUPPLIERS_MOUSER_SEARCH_API_KEY", "sk")
		os.Setenv("SUPPLIER_SUPPLIERS_MOUSER_CART_API_KEY", "ck")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, "USD", cfg.Suppliers.CurrencyCode)
		assert.True(t, cfg.Suppliers.Mouser.Configured())
	})

	t.Run("missing supplier keys mean not configured, not an error", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.False(t, cfg.Suppliers.Mouser.Configured())
		assert.False(t, cfg.Suppliers.DigiKey.Configured())
		assert.False(t, cfg.Suppliers.Farnell.Configured())
	})

	t.Run("mouser needs both API keys", func(t *testing.T) {
		clearEnv()
		os.Setenv("SUPPLIER_SUPPLIERS_MOUSER_SEARCH_API_KEY", "sk")

		cfg, err := Load()
		require.NoError(t, err)
		assert.False(t, cfg.Suppliers.Mouser.Configured())
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("SUPPLIER_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("SUPPLIER_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"SUPPLIER_APP_ENV":           os.Getenv("SUPPLIER_APP_ENV"),
		"SUPPLIER_DATABASE_PASSWORD": os.Getenv("SUPPLIER_DATABASE_PASSWORD"),
		"SUPPLIER_DATABASE_SSLMODE":  os.Getenv("SUPPLIER_DATABASE_SSLMODE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("SUPPLIER_APP_ENV", "production")
		os.Setenv("SUPPLIER_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("SUPPLIER_APP_ENV", "production")
		os.Setenv("SUPPLIER_DATABASE_PASSWORD", "secure-password")
		os.Setenv("SUPPLIER_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("SUPPLIER_APP_ENV", "production")
		os.Setenv("SUPPLIER_DATABASE_PASSWORD", "secure-password")
		os.Setenv("SUPPLIER_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		// URL-encoded password should be in the DSN
		assert.Contains(t, dsn, "pass%40word%23123")
	})
}
