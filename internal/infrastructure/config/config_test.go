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
		"HOTEL_APP_NAME":                os.Getenv("HOTEL_APP_NAME"),
		"HOTEL_APP_ENV":                 os.Getenv("HOTEL_APP_ENV"),
		"HOTEL_APP_PORT":                os.Getenv("HOTEL_APP_PORT"),
		"HOTEL_DATABASE_HOST":           os.Getenv("HOTEL_DATABASE_HOST"),
		"HOTEL_DATABASE_PORT":           os.Getenv("HOTEL_DATABASE_PORT"),
		"HOTEL_DATABASE_USER":           os.Getenv("HOTEL_DATABASE_USER"),
		"HOTEL_DATABASE_PASSWORD":       os.Getenv("HOTEL_DATABASE_PASSWORD"),
		"HOTEL_DATABASE_DBNAME":         os.Getenv("HOTEL_DATABASE_DBNAME"),
		"HOTEL_DATABASE_SSLMODE":        os.Getenv("HOTEL_DATABASE_SSLMODE"),
		"HOTEL_DATABASE_MAX_OPEN_CONNS": os.Getenv("HOTEL_DATABASE_MAX_OPEN_CONNS"),
		"HOTEL_DATABASE_MAX_IDLE_CONNS": os.Getenv("HOTEL_DATABASE_MAX_IDLE_CONNS"),
		"HOTEL_JWT_SECRET":              os.Getenv("HOTEL_JWT_SECRET"),
		"HOTEL_INVOICE_STORAGE_BACKEND": os.Getenv("HOTEL_INVOICE_STORAGE_BACKEND"),
		"HOTEL_INVOICE_S3_BUCKET":       os.Getenv("HOTEL_INVOICE_S3_BUCKET"),
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

		assert.Equal(t, "hoteldesk-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "hoteldesk", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Auth.MaxFailedAttempts)
		assert.Equal(t, "filesystem", cfg.Invoice.StorageBackend)
	})

	t.Run("loads values from environment variables with HOTEL prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("HOTEL_APP_NAME", "test-app")
		os.Setenv("HOTEL_APP_PORT", "9000")
		os.Setenv("HOTEL_DATABASE_HOST", "testdb.local")
		os.Setenv("HOTEL_DATABASE_PORT", "5433")
		os.Setenv("HOTEL_DATABASE_USER", "testuser")
		os.Setenv("HOTEL_DATABASE_PASSWORD", "testpass")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
	})

	t.Run("rejects s3 backend without bucket", func(t *testing.T) {
		clearEnv()
		os.Setenv("HOTEL_INVOICE_STORAGE_BACKEND", "s3")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "s3_bucket")
	})

	t.Run("rejects unknown storage backend", func(t *testing.T) {
		clearEnv()
		os.Setenv("HOTEL_INVOICE_STORAGE_BACKEND", "ftp")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage_backend")
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("HOTEL_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production rejects short jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("HOTEL_APP_ENV", "production")
		os.Setenv("HOTEL_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "32 characters")
	})

	t.Run("production rejects sslmode disable", func(t *testing.T) {
		clearEnv()
		os.Setenv("HOTEL_APP_ENV", "production")
		os.Setenv("HOTEL_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("HOTEL_DATABASE_PASSWORD", "secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5432,
		User:     "frontdesk",
		Password: "p@ss/word",
		DBName:   "hoteldesk",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.example.com:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}
