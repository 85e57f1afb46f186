package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:               "8080",
		Env:                "development",
		DBDriver:           "postgres",
		DBSSLMode:          "disable",
		DBSchemaMode:       "auto",
		JWTSecret:          "secure-secret-at-least-32-chars-long",
		DBPassword:         "secure-password",
		AnalyticsTimezone:  "UTC",
		TracingSampleRatio: 1,
	}
}

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with disable SSL mode", "prod", "disable", true},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = tt.env
			c.DBSSLMode = tt.sslMode

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing port", func(c *Config) { c.Port = "" }, "PORT is required"},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, `unsupported DB_DRIVER "mysql"`},
		{"unknown schema mode", func(c *Config) { c.DBSchemaMode = "hybrid" }, `unsupported DB_SCHEMA_MODE "hybrid"`},
		{"sql schema on sqlite", func(c *Config) {
			c.DBDriver = "sqlite"
			c.DBSchemaMode = "sql"
		}, "DB_SCHEMA_MODE=sql requires DB_DRIVER=postgres"},
		{"bad timezone", func(c *Config) { c.AnalyticsTimezone = "Mars/Olympus" }, "ANALYTICS_TIMEZONE"},
		{"sample ratio above one", func(c *Config) { c.TracingSampleRatio = 1.5 }, "TRACING_SAMPLE_RATIO"},
		{"default secret in production", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
			c.JWTSecret = defaultJWTSecret
		}, "JWT_SECRET must be changed"},
		{"short secret in production", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
			c.JWTSecret = "short"
		}, "at least 32 characters"},
		{"default db password in production", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
			c.DBPassword = "password"
		}, "DB_PASSWORD"},
		{"sqlite in production skips postgres checks", func(c *Config) {
			c.Env = "production"
			c.DBDriver = "sqlite"
			c.DBSSLMode = ""
			c.DBPassword = ""
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfig_AnalyticsLocation(t *testing.T) {
	c := validConfig()
	c.AnalyticsTimezone = ""
	loc, err := c.AnalyticsLocation()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	c.AnalyticsTimezone = "Europe/Berlin"
	loc, err = c.AnalyticsLocation()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestConfig_JWTTTL(t *testing.T) {
	c := validConfig()
	assert.Equal(t, 7*24*time.Hour, c.JWTTTL())

	c.JWTTTLHours = 2
	assert.Equal(t, 2*time.Hour, c.JWTTTL())
}

func TestLoadConfig_Normalization(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_SSLMODE", "  DISABLE  ")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_SCHEMA_MODE", "AUTO")
	t.Setenv("JWT_SECRET", "secure-secret-at-least-32-chars-long")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "test", c.Env)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "auto", c.DBSchemaMode)
	assert.Equal(t, "UTC", c.AnalyticsTimezone)
}
