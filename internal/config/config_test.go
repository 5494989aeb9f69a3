package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		jwtSecret   string
		dbPassword  string
		expectError bool
	}{
		{"Production with default JWT secret", "production", "your-secret-key-change-in-production", "secure-password", true},
		{"Production with short JWT secret", "production", "too-short", "secure-password", true},
		{"Production with default DB password", "prod", "secure-secret-at-least-32-chars-long", "password", true},
		{"Production with strong credentials", "production", "secure-secret-at-least-32-chars-long", "secure-password", false},
		{"Development with default JWT secret", "development", "your-secret-key-change-in-production", "password", false},
		{"Test env with short secret", "test", "short", "password", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Env:        tt.env,
				JWTSecret:  tt.jwtSecret,
				DBPassword: tt.dbPassword,
				Port:       "8480",
			}

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateRequiredFields(t *testing.T) {
	c := &Config{JWTSecret: "secret"}
	assert.Error(t, c.Validate(), "missing PORT should fail validation")

	c = &Config{Port: "8480"}
	assert.Error(t, c.Validate(), "missing JWT_SECRET should fail validation")
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()
	defer os.Unsetenv("APP_ENV")

	os.Setenv("APP_ENV", "development")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "8480", c.Port)
	assert.Equal(t, "glimpse", c.DBName)
	assert.Equal(t, "/media", c.MediaBaseURL)
	assert.Equal(t, "hybrid", c.DBSchemaMode)
	assert.False(t, c.TracingEnabled)
	assert.Equal(t, "stdout", c.TracingExporter)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	defer viper.Reset()
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("PORT")
	defer os.Unsetenv("JWT_ISSUER")

	os.Setenv("APP_ENV", "development")
	os.Setenv("PORT", "9090")
	os.Setenv("JWT_ISSUER", "https://auth.example.com/")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, "https://auth.example.com/", c.JWTIssuer)
}
