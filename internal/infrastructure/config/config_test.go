package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080},
		Storage:  StorageConfig{Backend: "postgres"},
		Database: DatabaseConfig{Host: "localhost", Name: "pruefungsplaner"},
		Calendar: CalendarConfig{FirstWeekday: "sunday", WindowDays: 30},
		JWT:      JWTConfig{Secret: "a-real-secret"},
	}
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, validateConfig(validTestConfig()))

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing db host", mutate: func(c *Config) { c.Database.Host = "" }},
		{name: "missing db name", mutate: func(c *Config) { c.Database.Name = "" }},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "redis" }},
		{name: "file backend without path", mutate: func(c *Config) { c.Storage.Backend = "file"; c.Storage.File = "" }},
		{name: "default jwt secret", mutate: func(c *Config) { c.JWT.Secret = "change-me" }},
		{name: "empty jwt secret", mutate: func(c *Config) { c.JWT.Secret = "" }},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "bad weekday", mutate: func(c *Config) { c.Calendar.FirstWeekday = "wednesday" }},
		{name: "window below -1", mutate: func(c *Config) { c.Calendar.WindowDays = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func TestValidateConfigFileBackend(t *testing.T) {
	cfg := validTestConfig()
	cfg.Storage.Backend = "file"
	cfg.Storage.File = "data/exams.json"
	assert.NoError(t, validateConfig(cfg))
}

func TestParseFirstWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Weekday
		wantErr bool
	}{
		{input: "sunday", want: time.Sunday},
		{input: "Sunday", want: time.Sunday},
		{input: "monday", want: time.Monday},
		{input: "MONDAY", want: time.Monday},
		{input: "", want: time.Sunday},
		{input: "saturday", wantErr: true},
	}

	for _, tt := range tests {
		cfg := CalendarConfig{FirstWeekday: tt.input}
		got, err := cfg.ParseFirstWeekday()
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestUnboundedWindowIsValid(t *testing.T) {
	cfg := validTestConfig()
	cfg.Calendar.WindowDays = -1
	assert.NoError(t, validateConfig(cfg))
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db.internal", Port: 5432, User: "app", Password: "pw",
		Name: "pruefungsplaner", SSLMode: "require",
	}
	assert.Equal(t,
		"host=db.internal port=5432 user=app password=pw dbname=pruefungsplaner sslmode=require",
		cfg.GetDSN())
}
