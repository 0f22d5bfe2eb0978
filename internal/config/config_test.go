package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "sicfor", cfg.Database.DBName)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, "uploads", cfg.Storage.UploadDir)
	assert.Equal(t, "sicfor", cfg.Media.BaseFolder)
	assert.Equal(t, "*", cfg.CORS.AllowedOrigins)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	content := `
server:
  port: "8080"
  mode: production
database:
  host: db.internal
  dbname: estudiantes
  max_open_conns: 5
logging:
  level: debug
  format: text
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "estudiantes", cfg.Database.DBName)
	assert.Equal(t, 5, cfg.Database.MaxOpenConns)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched keys keep their defaults
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("DB_HOST", "env-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "3")
	t.Setenv("CORS_ORIGIN", "https://app.example.com")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 3, cfg.Database.MaxOpenConns)
	assert.Equal(t, "https://app.example.com", cfg.CORS.AllowedOrigins)
}

func TestLoadConfigRejectsPartialMediaBlock(t *testing.T) {
	t.Setenv("MEDIA_ENDPOINT", "localhost:9000")
	t.Setenv("MEDIA_ACCESS_KEY", "key")
	// secret key missing

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "media endpoint configured")
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "app"
	cfg.Database.Password = "secret"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "sicfor"

	assert.Equal(t,
		"postgres://app:secret@db:5433/sicfor?sslmode=disable",
		cfg.GetPostgresConnectionString())
}

func TestAllowedOrigins(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "wildcard", raw: "*", expected: []string{"*"}},
		{name: "empty means wildcard", raw: "", expected: []string{"*"}},
		{name: "single origin", raw: "https://a.example.com", expected: []string{"https://a.example.com"}},
		{
			name:     "comma list with spaces",
			raw:      "https://a.example.com, https://b.example.com ,",
			expected: []string{"https://a.example.com", "https://b.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.CORS.AllowedOrigins = tt.raw
			assert.Equal(t, tt.expected, cfg.AllowedOrigins())
		})
	}
}
