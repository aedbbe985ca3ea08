package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: 9000
database:
  host: db.internal
  name: azfi
admin:
  jwt_secret: from-file
  site_header: Clinic Admin
smtp:
  host: smtp.example.com
  staff_recipients:
    - front-desk@example.com
`

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(sampleYAML), 0o600))
	return dir
}

func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "Clinic Admin", cfg.Admin.SiteHeader)
	assert.Equal(t, "AZFI Aesthetics Admin Portal", cfg.Admin.SiteTitle)
	assert.Equal(t, 24, cfg.Admin.TokenTTLHours)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, "host=db.internal port=5432 user=postgres password= dbname=azfi sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("CLINIC_SERVER_PORT", "8081")
	t.Setenv("CLINIC_ADMIN_JWT_SECRET", "from-env")
	t.Setenv("CLINIC_RATE_LIMIT_REQUESTS_PER_MINUTE", "30")
	t.Setenv("CLINIC_DATABASE_MAX_OPEN_CONNS", "3")

	cfg, err := LoadConfig(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Admin.JWTSecret)
	assert.Equal(t, 30.0, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, 3, cfg.Database.MaxOpenConns)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin.jwt_secret is required")
}
