package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, "storage:\n  type: minio\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 10*time.Second, cfg.Analysis.Timeout())
	assert.Equal(t, 30*time.Minute, cfg.Analysis.CacheTTL())
	assert.Equal(t, 600, cfg.RateLimit.MaxRequests)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, "storage:\n  type: minio\njwt:\n  secret: from-file\n")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("ADMIN_LOGIN_ID", "root")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "root", cfg.Admin.LoginID)
}

func TestLoadConfigReleaseRequiresStrongSecret(t *testing.T) {
	dir := writeConfig(t, "server:\n  mode: release\nstorage:\n  type: minio\njwt:\n  secret: short\n")

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestAnalysisConfigDurations(t *testing.T) {
	assert.Equal(t, 10*time.Second, AnalysisConfig{}.Timeout())
	assert.Equal(t, 3*time.Second, AnalysisConfig{TimeoutSeconds: 3}.Timeout())
	assert.Equal(t, time.Duration(0), AnalysisConfig{CacheTTLMinutes: 0}.CacheTTL())
	assert.Equal(t, 5*time.Minute, AnalysisConfig{CacheTTLMinutes: 5}.CacheTTL())
}
