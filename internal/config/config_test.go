package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ndasearch/internal/normalize"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("RESULT_PAGE_SIZE", "")
	t.Setenv("OPENCORPORATES_JURISDICTIONS", "")
	t.Setenv("TRUST_PROXY_HEADERS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 12, cfg.PageSize)
	assert.Equal(t, 12*time.Second, cfg.SourceTimeout)
	assert.True(t, cfg.Sources.Estonia.IsEnabled())
	assert.Empty(t, cfg.OpenCorporatesJurisdictions)
	assert.False(t, cfg.TrustProxyHeaders)
}

func TestLoadTrustProxyHeaders(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("TRUST_PROXY_HEADERS", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.TrustProxyHeaders)

	t.Setenv("TRUST_PROXY_HEADERS", "not-a-bool")
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.TrustProxyHeaders)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
page_size: 15
source_timeout: 9s
opencorporates_jurisdictions: [us_de]
sources:
  estonia:
    enabled: false
    timeout: 3s
normalize:
  jurisdictions:
    gb_wls: GB-WLS
  statuses:
    ariregister:
      P: Bankrupt
`), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("RESULT_PAGE_SIZE", "")
	t.Setenv("OPENCORPORATES_JURISDICTIONS", "us_de, ae_du ,")
	t.Setenv("COMPANIES_HOUSE_API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.PageSize)
	assert.Equal(t, 9*time.Second, cfg.SourceTimeout)
	assert.False(t, cfg.Sources.Estonia.IsEnabled())
	assert.Equal(t, 3*time.Second, cfg.Sources.Estonia.Timeout)
	assert.Equal(t, []string{"us_de", "ae_du"}, cfg.OpenCorporatesJurisdictions)
	assert.Equal(t, "secret", cfg.CompaniesHouseAPIKey)

	n := normalize.New(cfg.Normalize.Tables())
	assert.Equal(t, "GB-WLS", n.Jurisdiction("gb_wls"))
	assert.Equal(t, "Bankrupt", n.Status(normalize.RegistryAriregister, "P"))
	assert.Equal(t, "Registered", n.Status(normalize.RegistryAriregister, "R"))
}

func TestLoadRejectsBadPageSize(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("RESULT_PAGE_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)
}
