package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"api_base_url": "https://example.com/api/v2",
		"database_url": "postgres://localhost/jobhub",
		"page_size": 24,
		"strict_schema": true
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/api/v2", cfg.APIBaseURL)
	assert.Equal(t, "postgres://localhost/jobhub", cfg.DatabaseURL)
	assert.Equal(t, 24, cfg.PageSize)
	assert.True(t, cfg.StrictSchemaEnabled())
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_PageSize(t *testing.T) {
	cfg := &Config{PageSize: 13}
	assert.Error(t, cfg.Validate())

	for _, size := range PageSizeOptions {
		cfg := &Config{PageSize: size}
		assert.NoError(t, cfg.Validate())
	}

	// Zero means "use default" and is always valid.
	cfg = &Config{}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_NegativeRefreshInterval(t *testing.T) {
	cfg := &Config{RefreshInterval: -1}
	assert.Error(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{
		DatabaseURL: "postgres://localhost/override",
	}
	defaults := Config{
		APIBaseURL:      "https://example.com/api",
		DatabaseURL:     "postgres://localhost/base",
		RefreshInterval: 12,
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "postgres://localhost/override", merged.DatabaseURL)
	assert.Equal(t, "https://example.com/api", merged.APIBaseURL)
	assert.Equal(t, 12, merged.RefreshInterval)
	assert.Equal(t, DefaultPageSize, merged.PageSize)
}

func TestMergeWithDefaults_BuiltIns(t *testing.T) {
	merged := (&Config{}).MergeWithDefaults(Config{})

	assert.Equal(t, DefaultAPIBaseURL, merged.APIBaseURL)
	assert.Equal(t, DefaultPageSize, merged.PageSize)
	assert.Equal(t, DefaultRefreshInterval, merged.RefreshInterval)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("JOBHUB_API_BASE_URL", "https://env.example.com")
	t.Setenv("JOBHUB_PAGE_SIZE", "48")
	t.Setenv("JOBHUB_STRICT_SCHEMA", "true")

	cfg := FromEnv()
	assert.Equal(t, "https://env.example.com", cfg.APIBaseURL)
	assert.Equal(t, 48, cfg.PageSize)
	assert.True(t, cfg.StrictSchemaEnabled())
}

func TestMergeWithDefaults_StrictSchemaFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"strict_schema": true}`), 0o644))

	fileCfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Mirror the CLI layering: env values over file values. With no env
	// override the file flag must survive the merge.
	t.Setenv("JOBHUB_STRICT_SCHEMA", "")
	envCfg := FromEnv()
	merged := envCfg.MergeWithDefaults(*fileCfg)
	assert.True(t, merged.StrictSchemaEnabled())

	// An explicit env value still wins over the file.
	t.Setenv("JOBHUB_STRICT_SCHEMA", "false")
	envCfg = FromEnv()
	merged = envCfg.MergeWithDefaults(*fileCfg)
	assert.False(t, merged.StrictSchemaEnabled())
}

func TestStrictSchemaEnabled_DefaultsOff(t *testing.T) {
	cfg := (&Config{}).MergeWithDefaults(Config{})
	assert.False(t, cfg.StrictSchemaEnabled())
}
