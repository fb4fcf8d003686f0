package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GAPGPT_API_KEY", "")
	t.Setenv("GAPGPT_BASE_URL", "")
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"story_api_key": "sk-story",
		"image_api_key": "sk-image",
		"image_base_url": "https://api.gapgpt.app/v1",
		"server_addr": ":9090"
	}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-story", cfg.StoryAPIKey)
	assert.Equal(t, "sk-image", cfg.ImageAPIKey)
	assert.Equal(t, "https://api.gapgpt.app/v1", cfg.ImageBaseURL)
	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, defaultStoryModel, cfg.StoryModel)
	assert.Equal(t, defaultImageModel, cfg.ImageModel)
}

func TestLoadEnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env-story")
	t.Setenv("GAPGPT_API_KEY", "sk-env-image")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, "sk-env-story", cfg.StoryAPIKey)
	assert.Equal(t, "sk-env-image", cfg.ImageAPIKey)
}

func TestLoadFileOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("GAPGPT_API_KEY", "sk-env")

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"story_api_key": "sk-file", "image_api_key": "sk-file"}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-file", cfg.StoryAPIKey)
}

func TestLoadMissingSecretsIsFatal(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "story api key")

	t.Setenv("OPENAI_API_KEY", "sk-story")
	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image api key")
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
