package config

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultStoryModel = "gpt-4o-mini"
	defaultImageModel = "dall-e-3"
)

// Config holds credentials and model selection for the two remote services.
type Config struct {
	StoryAPIKey string `json:"story_api_key,omitempty"`
	StoryModel  string `json:"story_model,omitempty"`

	ImageAPIKey  string `json:"image_api_key,omitempty"`
	ImageModel   string `json:"image_model,omitempty"`
	ImageBaseURL string `json:"image_base_url,omitempty"`

	ServerAddr string `json:"server_addr,omitempty"`
	FontPath   string `json:"font_path,omitempty"`
}

// Load reads JSON config from disk and fills missing secrets from the
// environment (a .env file next to the binary is honored). A missing config
// file is not an error as long as the environment provides both keys.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist):
		// env-only setup
	default:
		return Config{}, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if c.StoryAPIKey == "" {
		c.StoryAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.ImageAPIKey == "" {
		c.ImageAPIKey = os.Getenv("GAPGPT_API_KEY")
	}
	if c.ImageBaseURL == "" {
		c.ImageBaseURL = os.Getenv("GAPGPT_BASE_URL")
	}
}

func (c *Config) applyDefaults() {
	if c.StoryModel == "" {
		c.StoryModel = defaultStoryModel
	}
	if c.ImageModel == "" {
		c.ImageModel = defaultImageModel
	}
}

// Validate is the pre-flight check; both secrets must be present before any
// request is attempted.
func (c Config) Validate() error {
	if c.StoryAPIKey == "" {
		return errors.New("story api key missing; set story_api_key in config or OPENAI_API_KEY in env")
	}
	if c.ImageAPIKey == "" {
		return errors.New("image api key missing; set image_api_key in config or GAPGPT_API_KEY in env")
	}
	return nil
}
