package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads a .env file into the process environment if present.
// A missing file is not an error.
func LoadEnvFile(path string) {
	_ = godotenv.Load(path)
}

// applyEnv overlays environment overrides onto a loaded configuration.
// Only a handful of deploy-time values are overridable this way.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SITE_BASE_URL"); v != "" {
		cfg.Identity.URL = v
	}
	if v := os.Getenv("SITE_AUTHOR"); v != "" {
		cfg.Identity.Author = v
	}
	if v := os.Getenv("SITE_EMAIL"); v != "" {
		cfg.Identity.Email = v
	}
	if v := os.Getenv("SITE_OUTPUT_DIR"); v != "" {
		cfg.Paths.Output = v
	}
	if v := os.Getenv("SITE_MINIFY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Build.Minify = b
		}
	}
	if v := os.Getenv("SITE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Build.Debug = b
		}
	}
}
