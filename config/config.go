package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	APIURL    string
	StorePath string
	Debug     bool
}

const defaultAPIURL = "http://localhost:8000/api/survey_api"

// Load reads the configuration from the environment, honoring a local
// .env file when present. Flag values override these afterwards.
func Load() (cfg Config) {
	_ = godotenv.Load()

	cfg.APIURL = os.Getenv("ENCUESTAS_API_URL")
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}

	cfg.StorePath = os.Getenv("ENCUESTAS_STORE")
	if cfg.StorePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.StorePath = filepath.Join(home, ".encuestas.sqlite")
	}

	cfg.Debug = os.Getenv("ENCUESTAS_DEBUG") == "1"
	return
}
