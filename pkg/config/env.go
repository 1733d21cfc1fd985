package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/devicelab-dev/flowdigest/pkg/core"
	"github.com/joho/godotenv"
)

// EnvAPIKey is the environment variable holding the service credentials.
const EnvAPIKey = "OPENAI_API_KEY"

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env")
// into the process environment. Variables already set win, and missing
// files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return core.ErrInvalidConfig.WithMessage("invalid env file " + p).WithCause(err)
		}
	}
	return nil
}

// APIKey returns the service API key or ErrMissingAPIKey.
func APIKey() (string, error) {
	key := strings.TrimSpace(os.Getenv(EnvAPIKey))
	if key == "" {
		return "", core.ErrMissingAPIKey
	}
	return key, nil
}
