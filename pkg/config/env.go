package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LookupFunc resolves an environment variable by name.
type LookupFunc func(key string) (string, bool)

// Lookup returns a LookupFunc over the process environment, falling back to
// the variables defined in the dotenv file at configDir/env. The process
// environment wins so a shell export always overrides the file.
func Lookup(configDir string) (LookupFunc, error) {
	if configDir == "" {
		configDir = Dir()
	}

	vars := map[string]string{}
	envFile := filepath.Join(configDir, EnvFileName)
	if _, err := os.Stat(envFile); err == nil {
		vars, err = godotenv.Read(envFile)
		if err != nil {
			return nil, err
		}
	}

	return func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok {
			return value, true
		}
		value, ok := vars[key]
		return value, ok
	}, nil
}

// MapLookup builds a LookupFunc from a fixed map.
func MapLookup(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		value, ok := vars[key]
		return value, ok
	}
}
