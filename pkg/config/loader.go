package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
)

const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "DOTSTASH_"

	// EnvConfigDir overrides the XDG config directory for dotstash
	EnvConfigDir = "DOTSTASH_CONFIG_DIR"

	// ConfigFileName is the user config file inside the config directory
	ConfigFileName = "config.toml"

	// EnvFileName is the optional dotenv file inside the config directory
	EnvFileName = "env"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Dir returns the dotstash config directory
func Dir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, "dotstash")
}

// Load reads the layered configuration from configDir. An empty configDir
// means Dir().
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = Dir()
	}
	return load(configDir, true)
}

// Default returns the embedded defaults alone.
func Default() *Config {
	cfg, err := load("", false)
	if err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	return cfg
}

func load(configDir string, layered bool) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if layered {
		// 2. User config file
		userConfig := filepath.Join(configDir, ConfigFileName)
		if _, err := os.Stat(userConfig); err == nil {
			if err := k.Load(file.Provider(userConfig), toml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", userConfig, err)
			}
		}

		// 3. Environment overrides; DOTSTASH_CONFIG_DIR is not a config key
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			if s == EnvConfigDir {
				return ""
			}
			key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
			return strings.ReplaceAll(key, "__", ".")
		}), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to load env vars: %w", err)
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the commands cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Roots.HomeVar == "":
		return fmt.Errorf("roots.home_var must not be empty")
	case c.Roots.ArchiveVar == "":
		return fmt.Errorf("roots.archive_var must not be empty")
	case c.Roots.HomeVar == c.Roots.ArchiveVar:
		return fmt.Errorf("roots.home_var and roots.archive_var must differ")
	case c.Registry.File == "":
		return fmt.Errorf("registry.file must not be empty")
	case c.Ignore.File == "":
		return fmt.Errorf("ignore.file must not be empty")
	case c.Install.MaxAttempts < 1:
		return fmt.Errorf("install.max_attempts must be at least 1")
	}
	return nil
}

// TOML renders the configuration the way a user would write it.
func (c *Config) TOML() (string, error) {
	data, err := gotoml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
