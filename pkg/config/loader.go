package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	jerrors "github.com/arthur-debert/jackman/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable jackman reads
const EnvPrefix = "JACKMAN_"

// EnvConfigFile names an explicit config file
const EnvConfigFile = EnvPrefix + "CONFIG"

// FileName is the config file looked up in the working directory
const FileName = ".jackman.toml"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Defaults returns the embedded default configuration
func Defaults() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, jerrors.Wrap(err, jerrors.ErrConfigLoad, "failed to load defaults")
	}
	return unmarshal(k, "")
}

// Load builds the configuration for an invocation in workingDir.
// overrides holds command-line values keyed like the config file.
func Load(workingDir string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, jerrors.Wrap(err, jerrors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Config file
	source, err := configFilePath(workingDir)
	if err != nil {
		return nil, err
	}
	if source != "" {
		if err := k.Load(file.Provider(source), toml.Parser()); err != nil {
			return nil, jerrors.Wrapf(err, jerrors.ErrConfigLoad, "failed to load config from %s", source)
		}
	}

	// 3. Environment
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		if s == EnvConfigFile {
			return ""
		}
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, jerrors.Wrap(err, jerrors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command-line overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, jerrors.Wrap(err, jerrors.ErrConfigLoad, "failed to load overrides")
		}
	}

	return unmarshal(k, source)
}

func unmarshal(k *koanf.Koanf, source string) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, jerrors.Wrap(err, jerrors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return nil, jerrors.Wrap(err, jerrors.ErrConfigValid, "invalid configuration")
	}
	return &cfg, nil
}

// configFilePath returns the config file to load, or "" when there is none.
// An explicit JACKMAN_CONFIG must exist.
func configFilePath(workingDir string) (string, error) {
	if explicit := os.Getenv(EnvConfigFile); explicit != "" {
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(workingDir, explicit)
		}
		if _, err := os.Stat(explicit); err != nil {
			return "", jerrors.Wrapf(err, jerrors.ErrConfigLoad, "config file %s", explicit)
		}
		return explicit, nil
	}

	path := filepath.Join(workingDir, FileName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", nil
}
