// Package config groups the configuration of every engine in the node
// into a single TOML-serialisable tree.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"code.continuecash.io/continuecash/broker"
	"code.continuecash.io/continuecash/config/encoding"
	"code.continuecash.io/continuecash/core/collateral"
	"code.continuecash.io/continuecash/core/factory"
	"code.continuecash.io/continuecash/logging"
)

// Config is the top of the configuration tree, one section per engine.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	Broker     broker.Config
	Collateral collateral.Config
	Factory    factory.Config
}

// NewDefaultConfig returns a fully populated default configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:      encoding.LogLevel{Level: logging.InfoLevel},
		Broker:     broker.NewDefaultConfig(),
		Collateral: collateral.NewDefaultConfig(),
		Factory:    factory.NewDefaultConfig(),
	}
}

// Read loads a configuration from a TOML file. Fields absent from the
// file keep their defaults, unknown fields are an error.
func Read(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read configuration")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, errors.Errorf("unknown configuration key: %s", keys[0].String())
	}
	return &cfg, nil
}

// Write serialises the configuration to a TOML file, replacing any
// existing file at the path.
func Write(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "unable to write configuration")
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
