package factory

import (
	"code.continuecash.io/continuecash/config/encoding"
	"code.continuecash.io/continuecash/core/execution"
	"code.continuecash.io/continuecash/core/robots"
	"code.continuecash.io/continuecash/logging"
)

const namedLogger = "factory"

// Config represents the configuration of the factory and of the engines
// it instantiates for every created pair.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`

	Execution execution.Config
	Robots    robots.Config
}

// NewDefaultConfig creates an instance of the package specific
// configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:     encoding.LogLevel{Level: logging.InfoLevel},
		Execution: execution.NewDefaultConfig(),
		Robots:    robots.NewDefaultConfig(),
	}
}
