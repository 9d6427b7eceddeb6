package execution

import (
	"code.continuecash.io/continuecash/config/encoding"
	"code.continuecash.io/continuecash/logging"
)

const namedLogger = "execution"

// Config is the configuration of the trade engine.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`
}

// NewDefaultConfig creates an instance of the package specific
// configuration.
func NewDefaultConfig() Config {
	return Config{
		Level: encoding.LogLevel{Level: logging.InfoLevel},
	}
}
