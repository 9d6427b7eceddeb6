package robots

import (
	"code.continuecash.io/continuecash/config/encoding"
	"code.continuecash.io/continuecash/logging"
)

const namedLogger = "robots"

// Config represents the configuration of the robot ledger.
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
