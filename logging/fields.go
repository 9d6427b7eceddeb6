package logging

import (
	"go.uber.org/zap"

	"code.continuecash.io/continuecash/libs/num"
)

// Field aliases the zap field type so callers never import zap directly.
type Field = zap.Field

func Error(err error) Field {
	return zap.Error(err)
}

func String(key, val string) Field {
	return zap.String(key, val)
}

func Int(key string, val int) Field {
	return zap.Int(key, val)
}

func Uint64(key string, val uint64) Field {
	return zap.Uint64(key, val)
}

// BigUint logs a num.Uint as its base-10 string.
func BigUint(key string, val *num.Uint) Field {
	return zap.String(key, val.String())
}
