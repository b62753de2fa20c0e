package tables

import (
	"os"
	"strconv"

	"go.uber.org/zap"
)

// VerifyEnvVar enables verification when set to a true value.
const VerifyEnvVar = "ECMAMETA_VERIFY"

type Options struct {
	logger *zap.Logger
	verify bool
}

type Option func(*Options)

// WithLogger sets the logger used for sort passes and consistency
// violations. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithVerification turns on the internal consistency checks run by
// Serialize. They cost an extra pass over caller-sorted tables.
func WithVerification(enabled bool) Option {
	return func(o *Options) {
		o.verify = enabled
	}
}

// ConfigFromEnv returns the options selected by the process environment.
// Unparseable values are ignored.
func ConfigFromEnv() []Option {
	var opts []Option
	if v, ok := os.LookupEnv(VerifyEnvVar); ok {
		if enabled, err := strconv.ParseBool(v); err == nil {
			opts = append(opts, WithVerification(enabled))
		}
	}
	return opts
}

func defaultOptions() Options {
	return Options{logger: zap.NewNop()}
}
