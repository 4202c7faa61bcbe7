package config

import "errors"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound       = errors.New("config file not found")
	ErrInvalidConcurrency   = errors.New("concurrency must not be negative")
	ErrInvalidLogLevel      = errors.New("unknown log level")
	ErrInvalidLogFormat     = errors.New("log format must be json or console")
	ErrStorageNotConfigured = errors.New("s3:// output requires storage.endpoint")
	ErrInvalidEnvValue      = errors.New("invalid environment value")
)
