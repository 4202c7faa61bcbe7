package main

import "errors"

// Sentinel errors for command validation
var (
	ErrMissingConnection   = errors.New("missing connection string (argument, config file or SCHEMATS_CONNECTION)")
	ErrConflictingDefaults = errors.New("--with-defaults and --no-with-defaults are mutually exclusive")
	ErrPresignNeedsObject  = errors.New("--presign requires an s3:// output")
	ErrTableWithAggregate  = errors.New("--aggregate applies to whole-schema output only")
	ErrNegativeConcurrency = errors.New("--concurrency must not be negative")
)
