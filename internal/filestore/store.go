// Package filestore writes generated declarations to their destination:
// standard output, a local file, or an object in an S3-compatible bucket.
//
// Object storage backends implement Store; the CLI picks one at run time
// and hands it to an ObjectSink.
package filestore

import (
	"context"
	"time"
)

// ContentTypeTypeScript is the MIME type declarations are stored under.
const ContentTypeTypeScript = "application/typescript; charset=utf-8"

// Config locates and authenticates against an S3-compatible endpoint.
type Config struct {
	Endpoint  string // host:port, e.g. localhost:9000 or s3.amazonaws.com
	AccessKey string
	SecretKey string
	UseSSL    bool

	// Region skips the bucket location lookup when set.
	Region string
}

// DefaultConfig is a plain-HTTP config for a local MinIO.
func DefaultConfig(endpoint, accessKey, secretKey string) *Config {
	return &Config{Endpoint: endpoint, AccessKey: accessKey, SecretKey: secretKey}
}

// Object is one declaration file to upload.
type Object struct {
	Bucket string
	Key    string
	Code   string

	// Metadata is stored as user metadata (x-amz-meta-*).
	Metadata map[string]string
}

// Uploaded describes a stored object.
type Uploaded struct {
	Bucket    string
	Key       string
	Size      int64
	ETag      string
	VersionID string // empty unless the bucket is versioned
}

// Store is an object storage backend.
type Store interface {
	Ping(ctx context.Context) error
	Close() error

	// Upload replaces the object at obj.Bucket/obj.Key.
	Upload(ctx context.Context, obj Object) (*Uploaded, error)

	// PresignGet returns a URL that downloads bucket/key without
	// credentials until ttl elapses.
	PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}
