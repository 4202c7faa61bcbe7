// Package minio stores declaration files in MinIO or any S3-compatible
// service.
package minio

import (
	"context"
	"strings"
	"time"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/koustreak/schemats/internal/errs"
	"github.com/koustreak/schemats/internal/filestore"
)

// Driver is a filestore.Store backed by minio-go. Safe for concurrent use.
type Driver struct {
	client *miniogo.Client
}

// New builds a client for cfg and checks that the endpoint answers.
func New(ctx context.Context, cfg *filestore.Config) (*Driver, error) {
	if cfg.Endpoint == "" {
		return nil, errs.New(errs.ErrKindInvalidInput, "storage endpoint is not set")
	}

	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "storage endpoint "+cfg.Endpoint, err)
	}

	d := &Driver{client: client}
	if err := d.Ping(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Ping lists buckets, which needs valid credentials but no bucket.
func (d *Driver) Ping(ctx context.Context) error {
	if _, err := d.client.ListBuckets(ctx); err != nil {
		return mapError(err, "ping storage")
	}
	return nil
}

// Close is a no-op; the client keeps no sessions.
func (d *Driver) Close() error { return nil }

// Upload stores obj as a single-part object. Declarations are regenerated
// on every run, so caches are told not to keep them.
func (d *Driver) Upload(ctx context.Context, obj filestore.Object) (*filestore.Uploaded, error) {
	info, err := d.client.PutObject(ctx, obj.Bucket, obj.Key, strings.NewReader(obj.Code), int64(len(obj.Code)), miniogo.PutObjectOptions{
		ContentType:  filestore.ContentTypeTypeScript,
		CacheControl: "no-cache",
		UserMetadata: obj.Metadata,
	})
	if err != nil {
		return nil, mapError(err, "upload "+obj.Bucket+"/"+obj.Key)
	}
	return &filestore.Uploaded{
		Bucket:    obj.Bucket,
		Key:       obj.Key,
		Size:      info.Size,
		ETag:      info.ETag,
		VersionID: info.VersionID,
	}, nil
}

// PresignGet signs a GET for bucket/key valid for ttl.
func (d *Driver) PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	u, err := d.client.PresignedGetObject(ctx, bucket, key, ttl, nil)
	if err != nil {
		return "", mapError(err, "presign "+bucket+"/"+key)
	}
	return u.String(), nil
}
