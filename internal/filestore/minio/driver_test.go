package minio

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/koustreak/schemats/internal/errs"
	"github.com/koustreak/schemats/internal/filestore"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 accepts bucket listing and single-part uploads.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
	headers map[string]http.Header
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/":
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>
<ListAllMyBucketsResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/"><Owner><ID>id</ID><DisplayName>test</DisplayName></Owner><Buckets></Buckets></ListAllMyBucketsResult>`)
	case r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.objects[r.URL.Path] = string(body)
		f.headers[r.URL.Path] = r.Header.Clone()
		f.mu.Unlock()
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func newTestDriver(t *testing.T) (*Driver, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string]string{}, headers: map[string]http.Header{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	cfg := filestore.DefaultConfig(u.Host, "minioadmin", "minioadmin")
	cfg.Region = "us-east-1"

	d, err := New(context.Background(), cfg)
	require.NoError(t, err)
	return d, fake
}

func TestDriver_Upload(t *testing.T) {
	d, fake := newTestDriver(t)

	code := "export interface A {\n  id: number\n}\n"
	up, err := d.Upload(context.Background(), filestore.Object{
		Bucket:   "types",
		Key:      "db/schema.d.ts",
		Code:     code,
		Metadata: map[string]string{"generator": "schemats dev"},
	})
	require.NoError(t, err)

	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", up.ETag)
	assert.Equal(t, "types", up.Bucket)
	assert.Equal(t, "db/schema.d.ts", up.Key)
	assert.Contains(t, fake.objects["/types/db/schema.d.ts"], "export interface A {")

	h := fake.headers["/types/db/schema.d.ts"]
	assert.Equal(t, filestore.ContentTypeTypeScript, h.Get("Content-Type"))
	assert.Equal(t, "no-cache", h.Get("Cache-Control"))
	assert.Equal(t, "schemats dev", h.Get("X-Amz-Meta-Generator"))
	assert.NoError(t, d.Close())
}

func TestDriver_PresignGet(t *testing.T) {
	d, _ := newTestDriver(t)

	u, err := d.PresignGet(context.Background(), "types", "schema.d.ts", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, u, "/types/schema.d.ts?")
	assert.Contains(t, u, "X-Amz-Expires=900")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(context.Background(), filestore.DefaultConfig("", "a", "b"))
	assert.True(t, errs.IsInvalidInput(err))

	// a closed port: the ping fails at the transport level
	srv := httptest.NewServer(http.NotFoundHandler())
	u, _ := url.Parse(srv.URL)
	srv.Close()

	cfg := filestore.DefaultConfig(u.Host, "a", "b")
	cfg.Region = "us-east-1"
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = New(ctx, cfg)
	require.Error(t, err)
	assert.True(t, errs.IsConnectionFailed(err) || errs.IsTimeout(err))
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind errs.ErrKind
	}{
		{"deadline", context.DeadlineExceeded, errs.ErrKindTimeout},
		{"no bucket", miniogo.ErrorResponse{Code: "NoSuchBucket", StatusCode: http.StatusNotFound}, errs.ErrKindNotFound},
		{"denied", miniogo.ErrorResponse{Code: "AccessDenied", StatusCode: http.StatusForbidden}, errs.ErrKindPermissionDenied},
		{"too large", miniogo.ErrorResponse{Code: "EntityTooLarge", StatusCode: http.StatusBadRequest}, errs.ErrKindInvalidInput},
		{"status only", miniogo.ErrorResponse{Code: "Weird", StatusCode: http.StatusUnauthorized}, errs.ErrKindPermissionDenied},
		{"server error", miniogo.ErrorResponse{Code: "InternalError", StatusCode: http.StatusInternalServerError}, errs.ErrKindQueryFailed},
		{"transport", io.ErrUnexpectedEOF, errs.ErrKindConnectionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, mapError(tt.err, "op").Kind)
		})
	}
	assert.Nil(t, mapError(nil, "op"))
}
