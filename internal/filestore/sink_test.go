package filestore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/koustreak/schemats/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in   string
		want Target
	}{
		{"", Target{Kind: TargetStdout}},
		{"-", Target{Kind: TargetStdout}},
		{"types/db.d.ts", Target{Kind: TargetFile, Path: "types/db.d.ts"}},
		{"s3://types/db/schema.d.ts", Target{Kind: TargetObject, Bucket: "types", Key: "db/schema.d.ts"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTarget(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.in != "" {
				assert.Equal(t, tt.in, got.String())
			}
		})
	}
}

func TestParseTarget_InvalidObject(t *testing.T) {
	for _, in := range []string{"s3://", "s3://bucket", "s3://bucket/", "s3:///key", "s3://bucket/dir/"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTarget(in)
			assert.True(t, errs.IsInvalidInput(err))
		})
	}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriterSink{W: &buf}.Write(context.Background(), "export type A = string\n"))
	assert.Equal(t, "export type A = string\n", buf.String())
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "schema.d.ts")
	require.NoError(t, FileSink{Path: path}.Write(context.Background(), "export type A = string\n"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "export type A = string\n", string(got))
}

type memStore struct {
	objects map[string]Object
	err     error
}

func (m *memStore) Ping(context.Context) error { return nil }
func (m *memStore) Close() error               { return nil }

func (m *memStore) Upload(_ context.Context, obj Object) (*Uploaded, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.objects[obj.Bucket+"/"+obj.Key] = obj
	return &Uploaded{Bucket: obj.Bucket, Key: obj.Key, Size: int64(len(obj.Code)), ETag: "etag"}, nil
}

func (m *memStore) PresignGet(context.Context, string, string, time.Duration) (string, error) {
	return "", nil
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	store := &memStore{objects: map[string]Object{}}
	openStore := func(context.Context) (Store, error) { return store, nil }

	var buf bytes.Buffer
	sink, err := Open(ctx, Target{Kind: TargetStdout}, &buf, openStore, nil)
	require.NoError(t, err)
	require.NoError(t, sink.Write(ctx, "a"))
	assert.Equal(t, "a", buf.String())

	meta := map[string]string{"generator": "schemats dev"}
	sink, err = Open(ctx, Target{Kind: TargetObject, Bucket: "types", Key: "db.d.ts"}, &buf, openStore, meta)
	require.NoError(t, err)
	require.NoError(t, sink.Write(ctx, "export type A = string\n"))
	stored := store.objects["types/db.d.ts"]
	assert.Equal(t, "export type A = string\n", stored.Code)
	assert.Equal(t, meta, stored.Metadata)

	_, err = Open(ctx, Target{Kind: TargetObject, Bucket: "b", Key: "k"}, &buf, nil, nil)
	assert.True(t, errs.IsInvalidInput(err))

	failing := func(context.Context) (Store, error) {
		return nil, errs.New(errs.ErrKindConnectionFailed, "no storage")
	}
	_, err = Open(ctx, Target{Kind: TargetObject, Bucket: "b", Key: "k"}, &buf, failing, nil)
	assert.True(t, errs.IsConnectionFailed(err))
}

func TestObjectSink_Error(t *testing.T) {
	boom := errors.New("boom")
	sink := ObjectSink{Store: &memStore{err: boom}, Bucket: "b", Key: "k"}
	assert.ErrorIs(t, sink.Write(context.Background(), "x"), boom)
}
