package filestore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/koustreak/schemats/internal/errs"
	"github.com/koustreak/schemats/internal/logger"
)

// TargetKind says where a Target writes.
type TargetKind int

const (
	TargetStdout TargetKind = iota
	TargetFile
	TargetObject
)

const objectScheme = "s3://"

// Target is a parsed --output value.
type Target struct {
	Kind   TargetKind
	Path   string // TargetFile
	Bucket string // TargetObject
	Key    string // TargetObject
}

// ParseTarget interprets an output destination: "" or "-" is standard
// output, s3://bucket/key is an object, anything else a file path.
func ParseTarget(s string) (Target, error) {
	switch {
	case s == "" || s == "-":
		return Target{Kind: TargetStdout}, nil
	case strings.HasPrefix(s, objectScheme):
		bucket, key, ok := strings.Cut(strings.TrimPrefix(s, objectScheme), "/")
		if !ok || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
			return Target{}, errs.Newf(errs.ErrKindInvalidInput, "object output %q must be s3://bucket/key", s)
		}
		return Target{Kind: TargetObject, Bucket: bucket, Key: key}, nil
	default:
		return Target{Kind: TargetFile, Path: s}, nil
	}
}

func (t Target) String() string {
	switch t.Kind {
	case TargetFile:
		return t.Path
	case TargetObject:
		return objectScheme + t.Bucket + "/" + t.Key
	default:
		return "-"
	}
}

// Sink receives the final declaration text.
type Sink interface {
	Write(ctx context.Context, code string) error
}

// WriterSink writes to an io.Writer, normally os.Stdout.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Write(_ context.Context, code string) error {
	if _, err := io.WriteString(s.W, code); err != nil {
		return errs.Wrap(errs.ErrKindUnknown, "write output", err)
	}
	return nil
}

// FileSink writes to a local path, creating parent directories.
type FileSink struct {
	Path string
}

func (s FileSink) Write(_ context.Context, code string) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errs.Wrap(classifyFSError(err), "create output directory "+dir, err)
		}
	}
	if err := os.WriteFile(s.Path, []byte(code), 0o644); err != nil {
		return errs.Wrap(classifyFSError(err), "write "+s.Path, err)
	}
	return nil
}

func classifyFSError(err error) errs.ErrKind {
	switch {
	case os.IsPermission(err):
		return errs.ErrKindPermissionDenied
	case os.IsNotExist(err):
		return errs.ErrKindNotFound
	}
	return errs.ErrKindUnknown
}

// ObjectSink uploads to Bucket/Key through a Store.
type ObjectSink struct {
	Store    Store
	Bucket   string
	Key      string
	Metadata map[string]string
}

func (s ObjectSink) Write(ctx context.Context, code string) error {
	up, err := s.Store.Upload(ctx, Object{Bucket: s.Bucket, Key: s.Key, Code: code, Metadata: s.Metadata})
	if err != nil {
		return err
	}
	fields := logger.Fields{"bucket": up.Bucket, "key": up.Key, "etag": up.ETag, "size": up.Size}
	if up.VersionID != "" {
		fields["version"] = up.VersionID
	}
	logger.FromContext(ctx).InfoWith("uploaded declarations", fields)
	return nil
}

// Open returns the sink for t. stdout backs TargetStdout; openStore is
// called only for TargetObject, and meta becomes the object's metadata.
func Open(ctx context.Context, t Target, stdout io.Writer, openStore func(context.Context) (Store, error), meta map[string]string) (Sink, error) {
	switch t.Kind {
	case TargetFile:
		return FileSink{Path: t.Path}, nil
	case TargetObject:
		if openStore == nil {
			return nil, errs.New(errs.ErrKindInvalidInput, "object output needs storage credentials")
		}
		store, err := openStore(ctx)
		if err != nil {
			return nil, err
		}
		return ObjectSink{Store: store, Bucket: t.Bucket, Key: t.Key, Metadata: meta}, nil
	default:
		return WriterSink{W: stdout}, nil
	}
}
