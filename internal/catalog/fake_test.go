package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/koustreak/schemats/internal/database"
)

// fakeDB answers queries whose text contains a registered marker.
type fakeDB struct {
	results map[string][][]any
	err     error
	queries []string
	args    [][]any
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close()                     {}

func (f *fakeDB) Query(_ context.Context, q string, args ...any) (database.Rows, error) {
	f.queries = append(f.queries, q)
	f.args = append(f.args, args)
	if f.err != nil {
		return nil, f.err
	}
	for marker, rows := range f.results {
		if strings.Contains(q, marker) {
			return &fakeRows{rows: rows, pos: -1}, nil
		}
	}
	return &fakeRows{pos: -1}, nil
}

func (f *fakeDB) ServerVersion(context.Context) (string, error) { return "test", nil }

type fakeRows struct {
	rows [][]any
	pos  int
}

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos < len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(row))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			s, ok := row[i].(string)
			if !ok {
				return fmt.Errorf("scan column %d: %T is not a string", i, row[i])
			}
			*p = s
		case **string:
			if row[i] == nil {
				*p = nil
				continue
			}
			s := row[i].(string)
			*p = &s
		case *int:
			*p = row[i].(int)
		case *bool:
			*p = row[i].(bool)
		default:
			return fmt.Errorf("scan column %d: unsupported destination %T", i, d)
		}
	}
	return nil
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }
