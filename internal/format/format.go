// Package format is the last pipeline stage: it normalises rendered
// declaration text before it is written out.
package format

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/koustreak/schemats/internal/errs"
)

// Printer reformats declaration source without changing its meaning.
// A Printer error means the input was malformed.
type Printer interface {
	Format(ctx context.Context, src string) (string, error)
}

// Standard re-indents by bracket depth with two spaces, collapses runs of
// blank lines, and ends the text with exactly one newline. Unbalanced
// brackets, strings or comments are reported as ErrKindFormatFailed.
type Standard struct{}

func (Standard) Format(_ context.Context, src string) (string, error) {
	var (
		out      strings.Builder
		depth    int
		sc       scanner
		blank    bool
		wroteAny bool
	)

	for lineNo, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			blank = wroteAny
			continue
		}

		inComment := sc.inComment
		lineDepth := depth
		if !inComment && startsWithCloser(line) {
			lineDepth--
		}

		delta, err := sc.scan(line)
		if err != nil {
			return "", errs.Wrap(errs.ErrKindFormatFailed, fmt.Sprintf("line %d", lineNo+1), err)
		}
		depth += delta
		if depth < 0 || lineDepth < 0 {
			return "", errs.Newf(errs.ErrKindFormatFailed, "line %d: unbalanced closing bracket", lineNo+1)
		}

		if blank {
			out.WriteString("\n")
			blank = false
		}
		out.WriteString(strings.Repeat("  ", lineDepth))
		if inComment {
			out.WriteString(" ")
		}
		out.WriteString(line)
		out.WriteString("\n")
		wroteAny = true
	}

	if sc.inComment {
		return "", errs.New(errs.ErrKindFormatFailed, "unterminated comment")
	}
	if depth != 0 {
		return "", errs.Newf(errs.ErrKindFormatFailed, "%d unclosed bracket(s)", depth)
	}
	return out.String(), nil
}

func startsWithCloser(line string) bool {
	switch line[0] {
	case '}', ']', ')':
		return true
	}
	return false
}

// Command pipes the text through an external formatter such as
// `prettier --parser typescript` and returns its standard output.
type Command struct {
	Name string
	Args []string
}

func (c Command) Format(ctx context.Context, src string) (string, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stdin = strings.NewReader(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "formatter " + c.Name + " failed"
		}
		return "", errs.Wrap(errs.ErrKindFormatFailed, msg, err)
	}
	return stdout.String(), nil
}

// Chain runs printers in order, feeding each the previous output.
type Chain []Printer

func (ch Chain) Format(ctx context.Context, src string) (string, error) {
	var err error
	for _, p := range ch {
		if src, err = p.Format(ctx, src); err != nil {
			return "", err
		}
	}
	return src, nil
}
