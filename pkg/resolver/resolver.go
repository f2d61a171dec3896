// Package resolver maps request paths to files under a base directory and
// infers their content type from a fixed extension table.
package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marmos91/snapserve/internal/bytesize"
	"github.com/marmos91/snapserve/internal/logger"
	"github.com/marmos91/snapserve/internal/telemetry"
)

// Containment controls whether resolved paths may leave the base directory.
type Containment string

const (
	// ContainmentStrict rejects request paths that escape the base directory.
	ContainmentStrict Containment = "strict"

	// ContainmentLegacy joins the request path to the base directory without
	// any check, so "/../x" resolves outside of it.
	ContainmentLegacy Containment = "legacy"
)

// DefaultIndex is served for the root path.
const DefaultIndex = "index.html"

// Options configures a Resolver.
type Options struct {
	// Root is the base directory. It is made absolute by New.
	Root string

	// Index replaces the root path "/". Defaults to DefaultIndex.
	Index string

	// Containment defaults to ContainmentStrict.
	Containment Containment

	// MaxFileSize rejects larger files when non-zero.
	MaxFileSize bytesize.ByteSize
}

// Result is a successfully resolved file.
type Result struct {
	// Path is the absolute filesystem path that was read.
	Path        string
	Content     []byte
	ContentType string
}

// Resolver is safe for concurrent use; it holds no mutable state.
type Resolver struct {
	root        string
	index       string
	containment Containment
	maxSize     bytesize.ByteSize
}

// New validates opts and returns a Resolver.
func New(opts Options) (*Resolver, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("resolver root is required")
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", opts.Root, err)
	}

	index := opts.Index
	if index == "" {
		index = DefaultIndex
	}

	containment := opts.Containment
	switch containment {
	case "":
		containment = ContainmentStrict
	case ContainmentStrict, ContainmentLegacy:
	default:
		return nil, fmt.Errorf("unknown containment mode %q", containment)
	}

	return &Resolver{
		root:        root,
		index:       index,
		containment: containment,
		maxSize:     opts.MaxFileSize,
	}, nil
}

// Root returns the absolute base directory.
func (r *Resolver) Root() string { return r.root }

// Containment returns the active containment mode.
func (r *Resolver) Containment() Containment { return r.containment }

// Resolve reads the file addressed by requestPath. Exactly "/" maps to the
// index document; any other path is joined to the base directory as is.
// Every failure is reported as an error matching ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, requestPath string) (*Result, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanResolve)
	defer span.End()

	full, err := r.locate(requestPath)
	if err != nil {
		telemetry.SetAttributes(ctx, telemetry.FSOutcome("not_found"))
		return nil, err
	}
	telemetry.SetAttributes(ctx, telemetry.FSPath(full))

	content, err := r.read(requestPath, full)
	if err != nil {
		logger.DebugCtx(ctx, "File not readable", logger.KeyFile, full, logger.KeyError, err)
		telemetry.SetAttributes(ctx, telemetry.FSOutcome("not_found"))
		return nil, err
	}

	ct := ContentTypeFor(full)
	telemetry.SetAttributes(ctx,
		telemetry.FSOutcome("served"),
		telemetry.FSSize(len(content)),
		telemetry.FSContentType(ct),
	)

	return &Result{Path: full, Content: content, ContentType: ct}, nil
}

// locate maps requestPath to an absolute filesystem path.
func (r *Resolver) locate(requestPath string) (string, error) {
	rel := requestPath
	if rel == "/" {
		rel = "/" + r.index
	}
	full := filepath.Join(r.root, filepath.FromSlash(rel))

	if r.containment == ContainmentStrict && !r.contains(full) {
		logger.Warn("Rejected path outside root", logger.KeyPath, requestPath, logger.KeyRoot, r.root)
		return "", &NotFoundError{RequestPath: requestPath, Reason: "escapes root"}
	}
	return full, nil
}

func (r *Resolver) contains(full string) bool {
	rel, err := filepath.Rel(r.root, full)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (r *Resolver) read(requestPath, full string) ([]byte, error) {
	info, err := os.Stat(full)
	if err != nil {
		return nil, &NotFoundError{RequestPath: requestPath, Reason: "stat failed", Err: err}
	}
	if info.IsDir() {
		return nil, &NotFoundError{RequestPath: requestPath, Reason: "is a directory"}
	}
	if r.maxSize > 0 && info.Size() > r.maxSize.Int64() {
		return nil, &NotFoundError{
			RequestPath: requestPath,
			Reason:      fmt.Sprintf("size %d exceeds limit %s", info.Size(), r.maxSize),
		}
	}

	content, err := os.ReadFile(full)
	if err != nil {
		return nil, &NotFoundError{RequestPath: requestPath, Reason: "read failed", Err: err}
	}
	return content, nil
}
