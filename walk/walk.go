// Package walk lists the contents of a directory tree as an ordered sequence
// of paths, with depth limiting, relative or absolute formatting, flattening
// and a files-only filter.
package walk

import (
	"context"

	internal "github.com/TFMV/dirwalk/internal/walk"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Re-export the types from the internal package
type (
	// Node is a walk result element: a single path or an ordered sequence of nodes.
	Node = internal.Node

	// Options configures a walk. Start from DefaultOptions.
	Options = internal.Options

	// FileSystem is the collaborator probed during a walk.
	FileSystem = internal.FileSystem

	// PathError records a failed filesystem probe or path computation.
	PathError = internal.PathError

	// LogLevel defines the verbosity of logging.
	LogLevel = internal.LogLevel
)

// Re-export the constants
const (
	// Unbounded disables the depth cutoff.
	Unbounded = internal.Unbounded

	// DefaultConcurrentWalks bounds in-flight probes for Walk.
	DefaultConcurrentWalks = internal.DefaultConcurrentWalks

	// Log levels
	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug
)

// Re-export the errors
var (
	ErrNotFound           = internal.ErrNotFound
	ErrPermissionDenied   = internal.ErrPermissionDenied
	ErrNotADirectory      = internal.ErrNotADirectory
	ErrInvalidMaxDepth    = internal.ErrInvalidMaxDepth
	ErrInvalidConcurrency = internal.ErrInvalidConcurrency
)

// Walk lists dir recursively, probing sibling entries concurrently.
func Walk(ctx context.Context, dir string, opts Options) (Node, error) {
	return internal.Walk(ctx, dir, opts)
}

// WalkSync lists dir recursively, one filesystem operation at a time.
func WalkSync(dir string, opts Options) (Node, error) {
	return internal.WalkSync(dir, opts)
}

// Paths walks dir with the default options and returns the flattened paths.
func Paths(ctx context.Context, dir string) ([]string, error) {
	n, err := internal.Walk(ctx, dir, internal.DefaultOptions())
	if err != nil {
		return nil, err
	}
	return n.Paths(), nil
}

// DefaultOptions returns unbounded, flattened, relative options anchored at the
// process working directory.
func DefaultOptions() Options {
	return internal.DefaultOptions()
}

// Flatten collapses a nested result into a single sequence of leaves.
func Flatten(n Node) Node {
	return internal.Flatten(n)
}

// Leaf returns a node holding a single path.
func Leaf(path string) Node {
	return internal.Leaf(path)
}

// Branch returns a node holding the given children in order.
func Branch(children ...Node) Node {
	return internal.Branch(children...)
}

// NewOSFileSystem returns the host filesystem.
func NewOSFileSystem() FileSystem {
	return internal.NewOSFileSystem()
}

// NewAferoFileSystem walks an afero filesystem instead of the host.
func NewAferoFileSystem(fsys afero.Fs) FileSystem {
	return internal.NewAferoFileSystem(fsys)
}

// NewLogger creates a zap logger for the given level.
func NewLogger(level LogLevel) *zap.Logger {
	return internal.NewLogger(level)
}
