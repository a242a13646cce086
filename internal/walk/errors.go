package recurse

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Error taxonomy. Every filesystem failure surfaces as a *PathError that
// matches one of these with errors.Is.
var (
	ErrNotFound         = errors.New("recurse: path not found")
	ErrPermissionDenied = errors.New("recurse: permission denied")
	ErrNotADirectory    = errors.New("recurse: not a directory")

	ErrInvalidMaxDepth    = errors.New("recurse: max depth must be >= 0 or Unbounded")
	ErrInvalidConcurrency = errors.New("recurse: concurrency must not be negative")
)

// PathError records a failed filesystem probe or path computation.
type PathError struct {
	Op   string // lstat, readdir or format
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("recurse: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Is maps the underlying OS error onto the taxonomy sentinels.
func (e *PathError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return errors.Is(e.Err, fs.ErrNotExist)
	case ErrPermissionDenied:
		return errors.Is(e.Err, fs.ErrPermission)
	case ErrNotADirectory:
		return errors.Is(e.Err, syscall.ENOTDIR)
	}
	return false
}

func pathError(op, path string, err error) error {
	var pe *PathError
	if errors.As(err, &pe) {
		return err
	}
	return &PathError{Op: op, Path: path, Err: err}
}
