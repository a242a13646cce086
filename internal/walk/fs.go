package recurse

import (
	"io/fs"
	"sync"
	"syscall"

	"github.com/karrick/godirwalk"
	"github.com/spf13/afero"
)

// FileSystem is the collaborator the walker probes. Implementations should
// report entries without following symbolic links; a backend that cannot
// lstat classifies a link by its target, and a link to an ancestor then
// recurses until the filesystem refuses the path.
type FileSystem interface {
	// IsDir reports whether path is a directory, using link status rather
	// than the status of a link's target.
	IsDir(path string) (bool, error)

	// ReadDirNames returns the names of the immediate entries of path in the
	// filesystem's native enumeration order.
	ReadDirNames(path string) ([]string, error)
}

// scratchBufferSize matches godirwalk's own default for directory reads.
const scratchBufferSize = 64 * 1024

// osFileSystem reads the host filesystem through godirwalk.
type osFileSystem struct {
	scratch sync.Pool
}

// NewOSFileSystem returns a FileSystem backed by the operating system.
// It is safe for concurrent use.
func NewOSFileSystem() FileSystem {
	return &osFileSystem{
		scratch: sync.Pool{
			New: func() any {
				buf := make([]byte, scratchBufferSize)
				return &buf
			},
		},
	}
}

func (o *osFileSystem) IsDir(path string) (bool, error) {
	de, err := godirwalk.NewDirent(path)
	if err != nil {
		return false, err
	}
	return de.IsDir(), nil
}

func (o *osFileSystem) ReadDirNames(path string) ([]string, error) {
	buf := o.scratch.Get().(*[]byte)
	defer o.scratch.Put(buf)
	return godirwalk.ReadDirnames(path, *buf)
}

// aferoFileSystem adapts an afero.Fs.
type aferoFileSystem struct {
	fs afero.Fs
}

// NewAferoFileSystem returns a FileSystem backed by fsys. Link status is used
// when fsys implements afero.Lstater (OsFs, BasePathFs, ReadOnlyFs). Other
// backends are classified with Stat, which follows links; such backends
// should not hold symbolic links to ancestors.
func NewAferoFileSystem(fsys afero.Fs) FileSystem {
	return &aferoFileSystem{fs: fsys}
}

func (a *aferoFileSystem) IsDir(path string) (bool, error) {
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(path)
		if err != nil {
			return false, err
		}
		return info.IsDir(), nil
	}
	info, err := a.fs.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

func (a *aferoFileSystem) ReadDirNames(path string) ([]string, error) {
	f, err := a.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		// afero backends disagree on the error for listing a file.
		return nil, &fs.PathError{Op: "readdirent", Path: path, Err: syscall.ENOTDIR}
	}
	return f.Readdirnames(-1)
}
