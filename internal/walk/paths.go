package recurse

import (
	"fmt"
	"os"
	"path/filepath"
)

// resolveCwd returns the reference directory for a walk. An empty cwd means
// the process working directory at call time.
func resolveCwd(cwd string) (string, error) {
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("recurse: cannot determine working directory: %w", err)
		}
		return wd, nil
	}
	return filepath.Clean(cwd), nil
}

// resolveStart computes the first path to probe. An empty dir walks cwd
// itself. A relative dir is joined onto cwd, and made absolute when the
// output is not relative. An absolute dir is used as given.
func resolveStart(dir, cwd string, relative bool) (string, error) {
	var joined string
	switch {
	case dir == "":
		joined = cwd
	case filepath.IsAbs(dir):
		return dir, nil
	default:
		joined = filepath.Join(cwd, dir)
	}
	if relative {
		return joined, nil
	}
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", pathError("format", joined, err)
	}
	return abs, nil
}

// relativePath resolves both paths from the process working directory and
// returns target relative to base.
func relativePath(base, target string) (string, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", err
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	return filepath.Rel(absBase, absTarget)
}

// format turns a probed path into the string emitted in the result.
func (w *walker) format(path string) (string, error) {
	if !w.opts.Relative {
		return path, nil
	}
	rel, err := relativePath(w.cwd, path)
	if err != nil {
		return "", pathError("format", path, err)
	}
	return rel, nil
}

// selfPath formats a directory's own entry. Relative to cwd, cwd itself would
// collapse to "."; instead it is expressed from its parent. An absolute cwd
// yields its base name. A relative cwd keeps its base name resolved from the
// process working directory.
func (w *walker) selfPath(path string) (string, error) {
	if !w.opts.Relative || filepath.Clean(path) != w.cwd {
		return w.format(path)
	}
	var (
		rel string
		err error
	)
	if filepath.IsAbs(w.cwd) {
		rel, err = filepath.Rel(filepath.Dir(w.cwd), w.cwd)
	} else {
		rel, err = relativePath(filepath.Dir(w.cwd), filepath.Base(w.cwd))
	}
	if err != nil {
		return "", pathError("format", path, err)
	}
	return rel, nil
}

func joinPath(dir, name string) string {
	return filepath.Join(dir, name)
}
