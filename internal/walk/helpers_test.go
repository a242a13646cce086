package recurse

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	cp "github.com/otiai10/copy"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const fixtures = "testdata/fixtures"

type walkFunc func(dir string, opts Options) (Node, error)

// entryPoints runs a test body against both the concurrent and the blocking form.
var entryPoints = []struct {
	name string
	walk walkFunc
}{
	{
		name: "Walk",
		walk: func(dir string, opts Options) (Node, error) {
			return Walk(context.Background(), dir, opts)
		},
	},
	{
		name: "WalkSync",
		walk: WalkSync,
	},
}

func testOptions(t testing.TB) Options {
	opts := DefaultOptions()
	opts.Logger = zaptest.NewLogger(t)
	return opts
}

// tempFixtures copies the fixture tree into a fresh temp dir.
func tempFixtures(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, cp.Copy(fixtures, dir), "failed to copy fixtures")

	return dir
}

// ordered returns the flattened paths of n with forward slashes, sorted, and
// without .DS_Store noise.
func ordered(n Node) []string {
	var paths []string
	for _, p := range n.Paths() {
		if strings.Contains(p, ".DS_Store") {
			continue
		}
		paths = append(paths, filepath.ToSlash(p))
	}
	sort.Strings(paths)
	return paths
}

func sortedCopy(paths []string) []string {
	out := append([]string(nil), paths...)
	sort.Strings(out)
	return out
}
