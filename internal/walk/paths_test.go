package recurse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveStart(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name     string
		dir      string
		cwd      string
		relative bool
		expected string
	}{
		{
			name:     "Empty walks cwd",
			dir:      "",
			cwd:      "testdata/fixtures",
			relative: true,
			expected: "testdata/fixtures",
		},
		{
			name:     "Relative joined onto cwd",
			dir:      "a/b",
			cwd:      "testdata/fixtures",
			relative: true,
			expected: filepath.Join("testdata", "fixtures", "a", "b"),
		},
		{
			name:     "Parent of cwd",
			dir:      "../",
			cwd:      "testdata/fixtures/a/b",
			relative: true,
			expected: filepath.Join("testdata", "fixtures", "a"),
		},
		{
			name:     "Absolute output resolves the join",
			dir:      "a",
			cwd:      "testdata/fixtures",
			relative: false,
			expected: filepath.Join(wd, "testdata", "fixtures", "a"),
		},
		{
			name:     "Absolute dir kept as given",
			dir:      "/tmp/somewhere/",
			cwd:      "testdata/fixtures",
			relative: false,
			expected: "/tmp/somewhere/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := resolveStart(tt.dir, tt.cwd, tt.relative)
			require.NoError(t, err)
			require.Equal(t, tt.expected, start)
		})
	}
}

func TestResolveCwd(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	cwd, err := resolveCwd("")
	require.NoError(t, err)
	require.Equal(t, wd, cwd)

	cwd, err = resolveCwd("testdata/fixtures/a/b/")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("testdata", "fixtures", "a", "b"), cwd)
}

func TestFormat(t *testing.T) {
	w := &walker{opts: DefaultOptions(), cwd: "testdata/fixtures/a/b"}

	tests := []struct {
		path     string
		expected string
	}{
		{path: "testdata/fixtures/a/b/c", expected: "c"},
		{path: "testdata/fixtures/a/file_a1.js", expected: "../file_a1.js"},
		{path: "testdata/fixtures/a", expected: ".."},
		{path: "testdata/fixtures/a/b", expected: "."},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := w.format(filepath.FromSlash(tt.path))
			require.NoError(t, err)
			require.Equal(t, tt.expected, filepath.ToSlash(got))
		})
	}
}

func TestSelfPath(t *testing.T) {
	fixtureCwd := filepath.Join("testdata", "fixtures", "a", "b")
	absCwd := filepath.FromSlash("/srv/proj")

	tests := []struct {
		name     string
		cwd      string
		path     string
		relative bool
		expected string
	}{
		{
			name:     "Relative cwd is expressed from its parent",
			cwd:      fixtureCwd,
			path:     fixtureCwd,
			relative: true,
			expected: "../../../b",
		},
		{
			name:     "Relative cwd with trailing separator",
			cwd:      fixtureCwd,
			path:     fixtureCwd + string(filepath.Separator),
			relative: true,
			expected: "../../../b",
		},
		{
			name:     "Other directories use the normal format",
			cwd:      fixtureCwd,
			path:     filepath.Join("testdata", "fixtures", "a"),
			relative: true,
			expected: "..",
		},
		{
			name:     "Absolute cwd yields its base name",
			cwd:      absCwd,
			path:     absCwd,
			relative: true,
			expected: "proj",
		},
		{
			name:     "Absolute cwd with trailing separator",
			cwd:      absCwd,
			path:     absCwd + string(filepath.Separator),
			relative: true,
			expected: "proj",
		},
		{
			name:     "Absolute output is untouched",
			cwd:      absCwd,
			path:     absCwd,
			relative: false,
			expected: absCwd,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Relative = tt.relative
			w := &walker{opts: opts, cwd: tt.cwd}

			got, err := w.selfPath(tt.path)
			require.NoError(t, err)
			require.Equal(t, filepath.FromSlash(tt.expected), got)
		})
	}
}
