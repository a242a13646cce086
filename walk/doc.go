// Basic usage
//
//	// Everything below ./src, relative to the working directory, children first
//	paths, err := walk.Paths(context.Background(), "src")
//
//	// Top level only, absolute paths
//	opts := walk.DefaultOptions()
//	opts.MaxDepth = 1
//	opts.Relative = false
//	result, err := walk.WalkSync("src", opts)
//
//	// Keep the directory structure, files only
//	opts := walk.DefaultOptions()
//	opts.Flatten = false
//	opts.FilesOnly = true
//	result, err := walk.Walk(ctx, "src", opts)
//	for _, n := range result.Children() {
//		if n.IsBranch() {
//			fmt.Println(n.Paths())
//		}
//	}
//
//	// Paths relative to another directory
//	opts := walk.DefaultOptions()
//	opts.Cwd = "src/pkg"
//	result, err := walk.Walk(ctx, "../", opts)
//
//	// Walk an in-memory filesystem
//	opts := walk.DefaultOptions()
//	opts.FS = walk.NewAferoFileSystem(afero.NewMemMapFs())
//
// Options
//
// Build options from DefaultOptions and change what differs. The zero value
// Options{} is a walk with MaxDepth 0, with flattening and relative output turned
// off, so it returns only the start path itself:
//
//	result, _ := walk.WalkSync("src", walk.Options{}) // [/abs/path/to/src]
//
// Errors
//
// A walk either returns a complete result or the first error it hit. Errors
// match ErrNotFound, ErrPermissionDenied or ErrNotADirectory with errors.Is,
// and carry the failing path in a *PathError.

package walk
