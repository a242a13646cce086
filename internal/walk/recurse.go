// Package recurse lists the contents of a directory tree as a nested or flat
// sequence of paths, children before their parent.
package recurse

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultConcurrentWalks bounds the filesystem probes Walk keeps in flight
// when Options.Concurrency is zero.
const DefaultConcurrentWalks int = 100

// Unbounded disables the depth cutoff.
const Unbounded = -1

// --------------------------------------------------------------------------
// Configuration types
// --------------------------------------------------------------------------

// LogLevel defines the verbosity of logging.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Options configures a walk. Start from DefaultOptions; the zero value
// requests a depth of 0 with flattening and relative paths turned off.
type Options struct {
	MaxDepth  int    // Stop descending at this depth (root = 0), or Unbounded
	Flatten   bool   // Collapse the nested result into one sequence
	FilesOnly bool   // Omit directories' own paths
	Relative  bool   // Emit paths relative to Cwd instead of absolute paths
	Cwd       string // Reference directory; empty means the process working directory

	FS          FileSystem  // Filesystem to probe; nil means the host filesystem
	Concurrency int         // In-flight probes for Walk; 0 means DefaultConcurrentWalks
	Logger      *zap.Logger // Nil builds one from LogLevel
	LogLevel    LogLevel
}

// DefaultOptions returns the documented defaults: unbounded depth, flattened,
// relative output, directories included, anchored at the working directory.
func DefaultOptions() Options {
	return Options{
		MaxDepth: Unbounded,
		Flatten:  true,
		Relative: true,
		LogLevel: LogLevelInfo,
	}
}

func (o Options) validate() error {
	if o.MaxDepth < Unbounded {
		return ErrInvalidMaxDepth
	}
	if o.Concurrency < 0 {
		return ErrInvalidConcurrency
	}
	return nil
}

// --------------------------------------------------------------------------
// Primary API functions
// --------------------------------------------------------------------------

// Walk lists dir recursively. Sibling entries are probed concurrently and
// reassembled in enumeration order, so the result is identical to WalkSync's.
// The first failure cancels outstanding probes and is returned.
func Walk(ctx context.Context, dir string, opts Options) (Node, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	limit := opts.Concurrency
	if limit == 0 {
		limit = DefaultConcurrentWalks
	}
	return run(ctx, dir, opts, semaphore.NewWeighted(int64(limit)))
}

// WalkSync lists dir recursively, one filesystem operation at a time.
func WalkSync(dir string, opts Options) (Node, error) {
	return run(context.Background(), dir, opts, nil)
}

// run normalizes the inputs, descends from depth 0 and applies the flatten step.
// A nil sem selects sequential descent.
func run(ctx context.Context, dir string, opts Options, sem *semaphore.Weighted) (Node, error) {
	if err := opts.validate(); err != nil {
		return Node{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = NewLogger(opts.LogLevel)
		defer logger.Sync()
	}
	if opts.FS == nil {
		opts.FS = NewOSFileSystem()
	}

	cwd, err := resolveCwd(opts.Cwd)
	if err != nil {
		return Node{}, err
	}
	start, err := resolveStart(dir, cwd, opts.Relative)
	if err != nil {
		return Node{}, err
	}

	w := &walker{
		opts:   opts,
		cwd:    cwd,
		sem:    sem,
		logger: logger,
	}

	logger.Debug("starting walk",
		zap.String("dir", dir),
		zap.String("start", start),
		zap.String("cwd", cwd),
		zap.Int("max_depth", opts.MaxDepth),
		zap.Bool("flatten", opts.Flatten),
		zap.Bool("files_only", opts.FilesOnly),
		zap.Bool("relative", opts.Relative),
		zap.Bool("concurrent", sem != nil),
	)
	startTime := time.Now()

	root, err := w.descend(ctx, start, 0)
	if err != nil {
		logger.Debug("walk failed", zap.String("start", start), zap.Error(err))
		return Node{}, err
	}
	if !root.IsBranch() {
		root = Branch(root)
	}
	if opts.Flatten {
		root = Flatten(root)
	}

	logger.Debug("walk complete",
		zap.String("start", start),
		zap.Int("entries", root.Len()),
		zap.Duration("elapsed", time.Since(startTime)),
	)
	return root, nil
}

// --------------------------------------------------------------------------
// Recursive descent
// --------------------------------------------------------------------------

// walker holds the read-only state of a single call.
type walker struct {
	opts   Options
	cwd    string
	sem    *semaphore.Weighted
	logger *zap.Logger
}

// descend returns the formatted path of a file or cut-off directory, or the
// branch of a directory's children followed by its own path.
func (w *walker) descend(ctx context.Context, path string, depth int) (Node, error) {
	if path == "" {
		path = w.cwd
	}

	if w.opts.MaxDepth != Unbounded && depth >= w.opts.MaxDepth {
		w.logger.Debug("depth limit reached", zap.String("path", path), zap.Int("depth", depth))
		return w.leaf(path)
	}

	isDir, err := w.isDir(ctx, path)
	if err != nil {
		return Node{}, err
	}
	if !isDir {
		return w.leaf(path)
	}

	names, err := w.readDirNames(ctx, path)
	if err != nil {
		return Node{}, err
	}
	w.logger.Debug("descending", zap.String("path", path), zap.Int("depth", depth), zap.Int("entries", len(names)))

	children, err := w.children(ctx, path, names, depth+1)
	if err != nil {
		return Node{}, err
	}
	if w.opts.FilesOnly {
		return Branch(children...), nil
	}

	self, err := w.selfPath(path)
	if err != nil {
		return Node{}, err
	}
	return Branch(append(children, Leaf(self))...), nil
}

// children descends into every entry of path, keeping entry order.
func (w *walker) children(ctx context.Context, path string, names []string, depth int) ([]Node, error) {
	nodes := make([]Node, len(names), len(names)+1)

	if w.sem == nil {
		for i, name := range names {
			node, err := w.descend(ctx, joinPath(path, name), depth)
			if err != nil {
				return nil, err
			}
			nodes[i] = node
		}
		return nodes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			node, err := w.descend(gctx, joinPath(path, name), depth)
			if err != nil {
				return err
			}
			nodes[i] = node
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (w *walker) leaf(path string) (Node, error) {
	formatted, err := w.format(path)
	if err != nil {
		return Node{}, err
	}
	return Leaf(formatted), nil
}

// --------------------------------------------------------------------------
// Filesystem probes
// --------------------------------------------------------------------------

func (w *walker) isDir(ctx context.Context, path string) (bool, error) {
	if err := w.acquire(ctx); err != nil {
		return false, err
	}
	defer w.release()

	isDir, err := w.opts.FS.IsDir(path)
	if err != nil {
		return false, pathError("lstat", path, err)
	}
	return isDir, nil
}

func (w *walker) readDirNames(ctx context.Context, path string) ([]string, error) {
	if err := w.acquire(ctx); err != nil {
		return nil, err
	}
	defer w.release()

	names, err := w.opts.FS.ReadDirNames(path)
	if err != nil {
		return nil, pathError("readdir", path, err)
	}
	return names, nil
}

// acquire takes a probe slot. Slots are held for a single probe only, so
// nested directory groups cannot starve each other.
func (w *walker) acquire(ctx context.Context) error {
	if w.sem == nil {
		return nil
	}
	return w.sem.Acquire(ctx, 1)
}

func (w *walker) release() {
	if w.sem != nil {
		w.sem.Release(1)
	}
}

// --------------------------------------------------------------------------
// Internal helper functions
// --------------------------------------------------------------------------

// NewLogger creates a zap logger with the specified log level.
func NewLogger(level LogLevel) *zap.Logger {
	var config zap.Config

	switch level {
	case LogLevelError:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	case LogLevelWarn:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case LogLevelDebug:
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
