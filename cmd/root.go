package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	recurse "github.com/TFMV/dirwalk/internal/walk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

var version = "0.1.0"

// Execute builds the root command and runs it against os.Args.
func Execute() error {
	return NewRoot().Execute()
}

// NewRoot returns the dirwalk command with its own viper instance, so that
// flags, environment and config file never leak between invocations.
func NewRoot() *cobra.Command {
	v := newViper()

	cmd := &cobra.Command{
		Use:   "dirwalk [flags] [dir]",
		Short: "List a directory tree, children before parents",
		Long: `dirwalk recursively lists the files and directories below dir
(default: the working directory). Every directory is printed after its
contents.

Examples:
  dirwalk src
  dirwalk --max-depth=1 --relative=false .
  dirwalk --files-only --flatten=false --format=json src
  dirwalk --cwd=src/pkg ../`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) > 0 {
				dir = args[0]
			}
			return run(cmd.Context(), v, cmd.OutOrStdout(), dir)
		},
	}

	fs := cmd.Flags()
	fs.String("config", "", "Config file (default $HOME/.dirwalk.yaml)")
	fs.IntP("max-depth", "d", recurse.Unbounded, "Maximum depth to descend (-1 for unbounded)")
	fs.Bool("flatten", true, "Print a flat list instead of a nested tree")
	fs.BoolP("files-only", "f", false, "Omit directories from the output")
	fs.Bool("relative", true, "Print paths relative to --cwd instead of absolute paths")
	fs.String("cwd", "", "Directory that relative paths are computed from (default: working directory)")
	fs.Bool("sync", false, "Probe the filesystem sequentially")
	fs.IntP("workers", "w", recurse.DefaultConcurrentWalks, "Maximum concurrent filesystem probes")
	fs.String("format", "text", "Output format (text|json)")
	fs.Bool("nfc", false, "Normalize printed paths to Unicode NFC")
	fs.BoolP("verbose", "v", false, "Enable debug logging")
	fs.Bool("silent", false, "Only log errors")

	cobra.CheckErr(v.BindPFlags(fs))

	return cmd
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("dirwalk")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// readConfig loads the config file named by --config, or $HOME/.dirwalk.yaml
// when it exists.
func readConfig(v *viper.Viper) error {
	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigType("yaml")
	v.SetConfigName(".dirwalk")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

func run(ctx context.Context, v *viper.Viper, out io.Writer, dir string) error {
	if err := readConfig(v); err != nil {
		return err
	}

	format := v.GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s", format)
	}

	opts := recurse.DefaultOptions()
	opts.MaxDepth = v.GetInt("max-depth")
	opts.Flatten = v.GetBool("flatten")
	opts.FilesOnly = v.GetBool("files-only")
	opts.Relative = v.GetBool("relative")
	opts.Cwd = v.GetString("cwd")
	opts.Concurrency = v.GetInt("workers")

	// Set log level and logger
	switch {
	case v.GetBool("verbose"):
		opts.LogLevel = recurse.LogLevelDebug
	case v.GetBool("silent"):
		opts.LogLevel = recurse.LogLevelError
	default:
		opts.LogLevel = recurse.LogLevelInfo
	}
	logger := recurse.NewLogger(opts.LogLevel)
	defer logger.Sync()
	opts.Logger = logger

	var (
		result recurse.Node
		err    error
	)
	if v.GetBool("sync") {
		result, err = recurse.WalkSync(dir, opts)
	} else {
		result, err = recurse.Walk(ctx, dir, opts)
	}
	if err != nil {
		logger.Error("walk failed", zap.String("dir", dir), zap.Error(err))
		return err
	}

	if v.GetBool("nfc") {
		result = normalize(result)
	}

	if format == "json" {
		enc := json.NewEncoder(out)
		return enc.Encode(result)
	}
	return printTree(out, result, 0)
}

// printTree writes one path per line, indenting nested sequences one step per level.
func printTree(out io.Writer, n recurse.Node, level int) error {
	for _, child := range n.Children() {
		if child.IsBranch() {
			if err := printTree(out, child, level+1); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", level), child.Path()); err != nil {
			return err
		}
	}
	return nil
}

// normalize rewrites every path in n to NFC.
func normalize(n recurse.Node) recurse.Node {
	if !n.IsBranch() {
		return recurse.Leaf(norm.NFC.String(n.Path()))
	}
	children := make([]recurse.Node, len(n.Children()))
	for i, child := range n.Children() {
		children[i] = normalize(child)
	}
	return recurse.Branch(children...)
}
