// Package cli implements the filemark command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/filemark/internal/paths"
	"github.com/mesh-intelligence/filemark/internal/tracker"
	"github.com/mesh-intelligence/filemark/pkg/bookmark"
)

const version = "0.1.0"

// Exit codes. check additionally maps bookmark states to codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
	sandbox   bool
}

var flags rootFlags

// NewRootCmd creates the top-level "filemark" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "filemark",
		Short: "Create and resolve relocatable file bookmarks",
		Long: "Filemark encodes a file's identity into an opaque bookmark token\n" +
			"that resolves back to the file's current location even after the\n" +
			"file is renamed or moved on the same volume.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "index data directory (default: .filemark-db)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&flags.sandbox, "sandbox", false, "treat scoped access as mandatory")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newMarkCmd())
	root.AddCommand(newResolveCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newRebuildCmd())
	root.AddCommand(newAliasCmd())
	root.AddCommand(newValuesCmd())
	root.AddCommand(newReindexCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}

// profile returns the platform profile selected by the global flags.
func profile() bookmark.Profile {
	if flags.sandbox {
		return bookmark.SandboxProfile
	}
	return bookmark.DesktopProfile
}

// newLogger builds the CLI logger: a development logger under
// --verbose, otherwise a no-op.
func newLogger() *zap.Logger {
	if !flags.verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// openTracker resolves directories from flags, env, and config.yaml,
// attaches the tracker, and returns it with a detach function.
func openTracker() (*tracker.Tracker, func(), error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return nil, nil, err
	}
	dataDir, err := paths.ResolveDataDir(flags.dataDir, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, nil, fmt.Errorf("resolve data dir: %w", err)
	}

	tr := tracker.New(tracker.WithLogger(newLogger()))
	if err := tr.Attach(tracker.Config{DataDir: dataDir}); err != nil {
		return nil, nil, fmt.Errorf("attach tracker: %w", err)
	}
	detach := func() {
		if err := tr.Detach(); err != nil {
			fmt.Fprintln(os.Stderr, "detach tracker:", err)
		}
	}
	return tr, detach, nil
}

// printResolved writes a resolution result in text or JSON mode.
func printResolved(cmd *cobra.Command, res bookmark.Resolved) error {
	if flags.jsonMode {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", res.State, res.Location)
	return nil
}

// readBookmarkFile loads bookmark bytes from disk and binds them to the
// tracker. Validation is deferred to the first resolve.
func readBookmarkFile(tr *tracker.Tracker, path string) (bookmark.Bookmark, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return bookmark.Bookmark{}, fmt.Errorf("read bookmark file: %w", err)
	}
	return bookmark.FromData(tr, profile(), raw, false)
}
