package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/filemark/internal/paths"
	"github.com/mesh-intelligence/filemark/internal/tracker"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	DataDir string `yaml:"data_dir,omitempty"`
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the filemark index",
		Long:  "Create configuration and data directories, then initialize the location index.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	dataDir := flags.dataDir
	if dataDir == "" {
		dataDir = loadDataDirFromConfig(configDir)
	}
	if dataDir == "" {
		dataDir, err = paths.ResolveDataDir("", "")
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	configPath := filepath.Join(configDir, configFileExt)
	if err := writeConfigIfMissing(configPath, dataDir); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	// Initialize the data directory via Attach then Detach.
	tr := tracker.New(tracker.WithLogger(newLogger()))
	if err := tr.Attach(tracker.Config{DataDir: dataDir}); err != nil {
		return fmt.Errorf("initialize index: %w", err)
	}
	if err := tr.Detach(); err != nil {
		return fmt.Errorf("finalize index: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Filemark initialized successfully")
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the
// file does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	data, err := yaml.Marshal(&configFile{DataDir: dataDir})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// loadDataDirFromConfig reads data_dir from an existing config.yaml.
// Returns empty string if the file does not exist or cannot be read.
func loadDataDirFromConfig(configDir string) string {
	data, err := os.ReadFile(filepath.Join(configDir, configFileExt))
	if err != nil {
		return ""
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ""
	}
	return cfg.DataDir
}
