package cmd

import (
	"fmt"

	"github.com/abhisek/lingua/internal/app"
	"github.com/abhisek/lingua/internal/config"
	"github.com/spf13/cobra"
)

// runApp loads configuration and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if server, _ := cmd.Flags().GetString("server"); server != "" {
		cfg.ServerURL = server
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}

	return app.Run(app.Options{
		Config:  cfg,
		DBPath:  dbPath,
		Version: version,
	})
}

// loadConfig resolves the config path from the --config flag, then the
// usual lookup chain.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return config.Config{}, fmt.Errorf("resolve config path: %w", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
