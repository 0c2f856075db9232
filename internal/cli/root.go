// Package cli wires configuration, storage and the HTTP server behind cobra commands.
package cli

import (
	"context"
	"fmt"
	"io"

	"car-auction/internal/config"
	"car-auction/internal/repository"
	"car-auction/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	envFile string
	dbPath  string
}

// NewRootCommand builds the car-auction command tree writing user output to out
func NewRootCommand(out io.Writer) *cobra.Command {
	globals := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "car-auction",
		Short:         "Car auction bidding API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(out)

	cmd.PersistentFlags().StringVar(&globals.envFile, "env-file", ".env", "Optional dotenv file applied before reading the environment")
	cmd.PersistentFlags().StringVar(&globals.dbPath, "db", "", "SQLite database path (overrides DATABASE_PATH)")

	cmd.AddCommand(newServeCommand(globals))
	cmd.AddCommand(newInitDBCommand(out, globals))
	return cmd
}

// loadConfig reads settings and applies the ones every command shares
func loadConfig(globals *globalOptions) (*config.Config, error) {
	cfg, err := config.Load(globals.envFile)
	if err != nil {
		return nil, err
	}
	if globals.dbPath != "" {
		cfg.DatabasePath = globals.dbPath
	}

	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	switch cfg.GinMode {
	case "":
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.GinMode)
	default:
		return nil, fmt.Errorf("invalid GIN_MODE %q", cfg.GinMode)
	}
	return cfg, nil
}

// openStore opens the database and makes sure the schema exists
func openStore(ctx context.Context, cfg *config.Config) (*repository.SQLStore, error) {
	store, err := repository.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := store.Initialize(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	utils.Info("connected to SQLite database", map[string]any{"path": store.Path()})
	return store, nil
}
