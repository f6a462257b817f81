package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/misterclayt0n/myfitlist/internal/config"
	"github.com/misterclayt0n/myfitlist/internal/logging"
	"github.com/misterclayt0n/myfitlist/internal/storage"
	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:          "myfitlist",
	Short:        "Weekly workout plans from the command line",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logging.Setup(logging.Params{
			LogFileName:   cfg.Log.File,
			LogToStdout:   cfg.Log.ToStdout,
			LogLevel:      cfg.Log.Level,
			LogFormatJSON: cfg.Log.FormatJSON,
		})
		return nil
	},
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func openStorage(ctx context.Context) (*storage.Storage, error) {
	st, err := storage.Open(ctx, cfg.DB.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return st, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/myfitlist/config.toml)")
}
