package cmd

import (
	"fmt"
	"os"

	"github.com/gogotex/usergroups/internal/config"
	"github.com/gogotex/usergroups/pkg/logger"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "usergroups",
	Short: "User and group CRUD API",
	Long:  `usergroups serves create/read/update/delete endpoints for users and groups backed by MongoDB.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"overrides LOG_LEVEL (debug|info|warn|error|fatal)")
}

// setUp loads configuration and initialises logging for a subcommand.
func setUp() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	logger.Init(cfg.Log.Level)
	logger.SetOutput(os.Stdout, cfg.Log.Format == "console")
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())
	return cfg
}
