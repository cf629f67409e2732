package cmd

import (
	"context"
	"fmt"

	"github.com/gogotex/usergroups/internal/config"
	"github.com/gogotex/usergroups/internal/database"
	"github.com/gogotex/usergroups/internal/groups"
	"github.com/gogotex/usergroups/internal/users"
	"github.com/gogotex/usergroups/pkg/logger"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the unique indexes for the users and groups collections, then exit",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setUp()
		if err := ensureIndexes(context.Background(), cfg); err != nil {
			logger.Fatalf("%v", err)
		}
		logger.Infof("indexes ensured on database %q", cfg.MongoDB.Database)
	},
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}

func ensureIndexes(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, cfg.MongoDB.ConnectAttempts)
	if err != nil {
		return err
	}
	defer disconnect(client)
	return createIndexes(ctx, client.Database(cfg.MongoDB.Database))
}

func createIndexes(ctx context.Context, db *mongo.Database) error {
	if err := users.NewMongoRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := groups.NewMongoRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("groups indexes: %w", err)
	}
	return nil
}
