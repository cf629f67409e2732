package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogotex/usergroups/handlers"
	"github.com/gogotex/usergroups/internal/cache"
	"github.com/gogotex/usergroups/internal/config"
	"github.com/gogotex/usergroups/internal/database"
	"github.com/gogotex/usergroups/internal/document/repository"
	"github.com/gogotex/usergroups/internal/document/service"
	"github.com/gogotex/usergroups/internal/groups"
	"github.com/gogotex/usergroups/internal/users"
	"github.com/gogotex/usergroups/pkg/logger"
	"github.com/gogotex/usergroups/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

const shutdownTimeout = 10 * time.Second

var useMemory bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for the users and groups API",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := setUp()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := serve(ctx, cfg); err != nil {
			logger.Fatalf("%v", err)
		}
	},
}

func init() {
	serveCmd.Flags().BoolVar(&useMemory, "memory", false,
		"keep users and groups in process memory instead of MongoDB")
	rootCmd.AddCommand(serveCmd)
}

// serve wires storage, cache and metrics into the router and blocks until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config) error {
	checks := map[string]handlers.Check{}

	var userRepo, groupRepo repository.Repository
	if useMemory {
		logger.Warn("using in-memory storage; data is lost on exit")
		userRepo, groupRepo = users.NewMemoryRepository(), groups.NewMemoryRepository()
	} else {
		if err := cfg.Validate(); err != nil {
			return err
		}
		client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, cfg.MongoDB.ConnectAttempts)
		if err != nil {
			return err
		}
		defer disconnect(client)
		logger.Infof("connected to MongoDB database %q", cfg.MongoDB.Database)

		db := client.Database(cfg.MongoDB.Database)
		ur, gr := users.NewMongoRepository(db), groups.NewMongoRepository(db)
		for _, r := range []*repository.MongoRepo{ur, gr} {
			if err := r.EnsureIndexes(ctx); err != nil {
				return err
			}
		}
		userRepo, groupRepo = ur, gr
		checks["mongodb"] = database.Pinger(client)
	}

	var userOpts, groupOpts []service.Option
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis unavailable at %s, serving without cache: %v", cfg.Redis.Addr(), err)
		} else {
			logger.Infof("caching get-by-id lookups in redis %s (ttl %s)", cfg.Redis.Addr(), cfg.Cache.TTL)
			userOpts = append(userOpts, service.WithCache(cache.NewRedisCache(rdb, users.Schema.Collection+":", cfg.Cache.TTL)))
			groupOpts = append(groupOpts, service.WithCache(cache.NewRedisCache(rdb, groups.Schema.Collection+":", cfg.Cache.TTL)))
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterCollectors(reg)

	r := handlers.NewRouter(handlers.Deps{
		Users:    users.NewService(userRepo, userOpts...),
		Groups:   groups.NewService(groupRepo, groupOpts...),
		Checks:   checks,
		Gatherer: reg,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s (%s)", srv.Addr, cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logger.Warnf("mongo disconnect: %v", err)
	}
}
