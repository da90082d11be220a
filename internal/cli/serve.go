package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mvidal/strata/internal/server"
	"github.com/mvidal/strata/pkg/cache"
	"github.com/mvidal/strata/pkg/pipeline"
	"github.com/mvidal/strata/pkg/store"
)

type serveOptions struct {
	addr          string
	redisAddr     string
	redisPassword string
	redisDB       int
	mongoURI      string
	mongoDatabase string
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the classification HTTP API",
		Long: `Serve starts the HTTP API. Without --redis the layering cache is kept
on disk; without --mongo classification documents live in memory and are
lost on restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", os.Getenv("STRATA_REDIS_ADDR"), "redis address for the layering cache")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", os.Getenv("STRATA_REDIS_PASSWORD"), "redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "redis database number")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", os.Getenv("STRATA_MONGO_URI"), "mongodb uri for classification persistence")
	cmd.Flags().StringVar(&opts.mongoDatabase, "mongo-db", "strata", "mongodb database name")

	return cmd
}

func runServe(ctx context.Context, opts *serveOptions) error {
	logger := loggerFromContext(ctx)

	var c cache.Cache
	if opts.redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, opts.redisAddr, opts.redisPassword, opts.redisDB)
		if err != nil {
			return err
		}
		c = rc
		logger.Info("using redis cache", "addr", opts.redisAddr)
	} else {
		c = openCache(logger, false)
	}
	defer c.Close()

	var st store.Store
	if opts.mongoURI != "" {
		ms, err := store.NewMongoStore(ctx, opts.mongoURI, opts.mongoDatabase)
		if err != nil {
			return err
		}
		st = ms
		logger.Info("using mongodb store", "database", opts.mongoDatabase)
	} else {
		st = store.NewMemoryStore()
		logger.Warn("no --mongo configured, classifications are kept in memory")
	}
	defer st.Close(context.Background())

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           server.New(pipeline.NewRunner(c, logger), st, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
