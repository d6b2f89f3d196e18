package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookhive/bookhive/internal/config"
	"github.com/bookhive/bookhive/internal/database"
	"github.com/bookhive/bookhive/internal/fetch"
	"github.com/bookhive/bookhive/internal/log"
	"github.com/bookhive/bookhive/internal/ratelimit"
	"github.com/bookhive/bookhive/internal/search"
	"github.com/bookhive/bookhive/internal/server"
	"github.com/bookhive/bookhive/internal/store"
	"github.com/bookhive/bookhive/internal/upstream"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const seedUserCount = 15

var (
	configFile string
	host       string
	port       int
	data       string

	rootCmd = &cobra.Command{
		Use:   "bookhive",
		Short: "Bookhive ingests catalog records from upstream providers and serves cached search",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setupConfig(); err != nil {
				return err
			}
			log.Logger = log.NewLogger()
			defer func() { _ = log.Logger.Sync() }()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			db, err := database.NewDB(config.Opts.DSN)
			if err != nil {
				log.Error("Error connecting to database", zap.Error(err))
				return err
			}
			defer db.Close()
			if err := database.Migrate(ctx, db); err != nil {
				log.Error("Error migrating database", zap.Error(err))
				return err
			}

			st := store.NewStore(db)
			if err := st.Ping(); err != nil {
				log.Error("Error pinging database", zap.Error(err))
				return err
			}
			if err := st.SeedUsers(seedUserCount); err != nil {
				log.Warn("Error seeding users", zap.Error(err))
			}

			httpClient := upstream.NewHTTPClient(config.Opts.UpstreamTimeout)
			catalog := upstream.NewGoogleBooks(
				upstream.GoogleBooksBaseURL,
				config.Opts.GoogleBooksAPIKey,
				httpClient,
			)
			library := upstream.NewOpenLibrary(
				upstream.OpenLibraryBaseURL,
				httpClient,
				ratelimit.New("OpenLibrary", config.Opts.OpenLibraryRateLimit),
			)

			orchestrator := fetch.NewOrchestrator(st, fetch.NewProgress(),
				fetch.NewGoogleSource(catalog),
				fetch.NewOpenLibrarySource(library))

			if err := orchestrator.SeedIfEmpty(ctx, config.Opts.SeedLimit); err != nil {
				// A fresh install without upstream access still serves an
				// empty catalog.
				log.Warn("Startup seed failed", zap.Error(err))
			}

			scheduler := fetch.NewScheduler(orchestrator,
				config.Opts.Subjects,
				config.Opts.MaxPerSubject,
				time.Duration(config.Opts.FetchIntervalHours)*time.Hour)
			go scheduler.Run(ctx)

			resolver, err := search.NewResolver(st, catalog,
				config.Opts.SearchCacheSize,
				config.Opts.SearchCacheTTL,
				config.Opts.SearchMaxResults)
			if err != nil {
				log.Error("Error creating search resolver", zap.Error(err))
				return err
			}

			srv := server.StartServer(st, resolver)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			log.Info("Shutting down")
			cancel()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			server.Shutdown(shutdownCtx, srv)
			return nil
		},
	}
)

func setupConfig() error {
	config.GetDefaultOptions()

	if configFile != "" {
		if _, err := config.ParseFile(configFile); err != nil {
			return err
		}
	}

	if host != "" {
		config.Opts.Host = host
	}
	if port != 0 {
		config.Opts.Port = port
	}
	if data != "" {
		config.Opts.Data = data
	}

	_, err := config.GetConfig()
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "host to listen on")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "port to listen on")
	rootCmd.PersistentFlags().StringVar(&data, "data", "", "data directory")
	rootCmd.SilenceUsage = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
