package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/saltyorg/todo-api/internal/config"
	"github.com/saltyorg/todo-api/internal/database"
	"github.com/saltyorg/todo-api/internal/logging"
	"github.com/saltyorg/todo-api/internal/web"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	envFile   string
	verbosity int
)

func main() {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:   "todoapi",
		Short: "Todo API - JSON todo service",
		Long:  `Todo API serves create, read, update and delete operations over todos stored in PostgreSQL or SQLite.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(v)
		},
		SilenceUsage: true,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before reading the environment")
	flags.CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")
	flags.IntP("port", "p", 3000, "HTTP server port (or set PORT env var)")
	flags.StringP("bind", "b", "", "IP address to bind to (e.g., 127.0.0.1, 0.0.0.0)")
	flags.String("db-driver", config.DriverPostgres, "Database driver: postgres or sqlite (or set DB_DRIVER env var)")
	flags.String("db-path", "./todoapp.db", "SQLite database path (or set DB_PATH env var)")
	flags.String("log-file", "todoapi.log", "Log file path (or set LOG_FILE env var)")

	// Advanced timeout flags
	flags.Duration("request-timeout", config.DefaultTimeoutConfig().Request, "Timeout for a single request")
	flags.Duration("shutdown-timeout", config.DefaultTimeoutConfig().Shutdown, "How long in-flight requests may drain on shutdown")

	bindFlags(v, flags, map[string]string{
		"port":                  "port",
		"bind":                  "bind",
		"db.driver":             "db-driver",
		"db.path":               "db-path",
		"log.file":              "log-file",
		"http.request_timeout":  "request-timeout",
		"http.shutdown_timeout": "shutdown-timeout",
	})

	// Version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("todoapi %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bindFlags lets explicitly set flags override env vars and defaults
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

func run(v *viper.Viper) error {
	if err := config.LoadEnvFile(envFile); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	switch {
	case verbosity == 1:
		cfg.Log.Level = "debug"
	case verbosity >= 2:
		cfg.Log.Level = "trace"
	}

	// Setup logging
	logging.Apply(cfg.Log)

	event := log.Info().
		Str("version", version).
		Int("port", cfg.Port).
		Str("bind", cfg.Bind).
		Str("driver", cfg.Database.Driver)
	if cfg.Database.Driver == config.DriverSQLite {
		event = event.Str("database", cfg.Database.Path)
	} else {
		event = event.Str("database", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name))
	}
	event.Msg("Starting Todo API")

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		stats := db.Stats()
		log.Debug().
			Int("open", stats.OpenConnections).
			Int64("wait_count", stats.WaitCount).
			Dur("wait_duration", stats.WaitDuration).
			Msg("Closing database pool")
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	server := web.NewServer(db, cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	// Start server; returns once in-flight requests have drained
	if err := server.Start(ctx); err != nil {
		log.Error().Err(err).Msg("Server error")
		return err
	}

	log.Info().Msg("Todo API stopped")
	return nil
}
