// Root command for the drosera CLI.
package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CTAG07/Drosera/pkg/chaindb"
)

// Global flag values.
var (
	flagConfig   string
	flagDB       string
	flagLogLevel string
)

// Shared state initialized by PersistentPreRunE for all subcommands.
var (
	cfg    *viper.Viper
	logger *slog.Logger
	db     *sql.DB
	store  *chaindb.Store
)

var rootCmd = &cobra.Command{
	Use:   "drosera",
	Short: "Drosera trains and samples Markov chain text models",
	Long: `Drosera is a command line tool for first-order Markov chain text
models. It trains named chains from text files or stdin, keeps them in a
SQLite database, samples new text from them, and moves them between
databases as JSON snapshots.`,
	PersistentPreRunE: initStore,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ./drosera.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "chain database file (default: from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// initStore loads the configuration and opens the chain database.
func initStore(cmd *cobra.Command, args []string) error {
	// Version works without a database.
	if cmd.Name() == "version" {
		return nil
	}

	var err error
	cfg, err = loadConfig(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flagDB != "" {
		cfg.Set(cfgKeyDatabase, flagDB)
	}
	if flagLogLevel != "" {
		cfg.Set(cfgKeyLogLevel, flagLogLevel)
	}

	logger = setupLogger(cfg.GetString(cfgKeyLogLevel))

	db, err = initDB(cfg.GetString(cfgKeyDatabase))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err = chaindb.SetupSchema(db); err != nil {
		return fmt.Errorf("set up schema: %w", err)
	}

	store, err = chaindb.New(db)
	if err != nil {
		return fmt.Errorf("prepare store: %w", err)
	}
	store.SetLogger(logger)
	return nil
}

// closeStore releases the store and the database handle.
func closeStore() error {
	if store != nil {
		store.Close()
	}
	if db != nil {
		return db.Close()
	}
	return nil
}

// setupLogger builds a text logger on stderr at the configured level, so
// log lines never mix into generated output on stdout.
func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
