package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/expense-track/internal/cli"
	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/config"
)

var version = "dev"

// rootOptions carries the resolved configuration to every subcommand.
type rootOptions struct {
	v        *viper.Viper
	settings config.Settings
	cfgFile  string
	envFile  string
}

func newRootCmd() *cobra.Command {
	rt := &rootOptions{v: viper.New()}
	config.SetDefaults(rt.v)

	rootCmd := &cobra.Command{
		Use:   "track",
		Short: "Personal income and expense tracker",
		Long: `track records income and expenses, imports bank exports (CSV, OFX, QFX),
keeps category budgets up to date and summarizes where the money went.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.initConfig(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rt.cfgFile, "config", "", "config file (default: $HOME/.config/track/config.yaml)")
	flags.StringVar(&rt.envFile, "env-file", ".env", "environment file loaded before reading TRACK_* variables")
	flags.String("db", "", "database file (default: $HOME/.local/share/track/track.db)")
	flags.String("currency", "", "ISO currency code used for display")
	flags.Bool("no-seed", false, "start an empty database without default categories and accounts")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")

	_ = rt.v.BindPFlag(config.KeyDatabasePath, flags.Lookup("db"))
	_ = rt.v.BindPFlag(config.KeyCurrency, flags.Lookup("currency"))
	_ = rt.v.BindPFlag(config.KeyNoSeed, flags.Lookup("no-seed"))
	_ = rt.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = rt.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	rootCmd.AddCommand(transactionsCmd(rt))
	rootCmd.AddCommand(categoriesCmd(rt))
	rootCmd.AddCommand(budgetsCmd(rt))
	rootCmd.AddCommand(accountsCmd(rt))
	rootCmd.AddCommand(importCmd(rt))
	rootCmd.AddCommand(summaryCmd(rt))
	rootCmd.AddCommand(checkpointCmd(rt))
	rootCmd.AddCommand(resetCmd(rt))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := execute(ctx, newRootCmd())
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		os.Exit(1)
	}
}

// execute runs the command tree and logs a failing command before the caller
// reports it.
func execute(ctx context.Context, rootCmd *cobra.Command) error {
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		if cmd == nil {
			cmd = rootCmd
		}
		common.LogError(err, "command failed", common.Fields{"command": cmd.CommandPath()})
	}
	return err
}

func (rt *rootOptions) initConfig(w io.Writer) error {
	if rt.envFile != "" {
		if err := config.LoadDotEnv(rt.envFile); err != nil {
			return err
		}
	}

	if rt.cfgFile != "" {
		rt.v.SetConfigFile(rt.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		rt.v.AddConfigPath(filepath.Join(home, ".config", "track"))
		rt.v.AddConfigPath(".")
		rt.v.SetConfigName("config")
		rt.v.SetConfigType("yaml")
	}

	rt.v.SetEnvPrefix("TRACK")
	rt.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	rt.v.AutomaticEnv()

	if err := rt.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	settings, err := config.FromViper(rt.v)
	if err != nil {
		return err
	}
	rt.settings = settings

	if err := setupLogging(w, settings); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	return nil
}

func setupLogging(w io.Writer, settings config.Settings) error {
	level, err := common.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	return common.SetupLogger(w, level, settings.LogFormat)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "track %s\n", version)
		},
	}
}
