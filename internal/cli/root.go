package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/tessro/heimdall/internal/config"
	herrors "github.com/tessro/heimdall/internal/errors"
	"github.com/tessro/heimdall/internal/logging"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg    *config.Config
	logger *log.Logger
	logOut io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "heimdall",
	Short: "Search, queue and play music from the Heimdall backend",
	Long: `Heimdall is a terminal client for the Heimdall streaming backend.

It searches music across YouTube, SoundCloud and JioSaavn, keeps a
persistent play queue, plays streams through a local audio player and
fetches lyrics. Movie and TV browsing commands talk to the same backend.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return initLogger(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logOut != nil {
			_ = logOut.Close()
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.heimdallrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", herrors.ErrInvalidConfig, err)
	}

	return nil
}

// initLogger logs to the configured file, or stderr. The dashboard owns the
// terminal, so it always logs to a file.
func initLogger(cmd *cobra.Command) error {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}

	path := cfg.Log.File
	if path == "" && cmd == tuiCmd {
		dir, err := config.DataDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "heimdall.log")
	}

	var err error
	logger, logOut, err = logging.Open(path, level)
	if err != nil {
		return err
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, herrors.Format(err))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}
