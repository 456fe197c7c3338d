// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rna CLI, a client for the RNA
// (Registre National des Associations) full-text search API.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/rna/internal/logging"
	"github.com/pdiddy/rna/internal/rna"
	"github.com/pdiddy/rna/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	logger    = slog.New(slog.DiscardHandler)
	logCloser io.Closer
)

// rootCmd is the base command for the rna CLI.
var rootCmd = &cobra.Command{
	Use:   "rna",
	Short: "Search the French national registry of associations",
	Long: `rna queries the RNA (Registre National des Associations) full-text search
API, prints the matching associations, and can export a page of results to
CSV, save it as a YAML query file, or keep it in a local SQLite archive.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := logConfig()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			cfg.Level = "debug"
		}
		l, closer, err := logging.New(cfg, os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		logCloser = closer
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", "path", used)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rna.yaml or ~/.config/rna/rna.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rna"
	}
	return filepath.Join(home, ".config", "rna")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rna")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(configDir())
	}

	viper.SetDefault("endpoint", rna.DefaultBaseURL)
	viper.SetDefault("user_agent", "rna/"+version)
	viper.SetDefault("archive.path", filepath.Join(configDir(), "archive.db"))
	viper.SetDefault("archive.max_results", 50)
	viper.SetDefault("logging.level", "warn")
	viper.SetDefault("logging.max_size", 10)
	viper.SetDefault("logging.max_files", 5)

	viper.SetEnvPrefix("RNA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

func clientConfig() types.ClientConfig {
	return types.ClientConfig{
		BaseURL:   viper.GetString("endpoint"),
		UserAgent: viper.GetString("user_agent"),
	}
}

func archiveConfig() types.ArchiveConfig {
	return types.ArchiveConfig{
		Path:       viper.GetString("archive.path"),
		MaxResults: viper.GetInt("archive.max_results"),
	}
}

func logConfig() types.LogConfig {
	return types.LogConfig{
		Level:    viper.GetString("logging.level"),
		File:     viper.GetString("logging.file"),
		MaxSize:  viper.GetInt("logging.max_size"),
		MaxFiles: viper.GetInt("logging.max_files"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
