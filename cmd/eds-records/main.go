// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the eds-records CLI. It normalizes
// raw discovery-service results into flat attribute records, keeps them in
// a local index, and serves both over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/eds-records/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds tokens loaded from the secrets directory at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the eds-records CLI.
var rootCmd = &cobra.Command{
	Use:   "eds-records",
	Short: "Normalize discovery-service results into flat records",
	Long: `eds-records turns raw retrieve and search responses from a discovery
service into flat attribute records: identity key, titles, authors,
identifiers, dates and full-text links.

Records can be written as JSON, a Solr-style envelope, YAML, CSL or a
plain table, stored in a local SQLite index, and served over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(); err != nil {
			return err
		}
		s, err := secrets.Load(viper.GetString("fetch.secrets_dir"), logrus.StandardLogger())
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logrus.WithField("keys", keys).Debug("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./eds-records.yaml or ~/.config/eds-records/eds-records.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("secrets-dir", ".secrets/", "directory of token files sent when fetching")
	pf.String("index-path", "eds-records.db", "SQLite index file")
	pf.Int("workers", 0, "concurrent record construction (0 = default)")
	pf.String("restricted-title", "", "title for records whose title is hidden from guests")

	bindFlag("log_level", pf.Lookup("log-level"))
	bindFlag("log_format", pf.Lookup("log-format"))
	bindFlag("fetch.secrets_dir", pf.Lookup("secrets-dir"))
	bindFlag("index.path", pf.Lookup("index-path"))
	bindFlag("normalize.workers", pf.Lookup("workers"))
	bindFlag("normalize.restricted_title", pf.Lookup("restricted-title"))

	setDefaults()
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("eds-records")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "eds-records"))
		}
	}

	viper.SetEnvPrefix("EDS_RECORDS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setupLogging configures the standard logrus logger from configuration.
func setupLogging() error {
	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	switch format := viper.GetString("log_format"); format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unsupported log format %q: use text or json", format)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
