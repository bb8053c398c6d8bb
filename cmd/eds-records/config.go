// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/eds-records/pkg/types"
)

func setDefaults() {
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "text")

	viper.SetDefault("normalize.workers", 4)

	viper.SetDefault("fetch.timeout", "30s")
	viper.SetDefault("fetch.user_agent", "eds-records/"+version)
	viper.SetDefault("fetch.max_retries", 5)
	viper.SetDefault("fetch.secrets_dir", ".secrets/")

	viper.SetDefault("index.path", "eds-records.db")
	viper.SetDefault("index.max_results", 20)

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.max_body_bytes", 8<<20)
}

// bindFlag ties a configuration key to a flag; a flag set on the command
// line wins over the config file and environment.
func bindFlag(key string, f *pflag.Flag) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

func normalizeConfig() types.NormalizeConfig {
	return types.NormalizeConfig{
		RestrictedTitle: viper.GetString("normalize.restricted_title"),
		Workers:         viper.GetInt("normalize.workers"),
	}
}

func fetchConfig() types.FetchConfig {
	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("fetch.timeout"),
			UserAgent: viper.GetString("fetch.user_agent"),
		},
		MaxRetries: viper.GetInt("fetch.max_retries"),
		SecretsDir: viper.GetString("fetch.secrets_dir"),
	}
}

func indexConfig() types.IndexConfig {
	return types.IndexConfig{
		Path:       viper.GetString("index.path"),
		MaxResults: viper.GetInt("index.max_results"),
	}
}

func serverConfig() types.ServerConfig {
	return types.ServerConfig{
		Addr:         viper.GetString("server.addr"),
		AllowOrigins: viper.GetStringSlice("server.allow_origins"),
		MaxBodyBytes: viper.GetInt64("server.max_body_bytes"),
	}
}
