// Package viper loads pipeline configuration from YAML files and
// environment variables.
package viper

import (
	"errors"
	"io/fs"

	"github.com/fwojciec/ragsearch"
	"github.com/fwojciec/ragsearch/gemini"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides, so
// RAGSEARCH_TOP_K overrides top_k.
const EnvPrefix = "RAGSEARCH"

// Load reads configuration with priority: environment variables, then the
// config file at path, then defaults. A missing file is not an error; a
// malformed one is. An empty path searches the current directory for
// ragsearch.yaml.
func Load(path string) (*ragsearch.Config, error) {
	v := viper.New()

	// Keys without a meaningful default still need registering so
	// AutomaticEnv reaches them during Unmarshal.
	v.SetDefault("results_base_dir", ragsearch.DefaultResultsBaseDir)
	v.SetDefault("pages_dir", "")
	v.SetDefault("db_path", "")
	v.SetDefault("top_k", ragsearch.DefaultTopK)
	v.SetDefault("max_depth", ragsearch.DefaultMaxDepth)
	v.SetDefault("web_search", false)
	v.SetDefault("search_limit", ragsearch.DefaultSearchLimit)
	v.SetDefault("model", gemini.DefaultModel)
	v.SetDefault("extractor", ragsearch.DefaultExtractor)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ragsearch")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// No config file in the search path; defaults apply.
		case errors.Is(err, fs.ErrNotExist):
			// Explicit path does not exist; defaults apply.
		default:
			return nil, ragsearch.Errorf(ragsearch.EINVALID, "read config: %v", err)
		}
	}

	var cfg ragsearch.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ragsearch.Errorf(ragsearch.EINVALID, "parse config: %v", err)
	}
	return &cfg, nil
}
