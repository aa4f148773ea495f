package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vvka-141/pgcsv/internal/config"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// loadProjectConfig loads .env into the environment and then the project config.
// Without --config, a missing pgcsv.yaml in the working directory is not an
// error and yields an empty config; a --config path must exist.
func loadProjectConfig(configPath string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	var (
		projectCfg *config.ProjectConfig
		err        error
	)
	if configPath != "" {
		projectCfg, err = config.LoadFile(configPath)
	} else {
		projectCfg, err = config.Load(".")
	}

	switch {
	case err == nil:
		return projectCfg, nil
	case errors.Is(err, config.ErrConfigNotFound) && configPath == "":
		return &config.ProjectConfig{}, nil
	case errors.Is(err, config.ErrConfigNotFound):
		return nil, fmt.Errorf("config file %s not found: %w", configPath, pgcsv.ErrInvalidConfig)
	default:
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
}

// resolveEffectiveTimeout returns the effective timeout, preferring pgcsv.yaml if flag wasn't set.
func resolveEffectiveTimeout(cmd *cobra.Command, projectCfg *config.ProjectConfig, flagTimeout time.Duration) (time.Duration, error) {
	if cmd.Flags().Changed("timeout") {
		return flagTimeout, nil
	}
	if projectCfg != nil && projectCfg.Timeout != "" {
		return projectCfg.TimeoutDuration()
	}
	return flagTimeout, nil
}

// resolveConnectRetries returns the connection retry count, preferring pgcsv.yaml if flag wasn't set.
func resolveConnectRetries(cmd *cobra.Command, projectCfg *config.ProjectConfig, flagRetries int) int {
	if !cmd.Flags().Changed("connect-retries") && projectCfg != nil && projectCfg.ConnectRetries != nil {
		return *projectCfg.ConnectRetries
	}
	return flagRetries
}

// stringOption returns the flag value when the flag was set, else the
// file value when present, else the flag default.
func stringOption(cmd *cobra.Command, name, flagValue, fileValue string) string {
	if cmd.Flags().Changed(name) || fileValue == "" {
		return flagValue
	}
	return fileValue
}

func intOption(cmd *cobra.Command, name string, flagValue, fileValue int) int {
	if cmd.Flags().Changed(name) || fileValue == 0 {
		return flagValue
	}
	return fileValue
}

func boolOption(cmd *cobra.Command, name string, flagValue bool, fileValue *bool) bool {
	if cmd.Flags().Changed(name) || fileValue == nil {
		return flagValue
	}
	return *fileValue
}
