package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vvka-141/pgcsv/internal/config"
	"github.com/vvka-141/pgcsv/internal/logging"
	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check that the database is reachable",
	Long: `Probe resolves the connection exactly like import, connects and runs SELECT 1.
Nothing is written.

Exits 0 when the server answers, 11 otherwise.`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

type probeFlagValues struct {
	conn           connectionFlags
	configPath     string
	timeout        time.Duration
	connectRetries int
}

var probeFlags probeFlagValues

func init() {
	rootCmd.AddCommand(probeCmd)

	addConnectionFlags(probeCmd, &probeFlags.conn)
	probeCmd.Flags().StringVar(&probeFlags.configPath, "config", "",
		"Path to the project config file (default: ./"+config.ConfigFileName+" if present)")
	probeCmd.Flags().DurationVar(&probeFlags.timeout, "timeout", 30*time.Second,
		"Probe timeout (0 = none)")
	_ = probeCmd.RegisterFlagCompletionFunc("config", completeConfigFiles)
	probeCmd.Flags().IntVar(&probeFlags.connectRetries, "connect-retries", pgcsv.DefaultRetryMaxAttempts,
		"Retries for transient connection failures")
}

func runProbe(cmd *cobra.Command, _ []string) error {
	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))

	projectCfg, err := loadProjectConfig(probeFlags.configPath)
	if err != nil {
		return err
	}
	connConfig, err := resolveConnection(probeFlags.conn, projectCfg)
	if err != nil {
		return err
	}
	logConnectionVerbose(logger, connConfig)
	if connConfig.AppName == "" {
		connConfig.AppName = "pgcsv"
	}

	timeout, err := resolveEffectiveTimeout(cmd, projectCfg, probeFlags.timeout)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	retries := resolveConnectRetries(cmd, projectCfg, probeFlags.connectRetries)
	if err := newImportService(logger).Probe(ctx, connConfig, retries); err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}
	return nil
}
