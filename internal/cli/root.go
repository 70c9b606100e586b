package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/information-sharing-networks/certgw/internal/client"
	"github.com/information-sharing-networks/certgw/internal/config"
	"github.com/information-sharing-networks/certgw/internal/logger"
	"github.com/information-sharing-networks/certgw/internal/version"
)

var (
	cfg       *config.ClientEnvironment
	appLogger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:               "certctl",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "Certificate gateway CLI",
	Long: `certctl issues, verifies and revokes certificates through a running certificate gateway.

The gateway address is read from CERTGW_URL (default http://localhost:8080).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.NewClientConfig()
		if err != nil {
			log.Printf("failed to load configuration: %v", err.Error())
			return err
		}

		appLogger = logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
		return nil
	},
}

func Execute() {
	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(issueCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(revokeCmd)
	rootCmd.AddCommand(statusCmd)
}

func newClient() *client.Client {
	appLogger.Debug("using gateway", slog.String("url", cfg.GatewayURL))
	return client.New(cfg.GatewayURL, cfg.ClientTimeout)
}

// printJSON writes v to out as indented JSON
func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describeError adds the gateway's error details to err when there are any
func describeError(cmd *cobra.Command, err error) error {
	var respErr *client.ResponseError
	if errors.As(err, &respErr) {
		color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "✗ %s\n", respErr.Message)
		if respErr.Details != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "  details: %s\n", respErr.Details)
		}
		if respErr.RequestID != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "  request id: %s\n", respErr.RequestID)
		}
	}
	return err
}
