package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"health"},
	Short:   "Check the gateway and its ledger connection",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()

		health, err := c.Health(cmd.Context())
		if err != nil {
			return describeError(cmd, err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ gateway %s is %s\n", cfg.GatewayURL, health.Status)
		fmt.Fprintf(out, "  contract:     %s\n", health.ContractAddress)
		fmt.Fprintf(out, "  college:      %s\n", health.CollegeAddress)
		fmt.Fprintf(out, "  certificates: %s\n", health.TotalCertificates)

		// older gateways may not serve /version
		if v, err := c.Version(cmd.Context()); err == nil {
			fmt.Fprintf(out, "  version:      %s (built %s)\n", v.Version, v.BuildTime)
		}
		return nil
	},
}
