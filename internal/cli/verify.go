package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/information-sharing-networks/certgw/internal/certificate"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Look up a certificate by id or hash",
	Long: `Read a certificate from the ledger and report whether it has been revoked.

When both --id and --hash are given the id is used.

Example:
  certctl verify --id 7
  certctl verify --hash 0x9c22...b658`,
	RunE: runVerify,
}

var (
	verifyID   string
	verifyHash string
)

func init() {
	verifyCmd.Flags().StringVar(&verifyID, "id", "", "certificate id")
	verifyCmd.Flags().StringVar(&verifyHash, "hash", "", "certificate hash")
	verifyCmd.MarkFlagsOneRequired("id", "hash")
}

func runVerify(cmd *cobra.Command, args []string) error {
	if _, err := certificate.ValidateVerification(certificate.VerificationInput{
		CertificateID:   verifyID,
		CertificateHash: verifyHash,
	}); err != nil {
		return err
	}

	resp, err := newClient().VerifyCertificate(cmd.Context(), verifyID, verifyHash)
	if err != nil {
		return describeError(cmd, err)
	}

	c := resp.Certificate
	fmt.Fprintf(cmd.OutOrStdout(), "certificate %s: %s\n", c.CertificateID, formatRevoked(c.Revoked))
	return printJSON(cmd.OutOrStdout(), c)
}

// formatRevoked renders the revoked flag for terminal output
func formatRevoked(revoked bool) string {
	if revoked {
		return color.RedString("revoked")
	}
	return color.GreenString("valid")
}
