package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/information-sharing-networks/certgw/internal/certificate"
)

var revokeCmd = &cobra.Command{
	Use:   "revoke <certificate-id>",
	Short: "Revoke a certificate",
	Long: `Mark a certificate as revoked on the ledger. Revocation cannot be undone.

Example:
  certctl revoke 7`,
	Args: cobra.ExactArgs(1),
	RunE: runRevoke,
}

func runRevoke(cmd *cobra.Command, args []string) error {
	req, err := certificate.ValidateRevocation(certificate.RevocationInput{CertificateID: args[0]})
	if err != nil {
		return err
	}

	resp, err := newClient().RevokeCertificate(cmd.Context(), req.CertificateID.String())
	if err != nil {
		return describeError(cmd, err)
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ certificate %s revoked in block %d\n", req.CertificateID, resp.BlockNumber)
	return printJSON(cmd.OutOrStdout(), resp)
}
