package cli

import (
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/information-sharing-networks/certgw/internal/api"
	"github.com/information-sharing-networks/certgw/internal/certhash"
	"github.com/information-sharing-networks/certgw/internal/certificate"
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a certificate",
	Long: `Register a certificate on the ledger and wait for the transaction to be confirmed.

The certificate hash can be given directly with --hash or computed from a document with --document.

Example:
  certctl issue --student S123 --hash 0x9c22...b658 --metadata-uri ipfs://Qm...
  certctl issue --student S123 --document ./diploma.json --metadata-uri ipfs://Qm...`,
	RunE: runIssue,
}

var (
	issueStudent     string
	issueHash        string
	issueDocument    string
	issueMetadataURI string
	issueAlgorithm   string
)

func init() {
	issueCmd.Flags().StringVar(&issueStudent, "student", "", "student identifier (required)")
	issueCmd.Flags().StringVar(&issueHash, "hash", "", "certificate hash, 32 bytes hex encoded")
	issueCmd.Flags().StringVar(&issueDocument, "document", "", "certificate document to hash instead of --hash")
	issueCmd.Flags().StringVar(&issueMetadataURI, "metadata-uri", "", "metadata URI (required)")
	issueCmd.Flags().StringVar(&issueAlgorithm, "alg", string(certhash.Keccak256), "hash algorithm used with --document")
	issueCmd.MarkFlagRequired("student")
	issueCmd.MarkFlagRequired("metadata-uri")
	issueCmd.MarkFlagsMutuallyExclusive("hash", "document")
	issueCmd.MarkFlagsOneRequired("hash", "document")
}

func runIssue(cmd *cobra.Command, args []string) error {
	hash := issueHash
	if issueDocument != "" {
		alg, err := certhash.ParseAlgorithm(issueAlgorithm)
		if err != nil {
			return err
		}
		hash, err = certhash.HashFile(issueDocument, alg, true)
		if err != nil {
			return err
		}
		appLogger.Info("computed certificate hash",
			slog.String("document", issueDocument),
			slog.String("certificate_hash", hash),
		)
	}

	// catch input errors before waiting on the gateway
	req, err := certificate.ValidateIssuance(certificate.IssuanceInput{
		StudentIdentifier: issueStudent,
		CertificateHash:   hash,
		MetadataURI:       issueMetadataURI,
	})
	if err != nil {
		return err
	}

	resp, err := newClient().IssueCertificate(cmd.Context(), api.IssueCertificateRequest{
		StudentIdentifier: req.StudentIdentifier,
		CertificateHash:   req.CertificateHash,
		MetadataURI:       req.MetadataURI,
	})
	if err != nil {
		return describeError(cmd, err)
	}

	if resp.CertificateID != nil {
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ certificate %s issued in block %d\n", *resp.CertificateID, resp.BlockNumber)
	} else {
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "⚠ transaction %s confirmed but no certificate id was reported\n", resp.TxHash)
	}
	return printJSON(cmd.OutOrStdout(), resp)
}
