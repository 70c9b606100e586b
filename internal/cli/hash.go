package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/information-sharing-networks/certgw/internal/certhash"
)

var hashCmd = &cobra.Command{
	Use:   "hash <file>",
	Short: "Compute the certificate hash of a document",
	Long: `Compute the certificateHash to register for a certificate document.

JSON documents are canonicalized (RFC 8785) before hashing so that formatting changes do not alter the hash.
Use --raw to hash the file bytes as they are (e.g. for PDF certificates).

Example:
  certctl hash ./diploma.json
  certctl hash --alg sha256 --raw ./diploma.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runHash,
}

var (
	hashAlgorithm string
	hashRaw       bool
)

func init() {
	hashCmd.Flags().StringVar(&hashAlgorithm, "alg", string(certhash.Keccak256), "hash algorithm (keccak256 or sha256)")
	hashCmd.Flags().BoolVar(&hashRaw, "raw", false, "hash the file bytes without JSON canonicalization")
}

func runHash(cmd *cobra.Command, args []string) error {
	alg, err := certhash.ParseAlgorithm(hashAlgorithm)
	if err != nil {
		return err
	}

	hash, err := certhash.HashFile(args[0], alg, !hashRaw)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
