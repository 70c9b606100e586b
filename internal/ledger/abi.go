package ledger

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed abi/CertificateRegistry.json
var registryArtifact []byte

// contract method, event and error names used by the gateway
const (
	methodIssueCertificate         = "issueCertificate"
	methodRevokeCertificate        = "revokeCertificate"
	methodGetCertificate           = "getCertificate"
	methodGetCertificateByHash     = "getCertificateByHash"
	methodDoesCertificateExist     = "doesCertificateExist"
	methodDoesCertificateHashExist = "doesCertificateHashExist"
	methodGetTotalCertificates     = "getTotalCertificates"

	EventCertificateIssued  = "CertificateIssued"
	EventCertificateRevoked = "CertificateRevoked"
)

// requiredMethods must be present in any ABI the gateway is started with
var requiredMethods = []string{
	methodIssueCertificate,
	methodRevokeCertificate,
	methodGetCertificate,
	methodGetCertificateByHash,
	methodDoesCertificateExist,
	methodDoesCertificateHashExist,
	methodGetTotalCertificates,
}

// LoadABI reads the certificate registry interface description.
//
// The file may contain either a plain ABI array or a compiler artifact (Hardhat, Foundry)
// with the ABI nested under an "abi" key. An empty path loads the embedded registry ABI.
func LoadABI(path string) (abi.ABI, error) {
	data := registryArtifact
	if path != "" {
		var err error
		data, err = os.ReadFile(path) // #nosec G304 -- path comes from operator configuration
		if err != nil {
			return abi.ABI{}, fmt.Errorf("failed to read ABI file %s: %w", path, err)
		}
	}

	parsed, err := ParseABI(data)
	if err != nil {
		return abi.ABI{}, err
	}

	for _, name := range requiredMethods {
		if _, ok := parsed.Methods[name]; !ok {
			return abi.ABI{}, fmt.Errorf("ABI is missing required method %q", name)
		}
	}

	return parsed, nil
}

// ParseABI parses a plain ABI array or an artifact with a nested "abi" key.
func ParseABI(data []byte) (abi.ABI, error) {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 {
		return abi.ABI{}, fmt.Errorf("ABI is empty")
	}

	if raw[0] == '{' {
		var artifact struct {
			ABI json.RawMessage `json:"abi"`
		}
		if err := json.Unmarshal(raw, &artifact); err != nil {
			return abi.ABI{}, fmt.Errorf("failed to parse ABI artifact: %w", err)
		}
		if len(artifact.ABI) == 0 {
			return abi.ABI{}, fmt.Errorf("ABI artifact has no \"abi\" key")
		}
		raw = artifact.ABI
	}

	parsed, err := abi.JSON(bytes.NewReader(raw))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return parsed, nil
}
