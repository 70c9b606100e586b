package certificate

import "strings"

// failureConditions maps the registry contract's revert condition names to client messages.
// Entries are checked in order and the first condition found in the raw message wins.
var failureConditions = []struct {
	condition string
	message   string
}{
	{"InvalidStudentIdentifier", "Invalid student identifier provided"},
	{"InvalidCertificateHash", "Invalid certificate hash provided"},
	{"InvalidMetadataURI", "Invalid metadata URI provided"},
	{"CertificateHashAlreadyExists", "A certificate with this hash already exists"},
	{"CertificateDoesNotExist", "Certificate does not exist"},
	{"CertificateAlreadyRevoked", "Certificate is already revoked"},
	{"OnlyCollegeAllowed", "Only the college wallet can perform this action"},
}

// TranslateLedgerError maps a raw ledger failure message to a stable message.
//
// This is a best effort substring match: messages that do not mention a known
// failure condition are returned unchanged.
func TranslateLedgerError(raw string) string {
	for _, fc := range failureConditions {
		if strings.Contains(raw, fc.condition) {
			return fc.message
		}
	}
	return raw
}

// FailureConditions returns the known failure condition names in match order.
func FailureConditions() []string {
	names := make([]string, len(failureConditions))
	for i, fc := range failureConditions {
		names[i] = fc.condition
	}
	return names
}
