package certificate

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const sampleHash = "abc1230000000000000000000000000000000000000000000000000000000def"

func TestValidateIssuance(t *testing.T) {
	tests := []struct {
		name      string
		input     IssuanceInput
		wantHash  string
		wantField string
		wantMsg   string
	}{
		{
			name:     "hash without prefix is normalized",
			input:    IssuanceInput{StudentIdentifier: "S123", CertificateHash: sampleHash, MetadataURI: "ipfs://QmTest"},
			wantHash: "0x" + sampleHash,
		},
		{
			name:     "hash with prefix is kept",
			input:    IssuanceInput{StudentIdentifier: "S123", CertificateHash: "0x" + sampleHash, MetadataURI: "ipfs://QmTest"},
			wantHash: "0x" + sampleHash,
		},
		{
			name:      "missing everything reports identifier first",
			input:     IssuanceInput{},
			wantField: FieldStudentIdentifier,
			wantMsg:   "studentIdentifier is required and must be a non-empty string",
		},
		{
			name:      "blank identifier",
			input:     IssuanceInput{StudentIdentifier: "   ", CertificateHash: sampleHash, MetadataURI: "ipfs://QmTest"},
			wantField: FieldStudentIdentifier,
		},
		{
			name:      "numeric identifier",
			input:     IssuanceInput{StudentIdentifier: json.Number("123"), CertificateHash: sampleHash, MetadataURI: "ipfs://QmTest"},
			wantField: FieldStudentIdentifier,
		},
		{
			name:      "missing hash and uri reports hash",
			input:     IssuanceInput{StudentIdentifier: "S123"},
			wantField: FieldCertificateHash,
			wantMsg:   "certificateHash is required and must be a valid hex string (bytes32)",
		},
		{
			name:      "short hash",
			input:     IssuanceInput{StudentIdentifier: "S123", CertificateHash: "0xabc", MetadataURI: "ipfs://QmTest"},
			wantField: FieldCertificateHash,
			wantMsg:   "Invalid certificateHash format: Hash must be 32 bytes (64 hex characters)",
		},
		{
			name:      "non hex hash",
			input:     IssuanceInput{StudentIdentifier: "S123", CertificateHash: strings.Repeat("z", 64), MetadataURI: "ipfs://QmTest"},
			wantField: FieldCertificateHash,
			wantMsg:   "Invalid certificateHash format: Hash must contain only hex characters",
		},
		{
			name:      "missing uri",
			input:     IssuanceInput{StudentIdentifier: "S123", CertificateHash: sampleHash},
			wantField: FieldMetadataURI,
			wantMsg:   "metadataURI is required and must be a non-empty string (URL or IPFS CID)",
		},
		{
			name:      "blank uri",
			input:     IssuanceInput{StudentIdentifier: "S123", CertificateHash: sampleHash, MetadataURI: " \t"},
			wantField: FieldMetadataURI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ValidateIssuance(tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateIssuance() unexpected error: %v", err)
				}
				if req.CertificateHash != tt.wantHash {
					t.Errorf("CertificateHash = %q, want %q", req.CertificateHash, tt.wantHash)
				}
				if len(req.CertificateHash) != 66 || !strings.HasPrefix(req.CertificateHash, "0x") {
					t.Errorf("CertificateHash %q is not a 0x-prefixed bytes32", req.CertificateHash)
				}
				return
			}

			var certErr *CertError
			if !errors.As(err, &certErr) {
				t.Fatalf("expected *CertError, got %v", err)
			}
			if certErr.Code() != ErrCodeValidation {
				t.Errorf("Code() = %q, want %q", certErr.Code(), ErrCodeValidation)
			}
			if certErr.Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", certErr.Field(), tt.wantField)
			}
			if tt.wantMsg != "" && certErr.Message() != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", certErr.Message(), tt.wantMsg)
			}
		})
	}
}

func TestValidateIssuancePassesFieldsThrough(t *testing.T) {
	req, err := ValidateIssuance(IssuanceInput{
		StudentIdentifier: "S123",
		CertificateHash:   sampleHash,
		MetadataURI:       "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
	})
	if err != nil {
		t.Fatalf("ValidateIssuance() returned error: %v", err)
	}

	want := IssuanceRequest{
		StudentIdentifier: "S123",
		CertificateHash:   "0x" + sampleHash,
		MetadataURI:       "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
	}
	if req != want {
		t.Errorf("ValidateIssuance() = %+v, want %+v", req, want)
	}
}

func TestValidateRevocation(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		wantID  string
		wantErr bool
	}{
		{"string id", "7", "7", false},
		{"json number", json.Number("42"), "42", false},
		{"float64 integral", float64(3), "3", false},
		{"zero", "0", "0", false},
		{"large uint256 id", "115792089237316195423570985008687907853269984665640564039457584007913129639935", "115792089237316195423570985008687907853269984665640564039457584007913129639935", false},
		{"non numeric", "abc", "", true},
		{"json number with zero fraction", json.Number("7.0"), "7", false},
		{"json number in exponent form", json.Number("1e2"), "100", false},
		{"fractional", json.Number("1.5"), "", true},
		{"fractional exponent", json.Number("15e-1"), "", true},
		{"exponent too large", json.Number("1e400"), "", true},
		{"missing", nil, "", true},
		{"boolean", true, "", true},
		{"empty string", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ValidateRevocation(RevocationInput{CertificateID: tt.input})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateRevocation() expected error, got id %v", req.CertificateID)
				}
				var certErr *CertError
				if !errors.As(err, &certErr) || certErr.Field() != FieldCertificateID {
					t.Errorf("expected certificateId validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateRevocation() unexpected error: %v", err)
			}
			if req.CertificateID.String() != tt.wantID {
				t.Errorf("CertificateID = %s, want %s", req.CertificateID, tt.wantID)
			}
		})
	}
}

func TestValidateVerification(t *testing.T) {
	tests := []struct {
		name     string
		input    VerificationInput
		wantByID bool
		wantHash string
		wantMsg  string
	}{
		{
			name:    "neither supplied",
			input:   VerificationInput{},
			wantMsg: "Either certificateId or certificateHash query parameter is required",
		},
		{
			name:     "id only",
			input:    VerificationInput{CertificateID: "12"},
			wantByID: true,
		},
		{
			name:     "hash only",
			input:    VerificationInput{CertificateHash: sampleHash},
			wantHash: "0x" + sampleHash,
		},
		{
			name:     "both supplied, id takes precedence",
			input:    VerificationInput{CertificateID: "12", CertificateHash: sampleHash},
			wantByID: true,
			wantHash: "0x" + sampleHash,
		},
		{
			name:    "negative id",
			input:   VerificationInput{CertificateID: "-1"},
			wantMsg: "certificateId must be a valid non-negative integer",
		},
		{
			name:    "non numeric id",
			input:   VerificationInput{CertificateID: "abc"},
			wantMsg: "certificateId must be a valid non-negative integer",
		},
		{
			name:    "bad hash alongside good id",
			input:   VerificationInput{CertificateID: "1", CertificateHash: "0x1234"},
			wantMsg: "Invalid certificateHash format: Hash must be 32 bytes (64 hex characters)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ValidateVerification(tt.input)
			if tt.wantMsg != "" {
				var certErr *CertError
				if !errors.As(err, &certErr) {
					t.Fatalf("expected *CertError, got %v", err)
				}
				if certErr.Message() != tt.wantMsg {
					t.Errorf("Message() = %q, want %q", certErr.Message(), tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateVerification() unexpected error: %v", err)
			}
			if q.ByID() != tt.wantByID {
				t.Errorf("ByID() = %v, want %v", q.ByID(), tt.wantByID)
			}
			if q.CertificateHash != tt.wantHash {
				t.Errorf("CertificateHash = %q, want %q", q.CertificateHash, tt.wantHash)
			}
		})
	}
}
