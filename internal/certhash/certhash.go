// Package certhash derives the certificateHash recorded on the ledger from a certificate document.
//
// JSON documents are canonicalized per RFC 8785 before hashing, so the same certificate always
// produces the same hash regardless of key order or whitespace. Other documents (e.g. a PDF) are hashed as is.
// this implementation uses the gowebpki/jcs library to perform the canonicalization
package certhash

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gowebpki/jcs"
)

type Algorithm string

const (
	// Keccak256 is the default; it is the hash function used natively by the ledger
	Keccak256 Algorithm = "keccak256"
	SHA256    Algorithm = "sha256"
)

// ParseAlgorithm converts a hash algorithm name to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case Keccak256, "":
		return Keccak256, nil
	case SHA256:
		return SHA256, nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm %q (use keccak256 or sha256)", name)
	}
}

// CanonicalizeJSON converts JSON to canonical form per RFC 8785
//
// If the input is not valid JSON, an error is returned (handled by jcs library).
func CanonicalizeJSON(jsonData []byte) ([]byte, error) {
	return jcs.Transform(jsonData)
}

// Sum hashes data and returns the 0x-prefixed hex digest.
func Sum(data []byte, alg Algorithm) (string, error) {
	switch alg {
	case Keccak256:
		return crypto.Keccak256Hash(data).Hex(), nil
	case SHA256:
		sum := sha256.Sum256(data)
		return hexutil.Encode(sum[:]), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm %q", alg)
	}
}

// HashDocument canonicalizes a JSON certificate document and hashes it.
func HashDocument(jsonData []byte, alg Algorithm) (string, error) {
	canonical, err := CanonicalizeJSON(jsonData)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize certificate document: %w", err)
	}
	return Sum(canonical, alg)
}

// HashReader hashes the contents of r.
//
// When canonical is true the contents must be a JSON document and are canonicalized first.
func HashReader(r io.Reader, alg Algorithm, canonical bool) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read certificate document: %w", err)
	}
	if canonical {
		return HashDocument(data, alg)
	}
	return Sum(data, alg)
}

// HashFile hashes a certificate document stored in a file. See HashReader.
func HashFile(path string, alg Algorithm, canonical bool) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return HashReader(file, alg, canonical)
}
