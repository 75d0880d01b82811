package source

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// ErrChecksumMismatch is returned when a file does not match the known hash.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Checksum is a parsed "<algorithm>:<hex>" known hash.
type Checksum struct {
	Algorithm string
	Digest    string
}

// ParseChecksum parses a known hash such as "md5:80f0f5b8...".
// A bare hex string is taken as md5.
func ParseChecksum(s string) (Checksum, error) {
	algo, digest, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		algo, digest = "md5", algo
	}
	c := Checksum{Algorithm: strings.ToLower(algo), Digest: strings.ToLower(digest)}

	if _, err := c.newHash(); err != nil {
		return Checksum{}, err
	}
	if _, err := hex.DecodeString(c.Digest); err != nil || c.Digest == "" {
		return Checksum{}, fmt.Errorf("invalid %s digest %q", c.Algorithm, digest)
	}
	return c, nil
}

func (c Checksum) String() string {
	return c.Algorithm + ":" + c.Digest
}

func (c Checksum) newHash() (hash.Hash, error) {
	switch c.Algorithm {
	case "md5":
		return md5.New(), nil
	case "sha256":
		return sha256.New(), nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm %q", c.Algorithm)
	}
}

// Verify compares a computed digest against the known one.
func (c Checksum) Verify(h hash.Hash) error {
	got := hex.EncodeToString(h.Sum(nil))
	if got != c.Digest {
		return fmt.Errorf("%w: expected %s, got %s:%s", ErrChecksumMismatch, c, c.Algorithm, got)
	}
	return nil
}

// VerifyFile hashes the file at path and compares it to the known digest.
func (c Checksum) VerifyFile(path string) error {
	h, err := c.newHash()
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return c.Verify(h)
}
