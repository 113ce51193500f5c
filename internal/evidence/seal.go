package evidence

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gowebpki/jcs"
)

// ErrSealMismatch means a pack's sections no longer match its content hash.
var ErrSealMismatch = errors.New("evidence pack content hash mismatch")

// ContentHash returns the hex SHA-256 of the RFC 8785 canonical JSON of
// sections, so the hash is stable across encoders and field order.
func ContentHash(sections Sections) (string, error) {
	raw, err := json.Marshal(sections)
	if err != nil {
		return "", fmt.Errorf("marshal sections: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize sections: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Seal sets p.ContentHash from p.Sections.
func Seal(p *Pack) error {
	hash, err := ContentHash(p.Sections)
	if err != nil {
		return err
	}
	p.ContentHash = hash
	return nil
}

// Verify recomputes the content hash and compares it with the sealed one.
func Verify(p *Pack) error {
	hash, err := ContentHash(p.Sections)
	if err != nil {
		return err
	}
	if hash != p.ContentHash {
		return ErrSealMismatch
	}
	return nil
}
