package model

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the hex-encoded BLAKE3 hash of the model's canonical
// JSON encoding. Struct field order and sorted map keys make the encoding
// deterministic, so equal models share a fingerprint across processes and the
// fingerprint doubles as a reproducibility stamp for compiled parameters.
func (m *ProcessModel) Fingerprint() (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode model for fingerprinting: %w", err)
	}

	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
