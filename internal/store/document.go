// Package store persists word list documents and writes the review and error
// logs produced alongside them.
package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/metcalfc/wordlist/internal/model"
)

const hashBytes = 8192 // First 8KB for content hash

// Encode writes v as YAML with two-space indentation.
func Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// SaveDocument writes sections to path, creating parent directories.
func SaveDocument(path string, sections []model.Section) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, sections); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// LoadDocument reads a document written by SaveDocument or by the earlier
// pre-refinement layout.
func LoadDocument(path string) ([]model.Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sections []model.Section
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return sections, nil
}

// Fingerprint identifies a source document by a hash of its first 8KB.
func Fingerprint(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, hashBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}

	hash := sha256.Sum256(buf[:n])
	return hex.EncodeToString(hash[:16]), nil // First 16 bytes = 32 hex chars
}
