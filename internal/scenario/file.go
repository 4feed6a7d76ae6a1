// Package scenario reads and writes cost scenarios as YAML documents.
package scenario

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/vaporcalc/internal/model"

	"gopkg.in/yaml.v3"
)

// File is the on-disk form of a scenario.
type File struct {
	Name         string `yaml:"name,omitempty"`
	model.Inputs `yaml:",inline"`
}

// Decode reads one YAML scenario document from r.
func Decode(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return File{}, fmt.Errorf("decoding scenario: empty document")
		}
		return File{}, fmt.Errorf("decoding scenario: %w", err)
	}
	return f, nil
}

// Encode writes f to w as YAML.
func Encode(w io.Writer, f File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	return enc.Close()
}

// ReadFile decodes the scenario stored at path.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading scenario: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// WriteFile encodes f to path, replacing any existing file.
func WriteFile(path string, f File) error {
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}
	return nil
}
