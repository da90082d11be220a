package layers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// MarshalRelations converts a relation set to indented JSON bytes.
// The output is deterministic for a given set, which makes it suitable
// as a cache-key input.
func MarshalRelations(s RelationSet) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteRelations writes a relation set as JSON to an io.Writer.
func WriteRelations(w io.Writer, s RelationSet) error {
	return writeJSON(w, s)
}

// WriteRelationsFile writes a relation set to a JSON file with 0644
// permissions.
func WriteRelationsFile(path string, s RelationSet) error {
	return writeFile(path, s)
}

// ReadRelations decodes a relation set from an io.Reader and validates it.
func ReadRelations(r io.Reader) (RelationSet, error) {
	var s RelationSet
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return RelationSet{}, fmt.Errorf("decode relations: %w", err)
	}
	if err := s.Validate(); err != nil {
		return RelationSet{}, err
	}
	return s, nil
}

// ReadRelationsFile reads and validates a relation set from a JSON file.
func ReadRelationsFile(path string) (RelationSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return RelationSet{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadRelations(f)
}

// MarshalLayering converts a layering to indented JSON bytes.
func MarshalLayering(l Layering) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteLayering writes a layering as JSON to an io.Writer.
func WriteLayering(w io.Writer, l Layering) error {
	return writeJSON(w, l)
}

// WriteLayeringFile writes a layering to a JSON file with 0644 permissions.
func WriteLayeringFile(path string, l Layering) error {
	return writeFile(path, l)
}

// ReadLayering decodes a layering from an io.Reader.
func ReadLayering(r io.Reader) (Layering, error) {
	var l Layering
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return Layering{}, fmt.Errorf("decode layering: %w", err)
	}
	return l, nil
}

// UnmarshalLayering decodes a layering from JSON bytes.
func UnmarshalLayering(data []byte) (Layering, error) {
	return ReadLayering(bytes.NewReader(data))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func writeFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeJSON(f, v)
}
