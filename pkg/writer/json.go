// Package writer renders command output as JSON, optionally compressed.
package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpcprof/pkg/compression"
)

// JSONWriter writes data as JSON.
type JSONWriter[T any] struct {
	// Indent specifies the indentation for pretty printing.
	// Empty string means compact output.
	Indent string
}

// NewJSONWriter creates a new JSON writer with compact output.
func NewJSONWriter[T any]() *JSONWriter[T] {
	return &JSONWriter[T]{Indent: ""}
}

// NewPrettyJSONWriter creates a JSON writer with pretty printing.
func NewPrettyJSONWriter[T any]() *JSONWriter[T] {
	return &JSONWriter[T]{Indent: "  "}
}

// Write writes the data as JSON to the writer.
func (w *JSONWriter[T]) Write(data T, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	if w.Indent != "" {
		encoder.SetIndent("", w.Indent)
	}
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode data: %w", err)
	}
	return nil
}

// Marshal returns the encoded data, newline terminated.
func (w *JSONWriter[T]) Marshal(data T) ([]byte, error) {
	var b strings.Builder
	if err := w.Write(data, &b); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// WriteToFile writes the data as JSON to path. A ".gz" or ".zst" suffix
// compresses the output accordingly.
func (w *JSONWriter[T]) WriteToFile(data T, path string) (*WriteResult, error) {
	encoded, err := w.Marshal(data)
	if err != nil {
		return nil, err
	}

	ctype := CompressionFor(path)
	out, err := compression.Compress(ctype, encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to compress output: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return newWriteResult(ctype, len(encoded), len(out)), nil
}

// CompressionFor picks the compression for an output path by its suffix.
func CompressionFor(path string) compression.Type {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	switch strings.ToLower(ext) {
	case "gz", "zst":
		t, _ := compression.ParseType(ext)
		return t
	default:
		return compression.TypeNone
	}
}

// WriteResult contains statistics about the written file.
type WriteResult struct {
	Compression    compression.Type
	JSONSize       int64
	CompressedSize int64
	CompressionPct float64
}

func newWriteResult(t compression.Type, jsonSize, written int) *WriteResult {
	pct := 0.0
	if jsonSize > 0 {
		pct = float64(written) / float64(jsonSize) * 100
	}
	return &WriteResult{
		Compression:    t,
		JSONSize:       int64(jsonSize),
		CompressedSize: int64(written),
		CompressionPct: pct,
	}
}
