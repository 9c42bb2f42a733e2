package transform

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Decode returns the newline-delimited JSON payload of a record, inflating it
// first when it is gzip-compressed.
func Decode(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, gzipMagic) {
		return data, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip payload: %w", err)
	}
	defer zr.Close()

	decoded, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to inflate gzip payload: %w", err)
	}
	return decoded, nil
}

// Lines splits a payload into its non-blank lines.
func Lines(payload []byte) [][]byte {
	var lines [][]byte
	for _, line := range bytes.Split(bytes.TrimSpace(payload), []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Encode writes entries as newline-delimited JSON, uncompressed.
func Encode(entries []any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return nil, fmt.Errorf("failed to encode entry: %w", err)
		}
	}
	return buf.Bytes(), nil
}
