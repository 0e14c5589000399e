// Package exporter writes the full board state as a JSON document, a data
// URI, or a printable PDF notice sheet.
package exporter

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"tableflip.dev/campusboard/pkg/board"
)

// DataURIPrefix is prepended to the percent-encoded JSON document.
const DataURIPrefix = "data:text/json;charset=utf-8,"

// DefaultFilename is the suggested name for a saved export.
const DefaultFilename = "campus_board_data.json"

// JSON encodes snap as {notices, events, users}. Indent may be empty for
// compact output.
func JSON(snap board.Snapshot, indent string) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if indent == "" {
		b, err = json.Marshal(snap)
	} else {
		b, err = json.MarshalIndent(snap, "", indent)
	}
	if err != nil {
		return nil, fmt.Errorf("export: encode: %w", err)
	}
	return b, nil
}

// DataURI returns the compact JSON document as a text/json data URI.
func DataURI(snap board.Snapshot) (string, error) {
	b, err := JSON(snap, "")
	if err != nil {
		return "", err
	}
	return DataURIPrefix + encodeComponent(string(b)), nil
}

// DecodeDataURI reverses DataURI.
func DecodeDataURI(uri string) (board.Snapshot, error) {
	var snap board.Snapshot
	payload, ok := strings.CutPrefix(uri, DataURIPrefix)
	if !ok {
		return snap, fmt.Errorf("export: not a %q data URI", strings.TrimSuffix(DataURIPrefix, ","))
	}
	raw, err := url.PathUnescape(payload)
	if err != nil {
		return snap, fmt.Errorf("export: decode: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return snap, fmt.Errorf("export: decode: %w", err)
	}
	return snap, nil
}

// encodeComponent percent-encodes everything but unreserved characters.
// Spaces become %20, never '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
