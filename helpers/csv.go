package helpers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ============================================================================
// INGESTION HELPERS — Parses CSV/JSON data into []map[string]any rows
// ============================================================================
// Consumer reads the bytes from wherever they live (file, upload, stdin).
// These helpers convert raw bytes into the generic row maps the tabular
// adapter consumes; per-column typing is the adapter's job, so values are
// only pre-typed where the text is unambiguous (numbers, booleans, nulls).
// ============================================================================

// ParseCSV parses CSV bytes into generic rows. The first line is the
// header; column names are snake_cased. Empty cells become nil so the
// adapter records them as nulls.
func ParseCSV(data []byte) ([]map[string]any, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = toSnakeCase(strings.TrimSpace(h))
	}

	var rows []map[string]any
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}

		row := make(map[string]any, len(keys))
		for i, val := range record {
			if i >= len(keys) {
				break
			}
			row[keys[i]] = coerceCell(strings.TrimSpace(val))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseJSONRows parses a JSON array of objects into generic rows.
// Accepts either a bare array or an object with a "data" array, matching
// the analyze request body.
func ParseJSONRows(data []byte) ([]map[string]any, error) {
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err == nil {
		return rows, nil
	}
	var wrapped struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil || wrapped.Data == nil {
		return nil, fmt.Errorf("input is not a JSON array of objects")
	}
	return wrapped.Data, nil
}

// coerceCell types obvious CSV text: numbers to float64, true/false to
// bool, empty to nil. Everything else stays a string and the adapter's
// inference decides (dates stay textual here on purpose).
func coerceCell(val string) any {
	if val == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(val, 64); err == nil {
		return f
	}
	switch strings.ToLower(val) {
	case "true":
		return true
	case "false":
		return false
	}
	return val
}

// toSnakeCase converts "Column Name" → "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
