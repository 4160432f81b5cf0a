// Package output renders command results deterministically in the
// gcloud-style formats. Rendering is a pure function of the result and
// the format: field order is the first-seen order from the API
// response and is never re-sorted.
package output

import (
	"strings"

	"github.com/gcp-hcp/gcphcp/internal/clierr"
)

// Format is the closed set of output formats.
type Format int

const (
	Table Format = iota
	JSON
	YAML
	CSV
	Value
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case CSV:
		return "csv"
	case Value:
		return "value"
	default:
		return "table"
	}
}

// ParseFormat maps a --format flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return Table, nil
	case "json":
		return JSON, nil
	case "yaml":
		return YAML, nil
	case "csv":
		return CSV, nil
	case "value":
		return Value, nil
	default:
		return Table, clierr.Newf(clierr.Validation,
			"unknown output format %q (supported: table, json, yaml, csv, value)", s)
	}
}
