// SPDX-License-Identifier: MIT

package structio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat indicates an unsupported output format.
var ErrUnknownFormat = errors.New("structio: unknown format")

// ParseFormat maps a flag value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, "yml", "":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}

	return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

// Encode writes v to w in the given format.
func Encode(w io.Writer, v any, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}

	return fmt.Errorf("%q: %w", f, ErrUnknownFormat)
}
