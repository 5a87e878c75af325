package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// printYAML marshals v as YAML and writes it to w.
func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}

// printFormatted prints v in JSON or YAML format based on flags.
// Returns true if output was printed, false if default format should be used.
func (o *options) printFormatted(w io.Writer, v any) (bool, error) {
	switch o.outputFormat() {
	case "json":
		if err := printJSON(w, v); err != nil {
			return true, fmt.Errorf("error encoding JSON: %w", err)
		}
		return true, nil
	case "yaml":
		if err := printYAML(w, v); err != nil {
			return true, fmt.Errorf("error encoding YAML: %w", err)
		}
		return true, nil
	}
	return false, nil
}

// compactJSON renders v on a single line without HTML escaping.
func compactJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
