package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/errors"
)

// WriteValue encodes v to w in format. JSON is indented with two spaces.
func WriteValue(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unsupported format: %q", format)
	}
	return nil
}

// Write encodes doc to w. The output can be re-imported with [Read].
func Write(w io.Writer, format Format, doc document.Document) error {
	return WriteValue(w, format, doc)
}

// ExportFile writes doc to path, choosing the format from its extension.
// Parent directories are created as needed.
func ExportFile(path string, doc document.Document) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "create %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create %s", path)
	}
	if err := Write(f, format, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "close %s", path)
	}
	return nil
}
