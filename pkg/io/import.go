package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/errors"
)

// Format is a serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unsupported format: %q (must be json or yaml)", s)
	}
}

// FormatFromPath derives the format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "cannot infer format of %q: no extension", path)
	}
	return ParseFormat(ext)
}

// ReadValue decodes r in format into v. Unknown fields are rejected so
// typos in property names surface as errors.
func ReadValue(r io.Reader, format Format, v any) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return wrapDecode(err, format)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			if err == io.EOF {
				return errors.New(errors.ErrCodeInvalidInput, "empty yaml input")
			}
			return wrapDecode(err, format)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unsupported format: %q", format)
	}
	return nil
}

func wrapDecode(err error, format Format) error {
	if code := errors.GetCode(err); code != "" {
		return errors.Wrap(code, err, "decode %s", format)
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", format)
}

// Read decodes a document from r and validates it.
func Read(r io.Reader, format Format) (document.Document, error) {
	var doc document.Document
	if err := ReadValue(r, format, &doc); err != nil {
		return document.Document{}, err
	}
	if _, err := document.ParseKind(string(doc.Master.Kind)); err != nil {
		return document.Document{}, err
	}
	if doc.Master.Name == "" {
		return document.Document{}, errors.New(errors.ErrCodeInvalidDocument, "document has no name")
	}
	if err := doc.Content.Validate(); err != nil {
		return document.Document{}, err
	}
	return doc, nil
}

// ImportFile reads the document at path, choosing the format from its
// extension.
func ImportFile(path string) (document.Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return document.Document{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return document.Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	doc, err := Read(f, format)
	if err != nil {
		return document.Document{}, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return doc, nil
}

// ReadFile decodes the file at path into v, choosing the format from its
// extension.
func ReadFile(path string, v any) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	if err := ReadValue(f, format, v); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return nil
}
