package diagram

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/c4export/pkg/errors"
)

// Format is the encoding of a document file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateInputPath(path); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatJSON, nil
	}
}

// ReadDocumentFile reads and decodes a document file. The format is taken from
// the file extension.
func ReadDocumentFile(path string) (Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Document{}, errors.New(errors.ErrCodeFileNotFound, "document not found: %s", path)
	}
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return UnmarshalDocument(data, format)
}

// ReadDocument decodes a document from r.
func ReadDocument(r io.Reader, format Format) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInternal, err, "read document")
	}
	return UnmarshalDocument(data, format)
}

// UnmarshalDocument decodes document bytes in the given format.
func UnmarshalDocument(data []byte, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode yaml")
		}
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode json")
		}
	default:
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", format)
	}
	return doc, nil
}

// MarshalDocument encodes a document as indented JSON. The output is stable for
// a given document and is used as the cache identity of an export.
func MarshalDocument(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	return buf.Bytes(), nil
}
