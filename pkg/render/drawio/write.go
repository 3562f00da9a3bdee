package drawio

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Host is written into the mxfile host attribute.
const Host = "c4export"

// NewFile wraps pages into a document. Pages without an ID are numbered
// "page-1", "page-2", and so on.
func NewFile(pages []Diagram, agent string) MxFile {
	for i := range pages {
		if pages[i].ID == "" {
			pages[i].ID = fmt.Sprintf("page-%d", i+1)
		}
	}
	return MxFile{Host: Host, Agent: agent, Pages: len(pages), Diagrams: pages}
}

// Encode writes f as indented XML with a declaration.
func Encode(w io.Writer, f MxFile) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode mxfile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Marshal returns the encoded document.
func Marshal(f MxFile) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a document written by [Encode].
func Decode(r io.Reader) (MxFile, error) {
	var f MxFile
	if err := xml.NewDecoder(r).Decode(&f); err != nil {
		return MxFile{}, fmt.Errorf("decode mxfile: %w", err)
	}
	return f, nil
}
