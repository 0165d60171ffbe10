// Package format renders design documents.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/ddoc/document"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(doc *document.Document) error
}

// Names lists the formats accepted by New.
var Names = []string{"json", "markdown", "html"}

// New returns the encoder registered under name.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "markdown", "md":
		return NewMarkdownEncoder(w), nil
	case "html":
		return NewHTMLEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}

// Extension is the file extension used when writing name to a directory.
func Extension(name string) string {
	switch name {
	case "markdown", "md":
		return ".md"
	case "html":
		return ".html"
	}
	return ".json"
}

func write(w io.Writer, e Encoder) error {
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
