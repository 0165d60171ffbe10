package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/ddoc/document"
)

type JSONEncoder struct {
	w   io.Writer
	doc *document.Document
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(doc *document.Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(e.doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
