package format

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/dhamidi/ddoc/document"
)

// HTMLEncoder renders the Markdown form of a document to a standalone
// HTML page.
type HTMLEncoder struct {
	w   io.Writer
	doc *document.Document
	md  goldmark.Markdown
}

func NewHTMLEncoder(w io.Writer) *HTMLEncoder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	return &HTMLEncoder{w: w, md: md}
}

func (e *HTMLEncoder) Encode(doc *document.Document) error {
	e.doc = doc
	return write(e.w, e)
}

func (e *HTMLEncoder) MarshalText() ([]byte, error) {
	src, err := (&MarkdownEncoder{doc: e.doc}).MarshalText()
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := e.md.Convert(src, &body); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	title := e.doc.File
	if title == "" {
		title = "Design"
	}
	var out bytes.Buffer
	fmt.Fprintf(&out, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", html.EscapeString(title))
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.Bytes(), nil
}
