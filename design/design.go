// Package design runs the extraction pipeline: tokenize, parse structure,
// bind comments and build the document of a source unit.
package design

import (
	"sort"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/ddoc/bind"
	"github.com/dhamidi/ddoc/document"
	"github.com/dhamidi/ddoc/lexer"
	"github.com/dhamidi/ddoc/profile"
	"github.com/dhamidi/ddoc/source"
	"github.com/dhamidi/ddoc/syntax"
)

type Option func(*config)

type config struct {
	file string
	log  commonlog.Logger
}

// WithFile sets the path used in positions and error messages.
func WithFile(path string) Option {
	return func(c *config) {
		c.file = path
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// Parse extracts the design document of src. Fatal problems are returned
// as *source.ParseError and no document is produced.
func Parse(src []byte, prof *profile.Profile, opts ...Option) (*document.Document, error) {
	cfg := config{log: commonlog.GetLogger("ddoc.design")}
	for _, opt := range opts {
		opt(&cfg)
	}
	if prof == nil {
		prof = profile.Java()
	}

	res, err := lexer.Tokenize(src, cfg.file, prof)
	if err != nil {
		cfg.log.Debugf("%s: %s", cfg.file, err)
		return nil, err
	}
	tree, diags, err := syntax.Parse(res, cfg.file, prof)
	if err != nil {
		cfg.log.Debugf("%s: %s", cfg.file, err)
		return nil, err
	}
	bindings := bind.Bind(tree, res.Comments)

	all := make([]source.Diagnostic, 0, len(res.Diagnostics)+len(diags)+len(bindings.Diagnostics))
	all = append(all, res.Diagnostics...)
	all = append(all, diags...)
	all = append(all, bindings.Diagnostics...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Pos.Offset < all[j].Pos.Offset
	})
	for _, d := range all {
		cfg.log.Debug(d.Message, "kind", d.Kind.String(), "pos", d.Pos.String())
	}

	doc := document.Build(tree, res.Comments, bindings, all)
	cfg.log.Debugf("%s: %d tokens, %d comments, %d nodes", cfg.file, len(res.Tokens), len(res.Comments), len(tree.Nodes))
	return doc, nil
}
