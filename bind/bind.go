// Package bind attaches narrative and Javadoc comments to nodes of a
// syntax tree.
//
// A comment's scope is the innermost node whose span contains it. Within
// the scope, the comment binds to the first child starting after it, or to
// the scope itself when no child follows.
package bind

import (
	"github.com/dhamidi/ddoc/lexer"
	"github.com/dhamidi/ddoc/source"
	"github.com/dhamidi/ddoc/syntax"
)

// Result maps nodes to comment indexes. Both slices are indexed by
// syntax.NodeID.
type Result struct {
	// Narrative lists the narrative comments bound to each node, in source
	// order.
	Narrative [][]int
	// Javadoc is the Javadoc comment of each node, or -1.
	Javadoc     []int
	Diagnostics []source.Diagnostic
}

// Bind assigns every narrative and Javadoc comment in comments. Plain
// comments are ignored.
func Bind(tree *syntax.Tree, comments []lexer.Comment) *Result {
	r := &Result{
		Narrative: make([][]int, len(tree.Nodes)),
		Javadoc:   make([]int, len(tree.Nodes)),
	}
	for i := range r.Javadoc {
		r.Javadoc[i] = -1
	}

	for i, c := range comments {
		switch {
		case c.Dialect.IsNarrative():
			target := narrativeTarget(tree, c.Span)
			for _, id := range declarators(tree, target) {
				r.Narrative[id] = append(r.Narrative[id], i)
			}
		case c.Dialect == lexer.Javadoc:
			scope := Scope(tree, c.Span)
			next := following(tree, scope, c.Span)
			if inHeader(tree, scope, c.Span) {
				next = scope
			}
			if next == syntax.NoNode || !syntax.IsDeclaration(tree.Payload(next)) {
				r.Diagnostics = append(r.Diagnostics, source.Diagnostic{
					Kind:    source.OrphanJavadoc,
					Pos:     c.Span.Start,
					Message: "Javadoc comment is not followed by a declaration",
				})
				continue
			}
			for _, id := range declarators(tree, next) {
				r.Javadoc[id] = i
			}
		}
	}
	return r
}

// Scope returns the innermost node whose span contains span.
func Scope(tree *syntax.Tree, span source.Span) syntax.NodeID {
	scope := tree.Root
	for {
		next := syntax.NoNode
		for _, c := range tree.Node(scope).Children {
			if tree.Node(c).Span.Contains(span) {
				next = c
				break
			}
		}
		if next == syntax.NoNode {
			return scope
		}
		scope = next
	}
}

// following returns the first child of scope starting at or after the end
// of span.
func following(tree *syntax.Tree, scope syntax.NodeID, span source.Span) syntax.NodeID {
	for _, c := range tree.Node(scope).Children {
		if tree.Node(c).Span.Start.Offset >= span.End.Offset {
			return c
		}
	}
	return syntax.NoNode
}

// inHeader reports whether span lies before the name of the declaration
// scope, as a comment between an annotation and the declaration does.
func inHeader(tree *syntax.Tree, scope syntax.NodeID, span source.Span) bool {
	n := tree.Node(scope)
	return syntax.IsDeclaration(n.Payload) && n.Name.Line != 0 && span.End.Offset <= n.Name.Offset
}

func narrativeTarget(tree *syntax.Tree, span source.Span) syntax.NodeID {
	scope := Scope(tree, span)
	if inHeader(tree, scope, span) {
		return scope
	}
	next := following(tree, scope, span)
	if next == syntax.NoNode {
		return scope
	}

	// Between a case label and the first statement of its body the
	// comment describes the group.
	if _, ok := tree.Payload(scope).(*syntax.CaseGroup); ok {
		if children := tree.Node(scope).Children; children[0] == next {
			return scope
		}
	}

	// An if chain and its first branch start together.
	if _, ok := tree.Payload(next).(*syntax.IfChain); ok {
		if children := tree.Node(next).Children; len(children) > 0 {
			return children[0]
		}
	}
	return next
}

// declarators expands the first declarator of a multi-declarator field to
// every declarator of its statement.
func declarators(tree *syntax.Tree, id syntax.NodeID) []syntax.NodeID {
	f, ok := tree.Payload(id).(*syntax.FieldDecl)
	if !ok || f.Group != id {
		return []syntax.NodeID{id}
	}
	ids := []syntax.NodeID{id}
	for _, c := range tree.Node(tree.Node(id).Parent).Children {
		if g, ok := tree.Payload(c).(*syntax.FieldDecl); ok && c != id && g.Group == id {
			ids = append(ids, c)
		}
	}
	return ids
}
