// Package syntax builds a lightweight structural tree of a source unit:
// declarations and the control constructs inside method bodies. Statements
// the tree does not model are kept as opaque ranges.
package syntax

import "github.com/dhamidi/ddoc/source"

// NodeID indexes Tree.Nodes.
type NodeID int

const NoNode NodeID = -1

// Node is one arena entry. Children are in source order.
type Node struct {
	Span     source.Span     `json:"span"`
	Parent   NodeID          `json:"parent"`
	Children []NodeID        `json:"children,omitempty"`
	Payload  Payload         `json:"-"`
	// Name is the start of a declaration's name token. Annotations,
	// modifiers and comments before it belong to the declaration header.
	Name     source.Position `json:"-"`
}

// Payload is implemented by the node variants declared in this file only.
type Payload interface {
	payload()
}

// Tree owns every node of one unit. Nodes[Root] holds a Unit payload.
type Tree struct {
	File  string
	Nodes []Node
	Root  NodeID
}

func (t *Tree) Node(id NodeID) *Node {
	return &t.Nodes[id]
}

func (t *Tree) Payload(id NodeID) Payload {
	return t.Nodes[id].Payload
}

func (t *Tree) add(parent NodeID, span source.Span, p Payload) NodeID {
	id := NodeID(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{Span: span, Parent: parent, Payload: p})
	if parent != NoNode {
		t.Nodes[parent].Children = append(t.Nodes[parent].Children, id)
	}
	return id
}

// Walk visits nodes depth first in source order. Returning false from fn
// skips the children of id.
func (t *Tree) Walk(fn func(id NodeID, depth int) bool) {
	var visit func(id NodeID, depth int)
	visit = func(id NodeID, depth int) {
		if !fn(id, depth) {
			return
		}
		for _, c := range t.Nodes[id].Children {
			visit(c, depth+1)
		}
	}
	visit(t.Root, 0)
}

// IsDeclaration reports whether p may carry a Javadoc comment.
func IsDeclaration(p Payload) bool {
	switch p.(type) {
	case *TypeDecl, *FieldDecl, *MethodDecl, *EnumConstant:
		return true
	}
	return false
}

type TypeKind int

const (
	KindClass TypeKind = iota
	KindInterface
	KindEnum
	KindAnnotation
	KindRecord
)

var typeKindNames = map[TypeKind]string{
	KindClass:      "class",
	KindInterface:  "interface",
	KindEnum:       "enum",
	KindAnnotation: "annotation",
	KindRecord:     "record",
}

func (k TypeKind) String() string {
	if name, ok := typeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k TypeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type LoopKind int

const (
	LoopFor LoopKind = iota
	LoopForEach
	LoopWhile
	LoopDo
)

var loopKindNames = map[LoopKind]string{
	LoopFor:     "for",
	LoopForEach: "for-each",
	LoopWhile:   "while",
	LoopDo:      "do",
}

func (k LoopKind) String() string {
	if name, ok := loopKindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k LoopKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Unit is the root payload.
type Unit struct {
	Package string   `json:"package,omitempty"`
	Imports []string `json:"imports,omitempty"`
}

type TypeDecl struct {
	Kind        TypeKind `json:"kind"`
	Name        string   `json:"name"`
	Modifiers   []string `json:"modifiers,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
	TypeParams  []string `json:"type_params,omitempty"`
	Extends     []string `json:"extends,omitempty"`
	Implements  []string `json:"implements,omitempty"`
	Permits     []string `json:"permits,omitempty"`
	// Components are the record header parameters.
	Components []Param `json:"components,omitempty"`
}

// FieldDecl is one declarator. Declarators of one statement share Group,
// the ID of the first of them.
type FieldDecl struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Modifiers   []string `json:"modifiers,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
	Value       string   `json:"value,omitempty"`
	Group       NodeID   `json:"group"`
}

type Param struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Modifiers   []string `json:"modifiers,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
	Varargs     bool     `json:"varargs,omitempty"`
}

type MethodDecl struct {
	Name        string   `json:"name"`
	ReturnType  string   `json:"return_type,omitempty"`
	Constructor bool     `json:"constructor,omitempty"`
	Modifiers   []string `json:"modifiers,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
	TypeParams  []string `json:"type_params,omitempty"`
	Receiver    *Param   `json:"receiver,omitempty"`
	Params      []Param  `json:"params"`
	Throws      []string `json:"throws,omitempty"`
	HasBody     bool     `json:"has_body"`
	// Default is the default value of an annotation type element.
	Default string `json:"default,omitempty"`
}

type EnumConstant struct {
	Name        string   `json:"name"`
	Annotations []string `json:"annotations,omitempty"`
	Arguments   string   `json:"arguments,omitempty"`
}

// IfChain holds the Branch nodes of one if/else-if/else statement.
type IfChain struct{}

type Branch struct {
	// Keyword is "if", "else if" or "else".
	Keyword   string `json:"keyword"`
	Condition string `json:"condition,omitempty"`
}

type SwitchBlock struct {
	Selector string `json:"selector"`
}

// CaseGroup is one or more case labels sharing a body. A default group has
// no labels. Fallthrough is set when control runs into the next group.
type CaseGroup struct {
	Labels      []string `json:"labels"`
	Default     bool     `json:"default,omitempty"`
	Arrow       bool     `json:"arrow,omitempty"`
	Fallthrough bool     `json:"fallthrough,omitempty"`
}

// Block is a braced region: bare, static or instance initializer, try,
// catch, finally or synchronized. Label names which.
type Block struct {
	Label string `json:"label,omitempty"`
}

type Loop struct {
	Kind      LoopKind `json:"kind"`
	Label     string   `json:"label,omitempty"`
	Init      string   `json:"init,omitempty"`
	Condition string   `json:"condition,omitempty"`
	Update    string   `json:"update,omitempty"`
	Variable  string   `json:"variable,omitempty"`
	Iterable  string   `json:"iterable,omitempty"`
}

// Statement is an opaque statement. Keyword is set for jump and assert
// statements; Label for labelled break and continue.
type Statement struct {
	Keyword string `json:"keyword,omitempty"`
	Label   string `json:"label,omitempty"`
	Text    string `json:"text"`
	// Jump is set for break, continue, return, throw and yield.
	Jump bool `json:"jump,omitempty"`
}

func (*Unit) payload()         {}
func (*TypeDecl) payload()     {}
func (*FieldDecl) payload()    {}
func (*MethodDecl) payload()   {}
func (*EnumConstant) payload() {}
func (*IfChain) payload()      {}
func (*Branch) payload()       {}
func (*SwitchBlock) payload()  {}
func (*CaseGroup) payload()    {}
func (*Block) payload()        {}
func (*Loop) payload()         {}
func (*Statement) payload()    {}
