// Package model defines the mind map tree that the layout engine consumes.
//
// A tree is a single rooted hierarchy of Nodes. Each node is either
// expanded (its children participate in layout) or collapsed (the whole
// subtree below it is hidden but preserved). The expanded/collapsed state
// is held as a flag next to the child slice rather than as two optional
// slices, so "visible children and hidden children at the same time" is
// not representable.
package model

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Node is one entry in the mind map tree. The zero value is a valid,
// expanded leaf. Nodes are owned by the caller; the engine only mutates
// the Pinned flag and the collapse state, never the structure.
type Node struct {
	ID     string
	Text   string
	Pinned bool

	children  []*Node
	collapsed bool
}

// NewNode returns an expanded node with the given id and text.
func NewNode(id, text string) *Node {
	return &Node{ID: id, Text: text}
}

// AddChild appends child to the node's child list and returns the node
// for chaining. Appending to a collapsed node keeps the subtree hidden.
func (n *Node) AddChild(child *Node) *Node {
	n.children = append(n.children, child)
	return n
}

// SetChildren replaces the child list.
func (n *Node) SetChildren(children []*Node) {
	n.children = children
}

// Children returns the visible child list: the node's children when it is
// expanded, nil when it is collapsed or a leaf.
func (n *Node) Children() []*Node {
	if n.collapsed {
		return nil
	}
	return n.children
}

// HiddenChildren returns the hidden child list: the node's children when
// it is collapsed, nil otherwise.
func (n *Node) HiddenChildren() []*Node {
	if !n.collapsed {
		return nil
	}
	return n.children
}

// Collapsed reports whether the node currently hides its subtree.
// A leaf is never considered collapsed.
func (n *Node) Collapsed() bool {
	return n.collapsed && len(n.children) > 0
}

// HasToggle reports whether the node has a collapse/expand affordance:
// true iff it has any children, visible or hidden.
func (n *Node) HasToggle() bool {
	return len(n.children) > 0
}

// Collapse hides the node's subtree. No-op on leaves and on nodes that
// are already collapsed.
func (n *Node) Collapse() {
	if len(n.children) > 0 {
		n.collapsed = true
	}
}

// ExpandOne reveals exactly one additional level: the node's direct
// children become visible, and any revealed child that has children of
// its own is immediately collapsed so nothing deeper shows. No-op if the
// node is already expanded.
func (n *Node) ExpandOne() {
	if !n.collapsed {
		return
	}
	n.collapsed = false
	for _, c := range n.children {
		if len(c.children) > 0 {
			c.collapsed = true
		}
	}
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	clone := &Node{
		ID:        n.ID,
		Text:      n.Text,
		Pinned:    n.Pinned,
		collapsed: n.collapsed,
	}
	if n.children != nil {
		clone.children = make([]*Node, len(n.children))
		for i, c := range n.children {
			clone.children[i] = c.Clone()
		}
	}
	return clone
}

// Walk visits n and every descendant in pre-order, visible or not.
// Returning false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the node with the given id anywhere in the subtree, or nil.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// wireNode is the external JSON/YAML shape. The split into children vs
// hiddenChildren mirrors the collapse state on the wire; at most one of
// the two is emitted.
type wireNode struct {
	ID             string      `json:"id,omitempty" yaml:"id,omitempty"`
	Text           string      `json:"text" yaml:"text"`
	Pinned         bool        `json:"pinned,omitempty" yaml:"pinned,omitempty"`
	Children       []*wireNode `json:"children,omitempty" yaml:"children,omitempty"`
	HiddenChildren []*wireNode `json:"hiddenChildren,omitempty" yaml:"hiddenChildren,omitempty"`
}

func (n *Node) toWire() *wireNode {
	w := &wireNode{ID: n.ID, Text: n.Text, Pinned: n.Pinned}
	if len(n.children) == 0 {
		return w
	}
	kids := make([]*wireNode, len(n.children))
	for i, c := range n.children {
		kids[i] = c.toWire()
	}
	if n.collapsed {
		w.HiddenChildren = kids
	} else {
		w.Children = kids
	}
	return w
}

func (w *wireNode) toNode() *Node {
	n := &Node{ID: w.ID, Text: w.Text, Pinned: w.Pinned}
	// A document that carries both fields violates the format; visible
	// children win and the hidden list is appended after them so no
	// subtree is silently dropped.
	kids := w.Children
	if len(kids) == 0 {
		kids = w.HiddenChildren
		n.collapsed = len(kids) > 0
	} else {
		kids = append(kids, w.HiddenChildren...)
	}
	if len(kids) > 0 {
		n.children = make([]*Node, len(kids))
		for i, c := range kids {
			n.children[i] = c.toNode()
		}
	}
	return n
}

// MarshalJSON emits the external children/hiddenChildren shape.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toWire())
}

// UnmarshalJSON parses the external children/hiddenChildren shape.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode node: %w", err)
	}
	*n = *w.toNode()
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (n *Node) MarshalYAML() (interface{}, error) {
	return n.toWire(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	var w wireNode
	if err := value.Decode(&w); err != nil {
		return fmt.Errorf("decode node: %w", err)
	}
	*n = *w.toNode()
	return nil
}
