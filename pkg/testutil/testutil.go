// Package testutil provides tree builders shared by tests.
package testutil

import (
	"fmt"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/mindweave/pkg/model"
)

// Tree builds a small fixed tree:
//
//	root
//	├── a
//	│   ├── a1
//	│   └── a2
//	└── b
//	    └── b1
func Tree() *model.Node {
	root := model.NewNode("root", "Root")
	a := model.NewNode("a", "Alpha")
	a.AddChild(model.NewNode("a1", "Alpha One"))
	a.AddChild(model.NewNode("a2", "Alpha Two"))
	b := model.NewNode("b", "Beta")
	b.AddChild(model.NewNode("b1", "Beta One"))
	root.AddChild(a)
	root.AddChild(b)
	return root
}

// RandomTree draws a tree with up to maxNodes nodes and bounded depth.
// Every node gets a unique id so flatten/reconcile invariants hold.
func RandomTree(t *rapid.T, maxNodes int) *model.Node {
	if maxNodes < 1 {
		maxNodes = 1
	}
	count := rapid.IntRange(1, maxNodes).Draw(t, "count")

	nodes := make([]*model.Node, count)
	for i := range nodes {
		nodes[i] = model.NewNode(
			fmt.Sprintf("n%d", i),
			rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,20}`).Draw(t, fmt.Sprintf("text%d", i)),
		)
	}
	// Attach each node to a random earlier node; node 0 is the root.
	for i := 1; i < count; i++ {
		parent := rapid.IntRange(0, i-1).Draw(t, fmt.Sprintf("parent%d", i))
		nodes[parent].AddChild(nodes[i])
	}
	return nodes[0]
}

// CollapseSome collapses a random subset of branch nodes.
func CollapseSome(t *rapid.T, root *model.Node) {
	root.Walk(func(n *model.Node) bool {
		if n.HasToggle() && rapid.Bool().Draw(t, "collapse-"+n.ID) {
			n.Collapse()
		}
		return true
	})
}
