package model

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"
)

func buildTree() *Node {
	root := NewNode("root", "Root")
	a := NewNode("a", "Alpha")
	a.AddChild(NewNode("a1", "Alpha One"))
	a.AddChild(NewNode("a2", "Alpha Two"))
	b := NewNode("b", "Beta")
	b.AddChild(NewNode("b1", "Beta One"))
	root.AddChild(a)
	root.AddChild(b)
	return root
}

func TestCollapseHidesChildren(t *testing.T) {
	root := buildTree()
	a := root.Find("a")

	if a.Collapsed() {
		t.Fatal("fresh branch should be expanded")
	}
	a.Collapse()
	if !a.Collapsed() {
		t.Fatal("Collapse did not take")
	}
	if a.Children() != nil {
		t.Errorf("collapsed node exposes children: %v", a.Children())
	}
	if got := len(a.HiddenChildren()); got != 2 {
		t.Errorf("HiddenChildren = %d, want 2", got)
	}
}

func TestCollapseLeafIsNoop(t *testing.T) {
	leaf := NewNode("x", "X")
	leaf.Collapse()
	if leaf.Collapsed() {
		t.Error("leaf became collapsed")
	}
	if leaf.HasToggle() {
		t.Error("leaf reports a toggle")
	}
}

func TestExpandOneRevealsOneLevel(t *testing.T) {
	root := buildTree()
	root.Collapse()

	root.ExpandOne()
	if root.Collapsed() {
		t.Fatal("root still collapsed after ExpandOne")
	}
	// Both children have children of their own, so they come back
	// collapsed: only one level is revealed.
	for _, id := range []string{"a", "b"} {
		n := root.Find(id)
		if !n.Collapsed() {
			t.Errorf("%s should be re-collapsed after ExpandOne", id)
		}
	}
}

func TestExpandOneOnExpandedIsNoop(t *testing.T) {
	root := buildTree()
	a := root.Find("a")
	root.ExpandOne()
	if a.Collapsed() {
		t.Error("ExpandOne on an expanded node re-collapsed its children")
	}
}

func TestCloneIsDeep(t *testing.T) {
	root := buildTree()
	root.Find("a").Collapse()
	root.Find("b1").Pinned = true

	clone := root.Clone()
	clone.Find("a").ExpandOne()
	clone.Find("b1").Pinned = false
	clone.Find("a1").Text = "mutated"

	if !root.Find("a").Collapsed() {
		t.Error("clone mutation leaked into original collapse state")
	}
	if !root.Find("b1").Pinned {
		t.Error("clone mutation leaked into original pin state")
	}
	if root.Find("a1").Text != "Alpha One" {
		t.Error("clone mutation leaked into original text")
	}
}

func TestWalkVisitsHiddenNodes(t *testing.T) {
	root := buildTree()
	root.Find("a").Collapse()

	var seen []string
	root.Walk(func(n *Node) bool {
		seen = append(seen, n.ID)
		return true
	})
	if len(seen) != 6 {
		t.Fatalf("walked %d nodes, want 6: %v", len(seen), seen)
	}
	if seen[0] != "root" {
		t.Errorf("walk is not pre-order: %v", seen)
	}
}

func TestWalkStops(t *testing.T) {
	root := buildTree()
	count := 0
	root.Walk(func(n *Node) bool {
		count++
		return count < 3
	})
	if count != 3 {
		t.Errorf("walk visited %d nodes after early stop, want 3", count)
	}
}

func TestJSONRoundTripPreservesCollapse(t *testing.T) {
	root := buildTree()
	root.Find("a").Collapse()
	root.Find("b1").Pinned = true

	data, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), "hiddenChildren") {
		t.Fatalf("collapsed subtree not emitted as hiddenChildren: %s", data)
	}

	var got Node
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Find("a").Collapsed() {
		t.Error("collapse state lost in round trip")
	}
	if got.Find("a1") == nil {
		t.Error("hidden subtree lost in round trip")
	}
	if !got.Find("b1").Pinned {
		t.Error("pin state lost in round trip")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	root := buildTree()
	root.Find("b").Collapse()

	data, err := yaml.Marshal(root)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Node
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Find("b").Collapsed() {
		t.Error("collapse state lost in yaml round trip")
	}
	if got.Find("b1") == nil {
		t.Error("hidden subtree lost in yaml round trip")
	}
}

func TestUnmarshalBothFieldsVisibleWins(t *testing.T) {
	doc := `{
		"id": "r", "text": "Root",
		"children": [{"id": "c1", "text": "Visible"}],
		"hiddenChildren": [{"id": "c2", "text": "Hidden"}]
	}`
	var got Node
	if err := json.Unmarshal([]byte(doc), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Collapsed() {
		t.Error("node with visible children decoded as collapsed")
	}
	// Nothing is dropped: the hidden list is appended.
	if got.Find("c1") == nil || got.Find("c2") == nil {
		t.Error("a subtree was dropped when both fields were present")
	}
}

func TestEnsureIDsFillsGaps(t *testing.T) {
	root := NewNode("", "Root")
	child := NewNode("keep", "Child")
	child.AddChild(NewNode("", "Grand"))
	root.AddChild(child)

	EnsureIDs(root)

	if root.ID == "" {
		t.Error("root id not assigned")
	}
	if child.ID != "keep" {
		t.Errorf("existing id overwritten: %q", child.ID)
	}
	seen := map[string]bool{}
	root.Walk(func(n *Node) bool {
		if n.ID == "" {
			t.Error("node left without id")
		}
		if seen[n.ID] {
			t.Errorf("duplicate id %q", n.ID)
		}
		seen[n.ID] = true
		return true
	})
}

func TestMergeStateCarriesPinsAndCollapse(t *testing.T) {
	old := buildTree()
	old.Find("a").Collapse()
	old.Find("b1").Pinned = true

	next := buildTree()
	next.AddChild(NewNode("c", "Gamma"))

	MergeState(old, next)

	if !next.Find("a").Collapsed() {
		t.Error("collapse state not merged")
	}
	if !next.Find("b1").Pinned {
		t.Error("pin state not merged")
	}
	if next.Find("c").Pinned {
		t.Error("new node gained a pin from nowhere")
	}
}

func TestRoundTripPropertyJSON(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		root := randomNode(rt, 0)
		data, err := json.Marshal(root)
		if err != nil {
			rt.Fatalf("marshal: %v", err)
		}
		var got Node
		if err := json.Unmarshal(data, &got); err != nil {
			rt.Fatalf("unmarshal: %v", err)
		}
		assertSameTree(rt, root, &got)
	})
}

func randomNode(rt *rapid.T, depth int) *Node {
	n := NewNode(
		rapid.StringMatching(`[a-z][a-z0-9]{0,8}`).Draw(rt, "id"),
		rapid.StringMatching(`[A-Za-z ]{1,16}`).Draw(rt, "text"),
	)
	n.Pinned = rapid.Bool().Draw(rt, "pinned")
	if depth < 3 {
		kids := rapid.IntRange(0, 3).Draw(rt, "kids")
		for i := 0; i < kids; i++ {
			n.AddChild(randomNode(rt, depth+1))
		}
		if n.HasToggle() && rapid.Bool().Draw(rt, "collapsed") {
			n.Collapse()
		}
	}
	return n
}

func assertSameTree(rt *rapid.T, want, got *Node) {
	if want.ID != got.ID || want.Text != got.Text || want.Pinned != got.Pinned {
		rt.Fatalf("node mismatch: want %+v got %+v", want, got)
	}
	if want.Collapsed() != got.Collapsed() {
		rt.Fatalf("collapse mismatch on %s", want.ID)
	}
	wk, gk := want.children, got.children
	if len(wk) != len(gk) {
		rt.Fatalf("child count mismatch on %s: %d vs %d", want.ID, len(wk), len(gk))
	}
	for i := range wk {
		assertSameTree(rt, wk[i], gk[i])
	}
}
