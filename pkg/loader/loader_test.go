package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/mindweave/pkg/model"
)

const jsonDoc = `{
  "id": "root",
  "text": "Root",
  "children": [
    {"text": "Alpha", "children": [{"text": "Alpha One"}]},
    {"text": "Beta", "hiddenChildren": [{"text": "Beta One"}]}
  ]
}`

const yamlDoc = `
id: root
text: Root
children:
  - text: Alpha
  - text: Beta
    hiddenChildren:
      - text: Beta One
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	root, err := Load(writeTemp(t, "map.json", jsonDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if root.Text != "Root" {
		t.Errorf("root text = %q", root.Text)
	}
	if len(root.Children()) != 2 {
		t.Fatalf("%d children, want 2", len(root.Children()))
	}
	if root.Children()[1].HiddenChildren() == nil {
		t.Error("Beta's hidden subtree missing")
	}
}

func TestLoadYAML(t *testing.T) {
	root, err := Load(writeTemp(t, "map.yaml", yamlDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(root.Children()) != 2 {
		t.Fatalf("%d children, want 2", len(root.Children()))
	}
	beta := root.Children()[1]
	if !beta.Collapsed() {
		t.Error("hiddenChildren did not decode as collapsed")
	}
}

func TestLoadAssignsMissingIDs(t *testing.T) {
	root, err := Load(writeTemp(t, "map.json", jsonDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	root.Walk(func(n *model.Node) bool {
		if n.ID == "" {
			t.Error("node left without id")
		}
		return true
	})
	if root.ID != "root" {
		t.Errorf("existing id overwritten: %q", root.ID)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	_, err := Load(writeTemp(t, "empty.json", ""))
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty-document error, got %v", err)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	_, err := Load(writeTemp(t, "bad.json", `{"text": `))
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestFormatForPath(t *testing.T) {
	cases := map[string]Format{
		"map.json": FormatJSON,
		"map.yaml": FormatYAML,
		"map.YML":  FormatYAML,
		"map.txt":  FormatJSON,
		"map":      FormatJSON,
	}
	for path, want := range cases {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root, err := Load(writeTemp(t, "map.json", jsonDoc))
	if err != nil {
		t.Fatal(err)
	}
	root.Children()[0].Collapse()

	out := filepath.Join(t.TempDir(), "out.json")
	if err := Save(out, root); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.Children()[0].Collapsed() {
		t.Error("collapse state lost through save/load")
	}
}
