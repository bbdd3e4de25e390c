package output

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/menu/internal/model"
)

var recs = []model.Record{
	{ID: model.NumberID("1"), Name: "Curry", Likes: 3},
	{ID: "b7f3", Name: "Ramen"},
}

func TestNewFormatter_RejectsUnknown(t *testing.T) {
	if _, err := NewFormatter("xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if ValidFormat("xml") || !ValidFormat("YAML") {
		t.Fatalf("ValidFormat disagrees with NewFormatter")
	}
}

func TestPlainFormatter_UsesJSONTagHeaders(t *testing.T) {
	f, _ := NewFormatter(FormatPlain)
	out := f.Format(recs)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows; got %q", out)
	}
	if fields := strings.Fields(lines[0]); strings.Join(fields, " ") != "ID NAME LIKES" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if fields := strings.Fields(lines[1]); strings.Join(fields, " ") != "1 Curry 3" {
		t.Fatalf("unexpected row %q", lines[1])
	}
}

func TestPlainFormatter_EmptyList(t *testing.T) {
	f, _ := NewFormatter(FormatPlain)
	if got := f.Format([]model.Record{}); got != "No menus yet.\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPlainFormatter_NilPrintsPlaceholder(t *testing.T) {
	f, _ := NewFormatter(FormatPlain)
	var none *model.Record
	for _, data := range []any{nil, none} {
		if got := f.Format(data); got != "No menus yet.\n" {
			t.Fatalf("expected placeholder for %#v; got %q", data, got)
		}
	}
}

func TestJSONFormatter_KeepsNumericIDs(t *testing.T) {
	f, _ := NewFormatter(FormatJSON)
	var got []map[string]any
	if err := json.Unmarshal([]byte(f.Format(recs)), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if _, ok := got[0]["id"].(float64); !ok {
		t.Fatalf("expected numeric id; got %T", got[0]["id"])
	}
	if got[1]["id"] != "b7f3" {
		t.Fatalf("expected string id; got %v", got[1]["id"])
	}
}

func TestYAMLFormatter_ListsRecords(t *testing.T) {
	f, _ := NewFormatter(FormatYAML)
	var got []model.Record
	if err := yaml.Unmarshal([]byte(f.Format(recs)), &got); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Curry" || got[0].Likes != 3 {
		t.Fatalf("unexpected records %+v", got)
	}
}
