package schema

import (
	"testing"

	"github.com/arrowlake/parquet/format"
)

func flatSchema() []format.SchemaElement {
	return []format.SchemaElement{
		{Name: "root", HasNumChildren: true, NumChildren: 2},
		{Name: "id", HasType: true, Type: format.Int64, HasRepetition: true, RepetitionType: format.Required},
		{Name: "name", HasType: true, Type: format.ByteArray, HasRepetition: true, RepetitionType: format.Optional},
	}
}

func TestFlatSchemaLevels(t *testing.T) {
	s, err := New(flatSchema())
	if err != nil {
		t.Fatal(err)
	}
	if s.NumLeafColumns() != 2 {
		t.Fatalf("want 2 leaves, got %d", s.NumLeafColumns())
	}
	id, ok := s.LeafByIndex(0)
	if !ok || id.MaxDefLevel != 0 || id.MaxRepLevel != 0 {
		t.Fatalf("id leaf: %+v", id)
	}
	name, ok := s.LeafByIndex(1)
	if !ok || name.MaxDefLevel != 1 || name.MaxRepLevel != 0 {
		t.Fatalf("name leaf: %+v", name)
	}
	if len(id.Path) != 1 || id.Path[0] != "id" {
		t.Fatalf("id path: %v", id.Path)
	}
}

func TestLeafByPath(t *testing.T) {
	s, err := New(flatSchema())
	if err != nil {
		t.Fatal(err)
	}
	l, ok := s.LeafByPath("name")
	if !ok || l.Node.Name != "name" {
		t.Fatalf("lookup by path failed: %+v", l)
	}
}

func TestRootMustNotBeLeaf(t *testing.T) {
	bad := []format.SchemaElement{{Name: "root", HasType: true, Type: format.Int32}}
	if _, err := New(bad); err == nil {
		t.Fatal("expected error for leaf root")
	}
}

func TestElementsRoundTrip(t *testing.T) {
	elements := flatSchema()
	s, err := New(elements)
	if err != nil {
		t.Fatal(err)
	}
	out := Elements(s)
	if len(out) != len(elements) {
		t.Fatalf("got %d elements, want %d", len(out), len(elements))
	}
	if out[1].Name != "id" || out[2].Name != "name" {
		t.Fatalf("element order: %+v", out)
	}
}
