// Package schema implements the Parquet schema tree (spec §3): an ordered
// tree of group and leaf nodes, together with the derived
// leaf-index → (element index, max definition level, max repetition level)
// mapping the page and column readers key off of.
package schema

import (
	"fmt"

	"github.com/arrowlake/parquet/format"
)

// Node is one node of the schema tree. The root and every group node carry
// no physical type; every leaf does.
type Node struct {
	Name           string
	Repetition     format.FieldRepetitionType
	IsLeaf         bool
	Type           format.Type
	TypeLength     int32
	HasTypeLength  bool
	LogicalType    *format.LogicalType
	ConvertedType  format.ConvertedType
	HasConverted   bool
	FieldID        int32
	HasFieldID     bool

	Children []*Node

	parent          *Node
	maxDefLevel     int32
	maxRepLevel     int32
	elementIndex    int
	leafIndex       int
}

// LeafInfo is one entry of the schema's derived leaf-index mapping.
type LeafInfo struct {
	Node            *Node
	ElementIndex    int
	MaxDefLevel     int32
	MaxRepLevel     int32
	Path            []string
}

// Schema is an ordered schema tree plus its derived leaf mapping (spec §3).
// Every Schema is lifetime-bound to the arena that owns the strings backing
// its nodes; callers must not retain a Schema beyond that arena's lifetime.
type Schema struct {
	Root  *Node
	Leaves []LeafInfo
}

// New walks elements (as parsed from a FileMetaData's Schema field, in
// pre-order) and builds the tree plus the leaf mapping. elements[0] must be
// the root and must not be a leaf (spec §3 invariant).
func New(elements []format.SchemaElement) (*Schema, error) {
	if len(elements) == 0 {
		return nil, fmt.Errorf("%w: empty schema", format.ErrInvalidSchema)
	}
	if elements[0].HasType {
		return nil, fmt.Errorf("%w: root must not be a leaf", format.ErrInvalidSchema)
	}

	pos := 0
	s := &Schema{}
	root, err := buildNode(elements, &pos, nil, 0, 0)
	if err != nil {
		return nil, err
	}
	if pos != len(elements) {
		return nil, fmt.Errorf("%w: %d schema elements left unconsumed", format.ErrInvalidSchema, len(elements)-pos)
	}
	root.elementIndex = 0
	s.Root = root
	s.Leaves = collectLeaves(root, nil)
	for i := range s.Leaves {
		s.Leaves[i].Node.leafIndex = i
	}
	return s, nil
}

func buildNode(elements []format.SchemaElement, pos *int, parent *Node, depth int, elementIndex int) (*Node, error) {
	if *pos >= len(elements) {
		return nil, fmt.Errorf("%w: truncated schema", format.ErrInvalidSchema)
	}
	el := elements[*pos]
	*pos++

	n := &Node{
		Name:          el.Name,
		parent:        parent,
		elementIndex:  elementIndex,
		LogicalType:   el.LogicalType,
		ConvertedType: el.ConvertedType,
		HasConverted:  el.HasConverted,
		FieldID:       el.FieldID,
		HasFieldID:    el.HasFieldID,
	}
	if el.HasRepetition {
		n.Repetition = el.RepetitionType
	} else if parent != nil {
		return nil, fmt.Errorf("%w: non-root element %q missing repetition", format.ErrInvalidSchema, el.Name)
	}

	n.maxDefLevel = 0
	n.maxRepLevel = 0
	if parent != nil {
		n.maxDefLevel = parent.maxDefLevel
		n.maxRepLevel = parent.maxRepLevel
		if n.Repetition == format.Optional {
			n.maxDefLevel++
		}
		if n.Repetition == format.Repeated {
			n.maxDefLevel++
			n.maxRepLevel++
		}
	}

	if el.HasType {
		n.IsLeaf = true
		n.Type = el.Type
		n.TypeLength = el.TypeLength
		n.HasTypeLength = el.HasTypeLength
		return n, nil
	}

	numChildren := int(el.NumChildren)
	n.Children = make([]*Node, numChildren)
	for i := 0; i < numChildren; i++ {
		child, err := buildNode(elements, pos, n, depth+1, *pos)
		if err != nil {
			return nil, err
		}
		n.Children[i] = child
	}
	return n, nil
}

func collectLeaves(n *Node, path []string) []LeafInfo {
	if n.IsLeaf {
		p := make([]string, len(path)+1)
		copy(p, path)
		p[len(path)] = n.Name
		return []LeafInfo{{
			Node:         n,
			ElementIndex: n.elementIndex,
			MaxDefLevel:  n.maxDefLevel,
			MaxRepLevel:  n.maxRepLevel,
			Path:         p,
		}}
	}
	p := append(append([]string{}, path...), n.Name)
	if n.parent == nil {
		p = path // the root contributes no path segment
	}
	var leaves []LeafInfo
	for _, child := range n.Children {
		leaves = append(leaves, collectLeaves(child, p)...)
	}
	return leaves
}

// At walks the tree following names, returning nil if no such path exists.
func (n *Node) At(path ...string) *Node {
	cur := n
	for _, name := range path {
		var next *Node
		for _, c := range cur.Children {
			if c.Name == name {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// NumLeafColumns returns the number of leaf (physical) columns.
func (s *Schema) NumLeafColumns() int { return len(s.Leaves) }

// LeafByIndex returns the leaf at the given 0-based column index.
func (s *Schema) LeafByIndex(i int) (LeafInfo, bool) {
	if i < 0 || i >= len(s.Leaves) {
		return LeafInfo{}, false
	}
	return s.Leaves[i], true
}

// LeafByPath finds a leaf column by its dotted path components.
func (s *Schema) LeafByPath(path ...string) (LeafInfo, bool) {
	for _, l := range s.Leaves {
		if pathEqual(l.Path, path) {
			return l, true
		}
	}
	return LeafInfo{}, false
}

func pathEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Elements flattens the tree back into the pre-order []format.SchemaElement
// form used by FileMetaData. A Node keeps no Scale or Precision, so those
// element fields are not carried back.
func Elements(s *Schema) []format.SchemaElement {
	var out []format.SchemaElement
	flatten(s.Root, true, &out)
	return out
}

func flatten(n *Node, isRoot bool, out *[]format.SchemaElement) {
	el := format.SchemaElement{Name: n.Name}
	if !isRoot {
		el.HasRepetition = true
		el.RepetitionType = n.Repetition
	}
	if n.IsLeaf {
		el.HasType = true
		el.Type = n.Type
		el.HasTypeLength = n.HasTypeLength
		el.TypeLength = n.TypeLength
	} else {
		el.HasNumChildren = true
		el.NumChildren = int32(len(n.Children))
	}
	el.HasConverted = n.HasConverted
	el.ConvertedType = n.ConvertedType
	el.HasFieldID = n.HasFieldID
	el.FieldID = n.FieldID
	el.LogicalType = n.LogicalType
	*out = append(*out, el)
	for _, c := range n.Children {
		flatten(c, false, out)
	}
}
