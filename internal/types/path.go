package types

import (
	"strconv"
	"strings"
)

// SegmentKind identifies the variant of a PathSegment.
type SegmentKind int

const (
	SegmentField SegmentKind = iota
	SegmentIndex
	SegmentWildcard
)

// PathSegment is one element of a FieldPath: a named field, an array index,
// or a wildcard over every element of an array.
type PathSegment struct {
	Name  string
	Index int
	Kind  SegmentKind
}

// String renders the segment in graph notation. It is used for error
// messages; renderers do their own formatting.
func (s PathSegment) String() string {
	switch s.Kind {
	case SegmentIndex:
		return "[" + strconv.Itoa(s.Index) + "]"
	case SegmentWildcard:
		return "*"
	default:
		return s.Name
	}
}

// FieldPath is the typed address of a possibly nested value.
type FieldPath []PathSegment

// Path lets a FieldPath be used wherever a PathProvider is accepted.
func (p FieldPath) Path() FieldPath {
	return p
}

// Append returns a new path with segs added. The receiver is never modified,
// so chained builders cannot alias each other's backing arrays.
func (p FieldPath) Append(segs ...PathSegment) FieldPath {
	out := make(FieldPath, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}

// Equal reports whether two paths have identical segments.
func (p FieldPath) Equal(other FieldPath) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasIndex reports whether any segment is an array index.
func (p FieldPath) HasIndex() bool {
	for _, s := range p {
		if s.Kind == SegmentIndex {
			return true
		}
	}
	return false
}

// Root returns the first field name of the path, or "" for an empty path.
func (p FieldPath) Root() string {
	if len(p) == 0 || p[0].Kind != SegmentField {
		return ""
	}
	return p[0].Name
}

// String renders the path in graph notation for diagnostics.
func (p FieldPath) String() string {
	var sb strings.Builder
	for i, s := range p {
		if i > 0 && s.Kind != SegmentIndex {
			sb.WriteByte('.')
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}

// PathProvider is anything that resolves to a FieldPath: schema field enums,
// chain builders' results, and FieldPath itself.
type PathProvider interface {
	Path() FieldPath
}

// QueryField is implemented by the per-entity field enumerations.
type QueryField interface {
	PathProvider
	TableRef() Table
}
