package surql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zoobzio/surql/internal/types"
)

// Field creates a named path segment.
func Field(name string) PathSegment {
	return PathSegment{Kind: types.SegmentField, Name: name}
}

// Index creates an array index segment. Only the graph engine renders it.
func Index(i int) PathSegment {
	return PathSegment{Kind: types.SegmentIndex, Index: i}
}

// Wildcard creates a segment matching every element of an array.
func Wildcard() PathSegment {
	return PathSegment{Kind: types.SegmentWildcard}
}

// Path assembles segments into a FieldPath.
func Path(segs ...PathSegment) FieldPath {
	return FieldPath(segs)
}

// ParsePath parses graph notation such as "profile.addresses[0].city" or
// "profile.addresses.*.city".
func ParsePath(s string) (FieldPath, error) {
	if s == "" {
		return nil, fmt.Errorf("empty path")
	}

	var path FieldPath
	for _, part := range strings.Split(s, ".") {
		name := part
		var indexes []int
		if open := strings.IndexByte(part, '['); open >= 0 {
			name = part[:open]
			rest := part[open:]
			for rest != "" {
				end := strings.IndexByte(rest, ']')
				if rest[0] != '[' || end < 0 {
					return nil, fmt.Errorf("malformed index in %q", s)
				}
				i, err := strconv.Atoi(rest[1:end])
				if err != nil || i < 0 {
					return nil, fmt.Errorf("invalid index %q in %q", rest[1:end], s)
				}
				indexes = append(indexes, i)
				rest = rest[end+1:]
			}
		}

		switch {
		case name == "*":
			path = append(path, Wildcard())
		case types.IsIdentifier(name):
			path = append(path, Field(name))
		default:
			return nil, fmt.Errorf("invalid segment %q in %q", part, s)
		}
		for _, i := range indexes {
			path = append(path, Index(i))
		}
	}
	return path, nil
}

// MustParsePath is ParsePath that panics on error.
func MustParsePath(s string) FieldPath {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}
