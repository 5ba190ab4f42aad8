package types

import (
	"reflect"
	"strings"
)

// Bind is a named placeholder paired with the value substituted at execution
// time. A Ref bind carries no value of its own; it names a value declared in
// AST.Bindings.
type Bind struct {
	Value any
	Name  string
	Ref   bool
}

// Bindings is the insertion-ordered name to value map produced alongside the
// query text.
type Bindings struct {
	values map[string]any
	names  []string
}

// NewBindings returns an empty binding map.
func NewBindings() *Bindings {
	return &Bindings{values: make(map[string]any)}
}

// Put registers value under name. Registering an equal value twice is a
// no-op; a different value under an existing name reports ok == false and
// leaves the map unchanged.
func (b *Bindings) Put(name string, value any) (ok bool) {
	if existing, found := b.values[name]; found {
		return reflect.DeepEqual(existing, value)
	}
	b.values[name] = value
	b.names = append(b.names, name)
	return true
}

// Get returns the value bound to name.
func (b *Bindings) Get(name string) (any, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Has reports whether name is bound.
func (b *Bindings) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Len returns the number of bound names.
func (b *Bindings) Len() int {
	return len(b.names)
}

// Names returns the bound names in registration order.
func (b *Bindings) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Map returns a copy of the bindings as a plain map, the shape most drivers
// accept for named parameters.
func (b *Bindings) Map() map[string]any {
	out := make(map[string]any, len(b.values))
	for k, v := range b.values {
		out[k] = v
	}
	return out
}

// reservedBindNames are keywords of either query language and the graph
// engine's own parameters.
var reservedBindNames = map[string]bool{
	"select": true, "insert": true, "update": true, "delete": true, "drop": true,
	"create": true, "alter": true, "table": true, "from": true, "where": true,
	"and": true, "or": true, "not": true, "null": true, "true": true, "false": true,
	"union": true, "join": true, "having": true, "group": true, "order": true,
	"none": true, "let": true, "fetch": true, "relate": true,
	"auth": true, "session": true, "token": true, "scope": true, "access": true,
	"this": true, "parent": true, "value": true, "before": true, "after": true,
	"input": true, "event": true,
}

// IsBindName reports whether name may be used as a bind: a letter followed
// by letters, digits or underscores, and not a reserved word.
func IsBindName(name string) bool {
	if name == "" {
		return false
	}

	first := name[0]
	if !((first >= 'a' && first <= 'z') ||
		(first >= 'A' && first <= 'Z')) {
		return false
	}

	for i := 1; i < len(name); i++ {
		ch := name[i]
		if !((ch >= 'a' && ch <= 'z') ||
			(ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') ||
			ch == '_') {
			return false
		}
	}

	return !reservedBindNames[strings.ToLower(name)]
}
