package surql

import (
	"fmt"

	"github.com/zoobzio/surql/internal/types"
)

// TryB creates a bind carrying value, returning an error if the name is
// invalid.
func TryB(name string, value any) (Bind, error) {
	if !isValidBindName(name) {
		return Bind{}, fmt.Errorf("invalid bind name '%s': must be alphanumeric with underscores, starting with letter", name)
	}
	return Bind{Name: name, Value: value}, nil
}

// B creates a bind carrying value.
// This is the primary way to reference user values in queries.
func B(name string, value any) Bind {
	b, err := TryB(name, value)
	if err != nil {
		panic(err)
	}
	return b
}

// TryRef creates a bind that resolves against AST.Bindings, returning an
// error if the name is invalid.
func TryRef(name string) (Bind, error) {
	if !isValidBindName(name) {
		return Bind{}, fmt.Errorf("invalid bind name '%s': must be alphanumeric with underscores, starting with letter", name)
	}
	return Bind{Name: name, Ref: true}, nil
}

// Ref creates a bind that resolves against AST.Bindings at render time.
func Ref(name string) Bind {
	b, err := TryRef(name)
	if err != nil {
		panic(err)
	}
	return b
}

// Only allows alphanumeric characters and underscores, must start with letter.
func isValidBindName(name string) bool {
	return types.IsBindName(name)
}
