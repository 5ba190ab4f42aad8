package render

import (
	"fmt"

	"github.com/zoobzio/surql/internal/types"
)

// UnsupportedExprError indicates an expression, join or projection that the
// engine has no rendering for.
type UnsupportedExprError struct {
	Variant string
	Engine  types.Engine
	Hint    string
}

func (e UnsupportedExprError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s is not supported: %s", e.Engine, e.Variant, e.Hint)
	}
	return fmt.Sprintf("%s: %s is not supported", e.Engine, e.Variant)
}

// NewUnsupportedExprError creates a new unsupported expression error.
func NewUnsupportedExprError(engine types.Engine, variant string, hint ...string) error {
	err := UnsupportedExprError{Variant: variant, Engine: engine}
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	return err
}

// MissingBindingError indicates a referenced bind with no value.
type MissingBindingError struct {
	Name string
}

func (e MissingBindingError) Error() string {
	return fmt.Sprintf("no value bound for $%s", e.Name)
}

// InvalidPathForEngineError indicates a path segment the engine cannot
// address, such as an array index in SQL.
type InvalidPathForEngineError struct {
	Segment string
	Engine  types.Engine
}

func (e InvalidPathForEngineError) Error() string {
	return fmt.Sprintf("%s: path segment %s cannot be rendered", e.Engine, e.Segment)
}

// DuplicateBindNameError indicates one bind name registered with two
// different values.
type DuplicateBindNameError struct {
	Name string
}

func (e DuplicateBindNameError) Error() string {
	return fmt.Sprintf("bind $%s registered with conflicting values", e.Name)
}
