package testing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/zoobzio/surql"
)

func result(args []any, binds ...surql.Bind) *surql.QueryResult {
	b := surql.NewBindings()
	for _, bind := range binds {
		b.Put(bind.Name, bind.Value)
	}
	return &surql.QueryResult{Text: "SELECT * FROM user", Bindings: b, Args: args}
}

// =============================================================================
// AssertText Tests
// =============================================================================

func TestAssertText_Match(t *testing.T) {
	AssertText(t, "SELECT * FROM user", "SELECT * FROM user")
}

// =============================================================================
// AssertBindings Tests
// =============================================================================

func TestAssertBindings_Match(t *testing.T) {
	r := result(nil, surql.Bind{Name: "a", Value: 1}, surql.Bind{Name: "b", Value: []string{"x"}})
	AssertBindings(t, r, map[string]any{"a": 1, "b": []string{"x"}})
}

func TestAssertBindings_Empty(t *testing.T) {
	AssertBindings(t, result(nil), map[string]any{})
}

func TestAssertBindOrder(t *testing.T) {
	r := result(nil, surql.Bind{Name: "z", Value: 1}, surql.Bind{Name: "a", Value: 2})
	AssertBindOrder(t, r, "z", "a")
}

// =============================================================================
// AssertArgs Tests
// =============================================================================

func TestAssertArgs_Match(t *testing.T) {
	AssertArgs(t, []any{"a", 1}, []any{"a", 1})
}

func TestAssertArgs_NilAndEmpty(t *testing.T) {
	AssertArgs(t, nil, []any{})
}

// =============================================================================
// Parenthesis Tests
// =============================================================================

func TestAssertBalancedParens(t *testing.T) {
	AssertBalancedParens(t, "SELECT * FROM user WHERE (a = $a AND (b = $b OR c = $c))", 2)
	AssertBalancedParens(t, "SELECT * FROM user", 0)
}

func TestCountGroups(t *testing.T) {
	a := surql.Eq(surql.Path(surql.Field("a")), surql.B("a", 1))
	b := surql.Eq(surql.Path(surql.Field("b")), surql.B("b", 2))

	tests := []struct {
		name     string
		expr     surql.Expr
		expected int
	}{
		{"leaf", a, 0},
		{"flat", surql.And(a, b), 1},
		{"nested", surql.And(a, surql.Or(a, b)), 2},
		{"negated", surql.Not(surql.Or(a, b)), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountGroups(tt.expr); got != tt.expected {
				t.Errorf("CountGroups() = %d, want %d", got, tt.expected)
			}
		})
	}
}

// =============================================================================
// Error Assertion Tests
// =============================================================================

func TestAssertNoError_Nil(t *testing.T) {
	AssertNoError(t, nil)
}

func TestAssertError_Error(t *testing.T) {
	AssertError(t, errors.New("test error"))
}

func TestAssertErrorContains_Match(t *testing.T) {
	AssertErrorContains(t, errors.New("connection failed: timeout"), "timeout")
}

func TestAssertErrorAs_Wrapped(t *testing.T) {
	err := fmt.Errorf("render: %w", surql.MissingBindingError{Name: "user"})
	got := AssertErrorAs[surql.MissingBindingError](t, err)
	if got.Name != "user" {
		t.Errorf("Name = %q, want user", got.Name)
	}
}

// =============================================================================
// AssertPanics Tests
// =============================================================================

func TestAssertPanics_Panics(t *testing.T) {
	AssertPanics(t, func() {
		panic("expected panic")
	})
}

func TestAssertPanicsWithMessage_StringPanic(t *testing.T) {
	AssertPanicsWithMessage(t, func() {
		panic("invalid input: value too large")
	}, "invalid input")
}

func TestAssertPanicsWithMessage_ErrorPanic(t *testing.T) {
	AssertPanicsWithMessage(t, func() {
		panic(errors.New("validation failed: missing field"))
	}, "validation failed")
}
