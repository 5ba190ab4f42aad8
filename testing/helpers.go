// Package testing provides test utilities for surql renderers and callers.
package testing

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/zoobzio/surql"
)

// AssertText compares expected and actual query text, reporting both in full.
func AssertText(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("Text mismatch:\nExpected: %s\nActual:   %s", expected, actual)
	}
}

// AssertBindings checks that result binds exactly the expected names to the
// expected values.
func AssertBindings(t *testing.T, result *surql.QueryResult, expected map[string]any) {
	t.Helper()
	got := result.Bindings.Map()
	if len(got) != len(expected) {
		t.Errorf("Binding count mismatch: expected %d, got %d\nExpected: %v\nActual: %v",
			len(expected), len(got), expected, got)
		return
	}
	for name, want := range expected {
		v, ok := got[name]
		if !ok {
			t.Errorf("Missing binding $%s\nActual: %v", name, got)
			continue
		}
		if !reflect.DeepEqual(v, want) {
			t.Errorf("Binding $%s = %#v, want %#v", name, v, want)
		}
	}
}

// AssertBindOrder checks the order in which names were bound.
func AssertBindOrder(t *testing.T, result *surql.QueryResult, names ...string) {
	t.Helper()
	got := result.Bindings.Names()
	if !reflect.DeepEqual(got, names) {
		t.Errorf("Bind order = %v, want %v", got, names)
	}
}

// AssertArgs checks positional arguments in order.
func AssertArgs(t *testing.T, expected, actual []any) {
	t.Helper()
	if len(expected) == 0 && len(actual) == 0 {
		return
	}
	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("Args mismatch:\nExpected: %#v\nActual:   %#v", expected, actual)
	}
}

// AssertBalancedParens checks that text opens and closes the same number of
// parentheses, and opens exactly want of them.
func AssertBalancedParens(t *testing.T, text string, want int) {
	t.Helper()
	open, closed := strings.Count(text, "("), strings.Count(text, ")")
	if open != closed {
		t.Errorf("Unbalanced parentheses (%d open, %d closed) in %s", open, closed, text)
	}
	if open != want {
		t.Errorf("Parenthesis pairs = %d, want %d in %s", open, want, text)
	}
}

// CountGroups returns the number of And and Or nodes in e.
func CountGroups(e surql.Expr) int {
	switch x := e.(type) {
	case surql.Group:
		n := 1
		for _, child := range x.Exprs {
			n += CountGroups(child)
		}
		return n
	case surql.Negation:
		return CountGroups(x.Expr)
	default:
		return 0
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertErrorAs checks that err matches E and returns the match.
func AssertErrorAs[E error](t *testing.T, err error) E {
	t.Helper()
	var target E
	if !errors.As(err, &target) {
		t.Fatalf("Expected %T, got: %v", target, err)
	}
	return target
}

// AssertPanics verifies that a function panics.
func AssertPanics(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic but function completed normally")
		}
	}()
	fn()
}

// AssertPanicsWithMessage verifies that a function panics with a specific message.
func AssertPanicsWithMessage(t *testing.T, fn func(), substr string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("Expected panic containing %q but function completed normally", substr)
			return
		}
		var msg string
		switch v := r.(type) {
		case error:
			msg = v.Error()
		case string:
			msg = v
		default:
			t.Errorf("Panic value is not string or error: %T", r)
			return
		}
		if !strings.Contains(msg, substr) {
			t.Errorf("Expected panic containing %q, got: %s", substr, msg)
		}
	}()
	fn()
}
