package surql

import (
	"fmt"

	"github.com/zoobzio/surql/internal/types"
)

func cmp(f PathProvider, op Operator, b Bind) Comparison {
	return types.Comparison{Path: f.Path(), Operator: op, Bind: b}
}

// Eq creates an equality comparison.
func Eq(f PathProvider, b Bind) Comparison { return cmp(f, types.EQ, b) }

// Ne creates an inequality comparison.
func Ne(f PathProvider, b Bind) Comparison { return cmp(f, types.NE, b) }

// Gt creates a greater-than comparison.
func Gt(f PathProvider, b Bind) Comparison { return cmp(f, types.GT, b) }

// Gte creates a greater-or-equal comparison.
func Gte(f PathProvider, b Bind) Comparison { return cmp(f, types.GTE, b) }

// Lt creates a less-than comparison.
func Lt(f PathProvider, b Bind) Comparison { return cmp(f, types.LT, b) }

// Lte creates a less-or-equal comparison.
func Lte(f PathProvider, b Bind) Comparison { return cmp(f, types.LTE, b) }

// In tests membership of the field in the bound collection.
func In(f PathProvider, b Bind) Comparison { return cmp(f, types.IN, b) }

// NotIn is the negation of In.
func NotIn(f PathProvider, b Bind) Comparison { return cmp(f, types.NotIn, b) }

// Contains tests that the collection at f holds the bound value.
func Contains(f PathProvider, b Bind) Comparison { return cmp(f, types.Contains, b) }

// ContainsAny tests that the collection at f shares a value with the bound
// collection.
func ContainsAny(f PathProvider, b Bind) Comparison { return cmp(f, types.ContainsAny, b) }

// ContainsAll tests that the collection at f holds every bound value.
func ContainsAll(f PathProvider, b Bind) Comparison { return cmp(f, types.ContainsAll, b) }

// Like matches a SQL LIKE pattern.
func Like(f PathProvider, b Bind) Comparison { return cmp(f, types.LIKE, b) }

// ILike matches a SQL LIKE pattern ignoring case.
func ILike(f PathProvider, b Bind) Comparison { return cmp(f, types.ILIKE, b) }

// StartsWith tests a string prefix.
func StartsWith(f PathProvider, b Bind) Comparison { return cmp(f, types.StartsWith, b) }

// EndsWith tests a string suffix.
func EndsWith(f PathProvider, b Bind) Comparison { return cmp(f, types.EndsWith, b) }

// Matches tests a regular expression.
func Matches(f PathProvider, b Bind) Comparison { return cmp(f, types.Matches, b) }

// IsNull creates an IS NULL check.
func IsNull(f PathProvider) Presence {
	return types.Presence{Path: f.Path(), Check: types.CheckIsNull}
}

// IsNotNull creates an IS NOT NULL check.
func IsNotNull(f PathProvider) Presence {
	return types.Presence{Path: f.Path(), Check: types.CheckIsNotNull}
}

// Exists tests that the field is present.
func Exists(f PathProvider) Presence {
	return types.Presence{Path: f.Path(), Check: types.CheckExists}
}

// NotExists tests that the field is absent.
func NotExists(f PathProvider) Presence {
	return types.Presence{Path: f.Path(), Check: types.CheckNotExists}
}

// TryAnd creates a Group with AND logic, returning an error if invalid.
func TryAnd(exprs ...Expr) (Group, error) {
	if len(exprs) == 0 {
		return Group{}, fmt.Errorf("AND requires at least one expression")
	}
	return types.Group{Logic: types.AND, Exprs: exprs}, nil
}

// And creates a Group with AND logic.
func And(exprs ...Expr) Group {
	g, err := TryAnd(exprs...)
	if err != nil {
		panic(err)
	}
	return g
}

// TryOr creates a Group with OR logic, returning an error if invalid.
func TryOr(exprs ...Expr) (Group, error) {
	if len(exprs) == 0 {
		return Group{}, fmt.Errorf("OR requires at least one expression")
	}
	return types.Group{Logic: types.OR, Exprs: exprs}, nil
}

// Or creates a Group with OR logic.
func Or(exprs ...Expr) Group {
	g, err := TryOr(exprs...)
	if err != nil {
		panic(err)
	}
	return g
}

// Not negates e.
func Not(e Expr) Negation {
	return types.Negation{Expr: e}
}

// HasPermission tests that the permissions collection at f holds the bound
// permission.
func HasPermission(f PathProvider, permission Bind) PermissionCheck {
	return types.PermissionCheck{Path: f.Path(), Permission: permission}
}

// Subquery tests f against the rows of a nested SELECT.
func Subquery(f PathProvider, query *AST) SubqueryCondition {
	return types.SubqueryCondition{Path: f.Path(), Query: query}
}

// RawExpr emits text verbatim. On the graph engine every $name it references
// must be bound, LET-defined or built in.
func RawExpr(text string) Raw {
	return types.Raw{Text: text}
}
