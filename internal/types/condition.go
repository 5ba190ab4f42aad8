package types

// Expr is a node of the predicate tree. The set of implementations is closed
// to this package.
type Expr interface {
	// Variant names the expression kind, e.g. "Eq" or "HasPermission".
	Variant() string
	exprNode()
}

// Comparison is a leaf comparing a field path against a bound value.
// It covers the comparison, set and string operator families.
type Comparison struct {
	Bind     Bind
	Operator Operator
	Path     FieldPath
}

// Presence is a leaf testing whether a field is null or present.
type Presence struct {
	Path  FieldPath
	Check NullCheck
}

// LogicOperator represents how the children of a Group are combined.
type LogicOperator string

const (
	AND LogicOperator = "AND"
	OR  LogicOperator = "OR"
)

// Group is an N-ary AND/OR node. Renderers always wrap it in one pair of
// parentheses.
type Group struct {
	Logic LogicOperator
	Exprs []Expr
}

// Negation prefixes its child with NOT.
type Negation struct {
	Expr Expr
}

// PermissionCheck tests that a permissions collection holds the bound
// permission.
type PermissionCheck struct {
	Permission Bind
	Path       FieldPath
}

// SubqueryCondition tests a field against the rows of a nested SELECT.
type SubqueryCondition struct {
	Query *AST
	Path  FieldPath
}

// Raw is emitted verbatim.
type Raw struct {
	Text string
}

func (c Comparison) Variant() string { return c.Operator.Variant() }
func (p Presence) Variant() string   { return p.Check.Variant() }
func (g Group) Variant() string {
	if g.Logic == OR {
		return "Or"
	}
	return "And"
}
func (Negation) Variant() string          { return "Not" }
func (PermissionCheck) Variant() string   { return "HasPermission" }
func (SubqueryCondition) Variant() string { return "Subquery" }
func (Raw) Variant() string               { return "Raw" }

func (Comparison) exprNode()        {}
func (Presence) exprNode()          {}
func (Group) exprNode()             {}
func (Negation) exprNode()          {}
func (PermissionCheck) exprNode()   {}
func (SubqueryCondition) exprNode() {}
func (Raw) exprNode()               {}
