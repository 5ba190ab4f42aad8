package types

import (
	"errors"
	"fmt"
)

// Kind represents the type of statement.
type Kind string

const (
	KindSelect Kind = "SELECT"
	KindUpdate Kind = "UPDATE"
	KindDelete Kind = "DELETE"
	KindInsert Kind = "INSERT"
)

// Direction represents sort direction.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// OrderBy represents an ORDER BY term.
type OrderBy struct {
	Direction Direction
	Path      FieldPath
}

// Limit caps the number of returned rows, skipping Start rows first.
type Limit struct {
	Count int
	Start int
}

// Assignment sets Path to the bound value in UPDATE and INSERT statements.
type Assignment struct {
	Bind Bind
	Path FieldPath
}

// Constants for subquery handling.
const (
	MaxSubqueryDepth = 3 // Prevent DoS via deep nesting
)

// AST is the abstract syntax tree of a single statement.
//
//nolint:govet // fieldalignment: Logical grouping is preferred over memory optimization
type AST struct {
	Kind        Kind
	Table       Table
	Projection  Projection
	Joins       []Join
	Filter      Expr
	OrderBy     []OrderBy
	GroupBy     []FieldPath
	Limit       *Limit
	Assignments []Assignment
	Bindings    []Bind // Values referenced by Ref binds
}

// Validate checks the structural invariants of the AST and every nested
// query it carries.
func (ast *AST) Validate() error {
	return ast.validate(0)
}

func (ast *AST) validate(depth int) error {
	if depth > MaxSubqueryDepth {
		return fmt.Errorf("subquery nesting exceeds maximum depth of %d", MaxSubqueryDepth)
	}
	if !ast.Table.Valid() {
		return fmt.Errorf("invalid table: %d", ast.Table)
	}

	if err := ast.validateKind(); err != nil {
		return err
	}

	if err := validateProjection(ast.Projection, depth); err != nil {
		return err
	}

	lets := make(map[string]bool)
	for i, j := range ast.Joins {
		if err := validateJoin(j, depth, lets); err != nil {
			return fmt.Errorf("join %d: %w", i, err)
		}
	}

	if ast.Filter != nil {
		if err := validateExpr(ast.Filter, depth); err != nil {
			return fmt.Errorf("filter: %w", err)
		}
	}

	for i, o := range ast.OrderBy {
		if err := validatePath(o.Path); err != nil {
			return fmt.Errorf("order by %d: %w", i, err)
		}
		if o.Direction != ASC && o.Direction != DESC && o.Direction != "" {
			return fmt.Errorf("order by %d: invalid direction %q", i, o.Direction)
		}
	}
	for i, g := range ast.GroupBy {
		if err := validatePath(g); err != nil {
			return fmt.Errorf("group by %d: %w", i, err)
		}
	}

	if ast.Limit != nil {
		if ast.Limit.Count < 0 {
			return fmt.Errorf("limit must be non-negative, got %d", ast.Limit.Count)
		}
		if ast.Limit.Start < 0 {
			return fmt.Errorf("start must be non-negative, got %d", ast.Limit.Start)
		}
	}

	for i, a := range ast.Assignments {
		if err := validatePath(a.Path); err != nil {
			return fmt.Errorf("assignment %d: %w", i, err)
		}
		if err := validateBindName(a.Bind.Name); err != nil {
			return fmt.Errorf("assignment %d: %w", i, err)
		}
	}
	for i, b := range ast.Bindings {
		if err := validateBindName(b.Name); err != nil {
			return fmt.Errorf("binding %d: %w", i, err)
		}
	}
	return nil
}

func (ast *AST) validateKind() error {
	hasProjection := ast.Projection != nil
	hasShape := len(ast.Joins) > 0 || len(ast.GroupBy) > 0 || len(ast.OrderBy) > 0 || ast.Limit != nil

	switch ast.Kind {
	case KindSelect:
		if len(ast.Assignments) > 0 {
			return errors.New("SELECT cannot have assignments")
		}
	case KindUpdate:
		if len(ast.Assignments) == 0 {
			return errors.New("UPDATE requires at least one assignment")
		}
		if hasShape || hasProjection {
			return errors.New("UPDATE cannot have SELECT features like projection, JOIN, GROUP BY, ORDER BY or LIMIT")
		}
	case KindDelete:
		if len(ast.Assignments) > 0 {
			return errors.New("DELETE cannot have assignments")
		}
		if hasShape || hasProjection {
			return errors.New("DELETE cannot have SELECT features like projection, JOIN, GROUP BY, ORDER BY or LIMIT")
		}
	case KindInsert:
		if len(ast.Assignments) == 0 {
			return errors.New("INSERT requires at least one assignment")
		}
		if ast.Filter != nil {
			return errors.New("INSERT cannot have a filter")
		}
		if hasShape || hasProjection {
			return errors.New("INSERT cannot have SELECT features like projection, JOIN, GROUP BY, ORDER BY or LIMIT")
		}
	default:
		return fmt.Errorf("unsupported kind: %q", ast.Kind)
	}
	return nil
}

func validateProjection(p Projection, depth int) error {
	switch proj := p.(type) {
	case nil, AllProjection:
		return nil
	case FieldsProjection:
		if len(proj.Fields) == 0 {
			return errors.New("fields projection requires at least one field")
		}
		return validatePaths(proj.Fields)
	case ConditionalProjection:
		if proj.Condition == nil {
			return errors.New("conditional projection requires a condition")
		}
		if len(proj.Fields) == 0 {
			return errors.New("conditional projection requires at least one field")
		}
		if err := validatePaths(proj.Fields); err != nil {
			return err
		}
		return validateExpr(proj.Condition, depth)
	default:
		return fmt.Errorf("unknown projection type: %T", p)
	}
}

func validatePaths(paths []FieldPath) error {
	for i, p := range paths {
		if err := validatePath(p); err != nil {
			return fmt.Errorf("field %d: %w", i, err)
		}
	}
	return nil
}

// validatePath rejects empty paths and any segment that would not render as
// a plain identifier, index or wildcard.
func validatePath(p FieldPath) error {
	if len(p) == 0 {
		return errors.New("empty path")
	}
	for _, seg := range p {
		switch seg.Kind {
		case SegmentField:
			if !IsIdentifier(seg.Name) {
				return fmt.Errorf("invalid field name %q", seg.Name)
			}
		case SegmentIndex:
			if seg.Index < 0 {
				return fmt.Errorf("invalid index %d", seg.Index)
			}
		case SegmentWildcard:
		default:
			return fmt.Errorf("unknown segment kind %d", seg.Kind)
		}
	}
	return nil
}

func validateBindName(name string) error {
	if name == "" {
		return errors.New("bind name is required")
	}
	if !IsBindName(name) {
		return fmt.Errorf("invalid bind name %q", name)
	}
	return nil
}

func validateJoin(j Join, depth int, lets map[string]bool) error {
	switch jn := j.(type) {
	case EdgeJoin:
		return validateEdge(jn.Edge, jn.Target, jn.Alias)
	case ReverseEdgeJoin:
		return validateEdge(jn.Edge, jn.Target, jn.Alias)
	case FetchJoin:
		if len(jn.Path) == 0 {
			return errors.New("fetch requires a path")
		}
		return validatePath(jn.Path)
	case LetJoin:
		if !IsIdentifier(jn.Alias) {
			return fmt.Errorf("invalid LET alias %q", jn.Alias)
		}
		if lets[jn.Alias] {
			return fmt.Errorf("duplicate LET alias %q", jn.Alias)
		}
		lets[jn.Alias] = true
		return validateSubquery(jn.Query, depth)
	case nil:
		return errors.New("nil join")
	default:
		return fmt.Errorf("unknown join type: %T", j)
	}
}

func validateEdge(e Edge, target Table, alias string) error {
	if !e.Valid() {
		return fmt.Errorf("invalid edge: %d", e)
	}
	if !target.Valid() {
		return fmt.Errorf("invalid target table: %d", target)
	}
	if alias != "" && !IsIdentifier(alias) {
		return fmt.Errorf("invalid alias %q", alias)
	}
	return nil
}

func validateSubquery(q *AST, depth int) error {
	if q == nil {
		return errors.New("subquery is required")
	}
	if q.Kind != KindSelect {
		return fmt.Errorf("subquery must be SELECT, got %s", q.Kind)
	}
	return q.validate(depth + 1)
}

func validateExpr(e Expr, depth int) error {
	switch ex := e.(type) {
	case Comparison:
		if !ex.Operator.Valid() {
			return fmt.Errorf("unknown operator %q", ex.Operator)
		}
		if err := validatePath(ex.Path); err != nil {
			return fmt.Errorf("%s: %w", ex.Variant(), err)
		}
		if err := validateBindName(ex.Bind.Name); err != nil {
			return fmt.Errorf("%s: %w", ex.Variant(), err)
		}
	case Presence:
		if err := validatePath(ex.Path); err != nil {
			return fmt.Errorf("%s: %w", ex.Variant(), err)
		}
	case Group:
		if ex.Logic != AND && ex.Logic != OR {
			return fmt.Errorf("unknown logic operator %q", ex.Logic)
		}
		if len(ex.Exprs) == 0 {
			return fmt.Errorf("%s requires at least one expression", ex.Logic)
		}
		for _, child := range ex.Exprs {
			if err := validateExpr(child, depth); err != nil {
				return err
			}
		}
	case Negation:
		if ex.Expr == nil {
			return errors.New("NOT requires an expression")
		}
		return validateExpr(ex.Expr, depth)
	case PermissionCheck:
		if err := validatePath(ex.Path); err != nil {
			return fmt.Errorf("HasPermission: %w", err)
		}
		if err := validateBindName(ex.Permission.Name); err != nil {
			return fmt.Errorf("HasPermission: %w", err)
		}
	case SubqueryCondition:
		if err := validatePath(ex.Path); err != nil {
			return fmt.Errorf("Subquery: %w", err)
		}
		return validateSubquery(ex.Query, depth)
	case Raw:
		if ex.Text == "" {
			return errors.New("raw expression cannot be empty")
		}
	case nil:
		return errors.New("nil expression")
	default:
		return fmt.Errorf("unknown expression type: %T", e)
	}
	return nil
}

// IsIdentifier reports whether s is a letter or underscore followed by
// letters, digits or underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
