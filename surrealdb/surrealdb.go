// Package surrealdb provides the graph engine renderer for surql.
package surrealdb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zoobzio/surql/internal/render"
	"github.com/zoobzio/surql/internal/types"
)

// Renderer implements the SurrealDB graph renderer.
type Renderer struct{}

// New creates a new SurrealDB renderer.
func New() *Renderer {
	return &Renderer{}
}

// Engine returns the engine this renderer targets.
func (r *Renderer) Engine() types.Engine {
	return types.EngineSurrealDB
}

// Render converts an AST to a QueryResult with SurrealQL text and named
// $bind placeholders.
func (r *Renderer) Render(ast *types.AST) (*types.QueryResult, error) {
	if err := ast.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AST: %w", err)
	}

	ctx, err := render.NewContext(types.EngineSurrealDB, ast.Bindings)
	if err != nil {
		return nil, err
	}

	var sql strings.Builder
	if err := r.renderStatement(ast, &sql, ctx); err != nil {
		return nil, err
	}
	return ctx.Result(sql.String())
}

// RenderTransaction renders the statements as one transaction block. All
// statements share one Bindings map, so a name bound twice must carry the
// same value everywhere.
func (r *Renderer) RenderTransaction(asts ...*types.AST) (*types.QueryResult, error) {
	if len(asts) == 0 {
		return nil, fmt.Errorf("transaction requires at least one statement")
	}

	ctx, err := render.NewContext(types.EngineSurrealDB, nil)
	if err != nil {
		return nil, err
	}

	var sql strings.Builder
	sql.WriteString("BEGIN TRANSACTION;")
	for i, ast := range asts {
		if err := ast.Validate(); err != nil {
			return nil, fmt.Errorf("invalid AST at statement %d: %w", i, err)
		}
		if err := ctx.Declare(ast.Bindings); err != nil {
			return nil, err
		}
		sql.WriteString(" ")
		if err := r.renderStatement(ast, &sql, ctx); err != nil {
			return nil, fmt.Errorf("statement %d: %w", i, err)
		}
		sql.WriteString(";")
	}
	sql.WriteString(" COMMIT TRANSACTION;")
	return ctx.Result(sql.String())
}

func (r *Renderer) renderStatement(ast *types.AST, sql *strings.Builder, ctx *render.Context) error {
	switch ast.Kind {
	case types.KindSelect:
		return r.renderSelect(ast, sql, ctx)
	case types.KindUpdate:
		return r.renderUpdate(ast, sql, ctx)
	case types.KindDelete:
		return r.renderDelete(ast, sql, ctx)
	case types.KindInsert:
		return r.renderInsert(ast, sql, ctx)
	default:
		return fmt.Errorf("unsupported kind: %s", ast.Kind)
	}
}

func (r *Renderer) renderSelect(ast *types.AST, sql *strings.Builder, ctx *render.Context) error {
	sql.WriteString("SELECT ")

	switch p := ast.Projection.(type) {
	case nil, types.AllProjection:
		sql.WriteString("*")
	case types.FieldsProjection:
		sql.WriteString(r.renderPaths(p.Fields))
	case types.ConditionalProjection:
		return render.NewUnsupportedExprError(types.EngineSurrealDB, "ConditionalProjection",
			"filter in WHERE and project the fields unconditionally")
	default:
		return fmt.Errorf("unknown projection type: %T", p)
	}

	sql.WriteString(" FROM ")
	sql.WriteString(ast.Table.String())

	for _, join := range ast.Joins {
		sql.WriteString(" ")
		if err := r.renderJoin(join, sql, ctx); err != nil {
			return err
		}
	}

	if ast.Filter != nil {
		sql.WriteString(" WHERE ")
		if err := r.renderExpr(ast.Filter, sql, ctx); err != nil {
			return err
		}
	}

	if len(ast.GroupBy) > 0 {
		sql.WriteString(" GROUP BY ")
		sql.WriteString(r.renderPaths(ast.GroupBy))
	}

	if len(ast.OrderBy) > 0 {
		sql.WriteString(" ORDER BY ")
		parts := make([]string, len(ast.OrderBy))
		for i, o := range ast.OrderBy {
			dir := o.Direction
			if dir == "" {
				dir = types.ASC
			}
			parts[i] = r.renderPath(o.Path) + " " + string(dir)
		}
		sql.WriteString(strings.Join(parts, ", "))
	}

	if ast.Limit != nil {
		sql.WriteString(" LIMIT ")
		sql.WriteString(strconv.Itoa(ast.Limit.Count))
		if ast.Limit.Start > 0 {
			sql.WriteString(" START ")
			sql.WriteString(strconv.Itoa(ast.Limit.Start))
		}
	}

	return nil
}

func (r *Renderer) renderUpdate(ast *types.AST, sql *strings.Builder, ctx *render.Context) error {
	sql.WriteString("UPDATE ")
	sql.WriteString(ast.Table.String())
	sql.WriteString(" SET ")

	for i, a := range ast.Assignments {
		if i > 0 {
			sql.WriteString(", ")
		}
		placeholder, err := ctx.Param(a.Bind)
		if err != nil {
			return err
		}
		fmt.Fprintf(sql, "%s = %s", r.renderPath(a.Path), placeholder)
	}

	if ast.Filter != nil {
		sql.WriteString(" WHERE ")
		if err := r.renderExpr(ast.Filter, sql, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderDelete(ast *types.AST, sql *strings.Builder, ctx *render.Context) error {
	sql.WriteString("DELETE FROM ")
	sql.WriteString(ast.Table.String())

	if ast.Filter != nil {
		sql.WriteString(" WHERE ")
		if err := r.renderExpr(ast.Filter, sql, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderInsert(ast *types.AST, sql *strings.Builder, ctx *render.Context) error {
	sql.WriteString("INSERT INTO ")
	sql.WriteString(ast.Table.String())

	columns := make([]string, len(ast.Assignments))
	values := make([]string, len(ast.Assignments))
	for i, a := range ast.Assignments {
		placeholder, err := ctx.Param(a.Bind)
		if err != nil {
			return err
		}
		columns[i] = r.renderPath(a.Path)
		values[i] = placeholder
	}

	fmt.Fprintf(sql, " (%s) VALUES (%s)", strings.Join(columns, ", "), strings.Join(values, ", "))
	return nil
}

func (r *Renderer) renderJoin(join types.Join, sql *strings.Builder, ctx *render.Context) error {
	switch j := join.(type) {
	case types.EdgeJoin:
		fmt.Fprintf(sql, "->%s->%s", j.Edge, j.Target)
		r.renderAlias(j.Alias, sql)
	case types.ReverseEdgeJoin:
		fmt.Fprintf(sql, "<-%s<-%s", j.Edge, j.Target)
		r.renderAlias(j.Alias, sql)
	case types.FetchJoin:
		sql.WriteString("FETCH ")
		sql.WriteString(r.renderPath(j.Path))
	case types.LetJoin:
		ctx.DeclareLet(j.Alias)
		fmt.Fprintf(sql, "LET $%s = (", j.Alias)
		if err := r.renderSubquery(j.Query, sql, ctx); err != nil {
			return err
		}
		sql.WriteString(")")
	default:
		return fmt.Errorf("unknown join type: %T", join)
	}
	return nil
}

func (r *Renderer) renderAlias(alias string, sql *strings.Builder) {
	if alias != "" {
		sql.WriteString(" AS ")
		sql.WriteString(alias)
	}
}

func (r *Renderer) renderSubquery(q *types.AST, sql *strings.Builder, ctx *render.Context) error {
	if err := ctx.Descend(); err != nil {
		return err
	}
	defer ctx.Ascend()

	if err := ctx.Declare(q.Bindings); err != nil {
		return err
	}
	return r.renderSelect(q, sql, ctx)
}

func (r *Renderer) renderExpr(expr types.Expr, sql *strings.Builder, ctx *render.Context) error {
	switch e := expr.(type) {
	case types.Comparison:
		return r.renderComparison(e, sql, ctx)
	case types.Presence:
		path := r.renderPath(e.Path)
		switch e.Check {
		case types.CheckIsNull:
			sql.WriteString(path + " IS NONE")
		case types.CheckIsNotNull:
			sql.WriteString(path + " IS NOT NONE")
		case types.CheckExists:
			sql.WriteString(path + " != NONE")
		case types.CheckNotExists:
			sql.WriteString(path + " = NONE")
		default:
			return fmt.Errorf("unknown presence check: %d", e.Check)
		}
	case types.Group:
		if len(e.Exprs) == 0 {
			return fmt.Errorf("empty condition group")
		}
		sql.WriteString("(")
		for i, child := range e.Exprs {
			if i > 0 {
				fmt.Fprintf(sql, " %s ", e.Logic)
			}
			if err := r.renderExpr(child, sql, ctx); err != nil {
				return err
			}
		}
		sql.WriteString(")")
	case types.Negation:
		sql.WriteString("NOT ")
		return r.renderExpr(e.Expr, sql, ctx)
	case types.PermissionCheck:
		placeholder, err := ctx.Param(e.Permission)
		if err != nil {
			return err
		}
		fmt.Fprintf(sql, "%s CONTAINS %s", r.renderPath(e.Path), placeholder)
	case types.SubqueryCondition:
		fmt.Fprintf(sql, "%s IN (", r.renderPath(e.Path))
		if err := r.renderSubquery(e.Query, sql, ctx); err != nil {
			return err
		}
		sql.WriteString(")")
	case types.Raw:
		ctx.AddRaw(e.Text)
		sql.WriteString(e.Text)
	default:
		return fmt.Errorf("unknown expression type: %T", expr)
	}
	return nil
}

func (r *Renderer) renderComparison(c types.Comparison, sql *strings.Builder, ctx *render.Context) error {
	var fn string
	switch c.Operator {
	case types.EQ, types.NE, types.GT, types.GTE, types.LT, types.LTE,
		types.IN, types.NotIn, types.Contains, types.ContainsAny, types.ContainsAll:
	case types.StartsWith:
		fn = "string::starts_with"
	case types.EndsWith:
		fn = "string::ends_with"
	case types.Matches:
		fn = "string::matches"
	case types.LIKE, types.ILIKE:
		return render.NewUnsupportedExprError(types.EngineSurrealDB, c.Variant(),
			"use StartsWith, EndsWith or Matches")
	default:
		return fmt.Errorf("unknown operator: %s", c.Operator)
	}

	placeholder, err := ctx.Param(c.Bind)
	if err != nil {
		return err
	}

	path := r.renderPath(c.Path)
	if fn != "" {
		fmt.Fprintf(sql, "%s(%s, %s)", fn, path, placeholder)
		return nil
	}
	fmt.Fprintf(sql, "%s %s %s", path, c.Operator, placeholder)
	return nil
}

func (r *Renderer) renderPaths(paths []types.FieldPath) string {
	parts := make([]string, len(paths))
	for i, p := range paths {
		parts[i] = r.renderPath(p)
	}
	return strings.Join(parts, ", ")
}

// renderPath joins fields with dots and attaches indexes to the preceding
// segment: profile.addresses[0].city, profile.addresses.*.city.
func (r *Renderer) renderPath(p types.FieldPath) string {
	var sb strings.Builder
	for i, seg := range p {
		switch seg.Kind {
		case types.SegmentIndex:
			sb.WriteString("[")
			sb.WriteString(strconv.Itoa(seg.Index))
			sb.WriteString("]")
		case types.SegmentWildcard:
			if i > 0 {
				sb.WriteString(".")
			}
			sb.WriteString("*")
		default:
			if i > 0 {
				sb.WriteString(".")
			}
			sb.WriteString(seg.Name)
		}
	}
	return sb.String()
}

// Capabilities returns the features supported by SurrealDB.
func (r *Renderer) Capabilities() render.Capabilities {
	return render.Capabilities{
		IndexSegments:    true,
		GraphHops:        true,
		Fetch:            true,
		Let:              true,
		RegexOperators:   true,
		ArrayContainment: true,
		Transactions:     true,
	}
}
