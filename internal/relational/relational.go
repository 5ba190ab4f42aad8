// Package relational renders ASTs as SQL. The engine-specific parts are
// supplied by a Dialect; the postgres, sqlite and mysql packages wrap it.
package relational

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/zoobzio/surql/internal/render"
	"github.com/zoobzio/surql/internal/types"
)

// Dialect supplies the syntax that differs between SQL engines. Each method
// receives already rendered paths and placeholders.
type Dialect interface {
	Engine() types.Engine
	QuoteIdentifier(name string) string
	// RenderIn renders In or NotIn, calling arg once per placeholder.
	RenderIn(path string, negate bool, value any, arg func(any) string) string
	RenderILike(path, placeholder string) string
	RenderMatches(path, placeholder string) (string, error)
	// RenderContains tests that the collection at path holds one value.
	RenderContains(path, placeholder string) (string, error)
	// RenderContainsSet renders ContainsAny and ContainsAll.
	RenderContainsSet(op types.Operator, path, placeholder string) (string, error)
	// LikeEscape is appended to LIKE patterns built from user input.
	LikeEscape() string
}

// Renderer renders SQL for one Dialect.
type Renderer struct {
	dialect     Dialect
	placeholder func(n int) string
}

// New creates a renderer for d. A nil placeholder emits "?".
func New(d Dialect, placeholder func(n int) string) *Renderer {
	return &Renderer{dialect: d, placeholder: placeholder}
}

// Engine returns the engine of the underlying dialect.
func (r *Renderer) Engine() types.Engine {
	return r.dialect.Engine()
}

// Render converts an AST to a QueryResult with SQL text and positional
// arguments.
func (r *Renderer) Render(ast *types.AST) (*types.QueryResult, error) {
	if err := ast.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AST: %w", err)
	}

	ctx, err := render.NewContext(r.dialect.Engine(), ast.Bindings)
	if err != nil {
		return nil, err
	}
	ctx.Placeholder = r.placeholder

	var sql strings.Builder
	switch ast.Kind {
	case types.KindSelect:
		err = r.renderSelect(ast, &sql, ctx)
	case types.KindUpdate:
		err = r.renderUpdate(ast, &sql, ctx)
	case types.KindDelete:
		err = r.renderDelete(ast, &sql, ctx)
	case types.KindInsert:
		err = r.renderInsert(ast, &sql, ctx)
	default:
		err = fmt.Errorf("unsupported kind: %s", ast.Kind)
	}
	if err != nil {
		return nil, err
	}
	return ctx.Result(sql.String())
}

func (r *Renderer) renderSelect(ast *types.AST, sql *strings.Builder, ctx *render.Context) error {
	// LET joins become common table expressions ahead of SELECT so that
	// their arguments come first, matching text order.
	var ctes []types.LetJoin
	for _, join := range ast.Joins {
		if let, ok := join.(types.LetJoin); ok {
			ctes = append(ctes, let)
		}
	}
	if len(ctes) > 0 {
		sql.WriteString("WITH ")
		for i, cte := range ctes {
			if i > 0 {
				sql.WriteString(", ")
			}
			sql.WriteString(r.dialect.QuoteIdentifier(cte.Alias))
			sql.WriteString(" AS (")
			if err := r.renderSubquery(cte.Query, sql, ctx); err != nil {
				return err
			}
			sql.WriteString(")")
		}
		sql.WriteString(" ")
	}

	sql.WriteString("SELECT ")
	if err := r.renderProjection(ast.Projection, sql, ctx); err != nil {
		return err
	}

	sql.WriteString(" FROM ")
	sql.WriteString(r.renderTable(ast.Table))

	hops := newHopChain(r.dialect.QuoteIdentifier, ast.Table)
	for _, join := range ast.Joins {
		if err := r.renderJoin(hops, join, sql); err != nil {
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
		cols, err := r.renderPaths(ast.GroupBy)
		if err != nil {
			return err
		}
		sql.WriteString(cols)
	}

	if len(ast.OrderBy) > 0 {
		sql.WriteString(" ORDER BY ")
		parts := make([]string, len(ast.OrderBy))
		for i, o := range ast.OrderBy {
			col, err := r.renderPath(o.Path)
			if err != nil {
				return err
			}
			dir := o.Direction
			if dir == "" {
				dir = types.ASC
			}
			parts[i] = col + " " + string(dir)
		}
		sql.WriteString(strings.Join(parts, ", "))
	}

	if ast.Limit != nil {
		sql.WriteString(" LIMIT ")
		sql.WriteString(strconv.Itoa(ast.Limit.Count))
		if ast.Limit.Start > 0 {
			sql.WriteString(" OFFSET ")
			sql.WriteString(strconv.Itoa(ast.Limit.Start))
		}
	}
	return nil
}

func (r *Renderer) renderProjection(p types.Projection, sql *strings.Builder, ctx *render.Context) error {
	switch proj := p.(type) {
	case nil, types.AllProjection:
		sql.WriteString("*")
	case types.FieldsProjection:
		cols, err := r.renderPaths(proj.Fields)
		if err != nil {
			return err
		}
		sql.WriteString(cols)
	case types.ConditionalProjection:
		for i, field := range proj.Fields {
			if i > 0 {
				sql.WriteString(", ")
			}
			col, err := r.renderPath(field)
			if err != nil {
				return err
			}
			sql.WriteString("CASE WHEN ")
			if err := r.renderExpr(proj.Condition, sql, ctx); err != nil {
				return err
			}
			fmt.Fprintf(sql, " THEN %s END AS %s", col, r.dialect.QuoteIdentifier(aliasFor(field)))
		}
	default:
		return fmt.Errorf("unknown projection type: %T", p)
	}
	return nil
}

// aliasFor names a projected column after the last field segment of path.
func aliasFor(path types.FieldPath) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].Kind == types.SegmentField {
			return path[i].Name
		}
	}
	return "value"
}

func (r *Renderer) renderJoin(hops *hopChain, join types.Join, sql *strings.Builder) error {
	switch j := join.(type) {
	case types.EdgeJoin:
		hops.render(j.Edge, j.Target, j.Alias, "in", "out", sql)
	case types.ReverseEdgeJoin:
		hops.render(j.Edge, j.Target, j.Alias, "out", "in", sql)
	case types.FetchJoin:
		return render.NewUnsupportedExprError(r.dialect.Engine(), "Fetch",
			"select the related columns through a JoinEdge")
	case types.LetJoin:
		// Rendered as a common table expression by renderSelect.
	default:
		return fmt.Errorf("unknown join type: %T", join)
	}
	return nil
}

// hopChain tracks the record each graph hop starts from. Like the graph
// engine, every hop continues from the target of the previous one.
type hopChain struct {
	quote func(string) string
	near  string
	used  map[string]bool
	n     int
}

func newHopChain(quote func(string) string, from types.Table) *hopChain {
	return &hopChain{
		quote: quote,
		near:  from.String(),
		used:  map[string]bool{from.String(): true},
	}
}

// render translates one hop into two inner joins through the edge table,
// whose near and far columns hold the record ids on each side. The edge
// table is always aliased so that an edge may be traversed more than once;
// an unaliased target reuses its table name unless that name is taken.
func (h *hopChain) render(edge types.Edge, target types.Table, alias, near, far string, sql *strings.Builder) {
	q := h.quote
	h.n++
	edgeRef := edge.HopAlias(h.n)
	h.used[edgeRef] = true

	fmt.Fprintf(sql, " INNER JOIN %s AS %s ON %s.%s = %s.%s",
		q(edge.String()), q(edgeRef), q(edgeRef), q(near), q(h.near), q("id"))

	targetRef := alias
	if targetRef == "" {
		targetRef = target.String()
		if h.used[targetRef] {
			targetRef = target.String() + "_" + strconv.Itoa(h.n)
		}
	}
	h.used[targetRef] = true

	sql.WriteString(" INNER JOIN ")
	sql.WriteString(q(target.String()))
	if targetRef != target.String() {
		sql.WriteString(" AS ")
		sql.WriteString(q(targetRef))
	}
	fmt.Fprintf(sql, " ON %s.%s = %s.%s", q(targetRef), q("id"), q(edgeRef), q(far))
	h.near = targetRef
}

func (r *Renderer) renderUpdate(ast *types.AST, sql *strings.Builder, ctx *render.Context) error {
	sql.WriteString("UPDATE ")
	sql.WriteString(r.renderTable(ast.Table))
	sql.WriteString(" SET ")

	for i, a := range ast.Assignments {
		if i > 0 {
			sql.WriteString(", ")
		}
		col, err := r.renderPath(a.Path)
		if err != nil {
			return err
		}
		value, err := ctx.Register(a.Bind)
		if err != nil {
			return err
		}
		fmt.Fprintf(sql, "%s = %s", col, ctx.Arg(value))
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
	sql.WriteString(r.renderTable(ast.Table))

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
	sql.WriteString(r.renderTable(ast.Table))

	columns := make([]string, len(ast.Assignments))
	values := make([]string, len(ast.Assignments))
	for i, a := range ast.Assignments {
		col, err := r.renderPath(a.Path)
		if err != nil {
			return err
		}
		value, err := ctx.Register(a.Bind)
		if err != nil {
			return err
		}
		columns[i] = col
		values[i] = ctx.Arg(value)
	}

	fmt.Fprintf(sql, " (%s) VALUES (%s)", strings.Join(columns, ", "), strings.Join(values, ", "))
	return nil
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
		path, err := r.renderPath(e.Path)
		if err != nil {
			return err
		}
		switch e.Check {
		case types.CheckIsNull, types.CheckNotExists:
			sql.WriteString(path + " IS NULL")
		case types.CheckIsNotNull, types.CheckExists:
			sql.WriteString(path + " IS NOT NULL")
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
		path, err := r.renderPath(e.Path)
		if err != nil {
			return err
		}
		value, err := ctx.Register(e.Permission)
		if err != nil {
			return err
		}
		text, err := r.dialect.RenderContains(path, ctx.Arg(value))
		if err != nil {
			return err
		}
		sql.WriteString(text)
	case types.SubqueryCondition:
		path, err := r.renderPath(e.Path)
		if err != nil {
			return err
		}
		sql.WriteString(path + " IN (")
		if err := r.renderSubquery(e.Query, sql, ctx); err != nil {
			return err
		}
		sql.WriteString(")")
	case types.Raw:
		sql.WriteString(e.Text)
	default:
		return fmt.Errorf("unknown expression type: %T", expr)
	}
	return nil
}

func (r *Renderer) renderComparison(c types.Comparison, sql *strings.Builder, ctx *render.Context) error {
	engine := r.dialect.Engine()
	path, err := r.renderPath(c.Path)
	if err != nil {
		return err
	}

	// Reject before registering so a failed render leaves no stray args.
	switch c.Operator {
	case types.Matches:
		if _, err := r.dialect.RenderMatches(path, ""); err != nil {
			return err
		}
	case types.ContainsAny, types.ContainsAll:
		if _, err := r.dialect.RenderContainsSet(c.Operator, path, ""); err != nil {
			return err
		}
	}

	value, err := ctx.Register(c.Bind)
	if err != nil {
		return err
	}

	var text string
	switch c.Operator {
	case types.EQ, types.NE, types.GT, types.GTE, types.LT, types.LTE:
		text = fmt.Sprintf("%s %s %s", path, c.Operator, ctx.Arg(value))
	case types.IN:
		text = r.dialect.RenderIn(path, false, value, ctx.Arg)
	case types.NotIn:
		text = r.dialect.RenderIn(path, true, value, ctx.Arg)
	case types.LIKE:
		text = fmt.Sprintf("%s LIKE %s", path, ctx.Arg(value))
	case types.StartsWith:
		text = fmt.Sprintf("%s LIKE %s%s", path, ctx.Arg(EscapeLike(value)+"%"), r.dialect.LikeEscape())
	case types.EndsWith:
		text = fmt.Sprintf("%s LIKE %s%s", path, ctx.Arg("%"+EscapeLike(value)), r.dialect.LikeEscape())
	case types.ILIKE:
		text = r.dialect.RenderILike(path, ctx.Arg(value))
	case types.Matches:
		text, err = r.dialect.RenderMatches(path, ctx.Arg(value))
	case types.Contains:
		text, err = r.dialect.RenderContains(path, ctx.Arg(value))
	case types.ContainsAny, types.ContainsAll:
		text, err = r.dialect.RenderContainsSet(c.Operator, path, ctx.Arg(value))
	default:
		return render.NewUnsupportedExprError(engine, c.Variant())
	}
	if err != nil {
		return err
	}
	sql.WriteString(text)
	return nil
}

func (r *Renderer) renderTable(t types.Table) string {
	return r.dialect.QuoteIdentifier(t.String())
}

func (r *Renderer) renderPaths(paths []types.FieldPath) (string, error) {
	parts := make([]string, len(paths))
	for i, p := range paths {
		col, err := r.renderPath(p)
		if err != nil {
			return "", err
		}
		parts[i] = col
	}
	return strings.Join(parts, ", "), nil
}

// renderPath quotes each field segment and joins them with dots. SQL has no
// positional element access, so index segments are rejected.
func (r *Renderer) renderPath(p types.FieldPath) (string, error) {
	parts := make([]string, len(p))
	for i, seg := range p {
		switch seg.Kind {
		case types.SegmentIndex:
			return "", render.InvalidPathForEngineError{Segment: seg.String(), Engine: r.dialect.Engine()}
		case types.SegmentWildcard:
			parts[i] = "*"
		default:
			parts[i] = r.dialect.QuoteIdentifier(seg.Name)
		}
	}
	return strings.Join(parts, "."), nil
}

// EscapeLike escapes LIKE metacharacters in a user value with backslashes.
func EscapeLike(value any) string {
	s, ok := value.(string)
	if !ok {
		s = fmt.Sprint(value)
	}
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// ExpandIn renders IN as one placeholder per element of a slice value.
// An empty slice matches nothing for IN and everything for NOT IN.
func ExpandIn(path string, negate bool, value any, arg func(any) string) string {
	values := []any{value}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if _, isBytes := value.([]byte); !isBytes {
			values = make([]any, rv.Len())
			for i := range values {
				values[i] = rv.Index(i).Interface()
			}
		}
	}

	if len(values) == 0 {
		if negate {
			return "1 = 1"
		}
		return "1 = 0"
	}

	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = arg(v)
	}
	op := "IN"
	if negate {
		op = "NOT IN"
	}
	return fmt.Sprintf("%s %s (%s)", path, op, strings.Join(placeholders, ", "))
}

// QuoteDouble quotes an identifier with double quotes, doubling any
// embedded quote.
func QuoteDouble(name string) string {
	escaped := strings.ReplaceAll(name, `"`, `""`)
	return `"` + escaped + `"`
}
