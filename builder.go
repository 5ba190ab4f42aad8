package surql

import (
	"fmt"
	"reflect"

	"github.com/zoobzio/surql/internal/types"
)

// Builder provides a fluent API for constructing queries.
type Builder struct {
	ast   *types.AST
	err   error
	start *int
	// where is the AND group the builder owns, so that repeated Where calls
	// extend one group instead of nesting.
	where *types.Group
}

// GetAST returns the internal AST.
func (b *Builder) GetAST() *types.AST {
	return b.ast
}

// GetError returns the sticky builder error.
func (b *Builder) GetError() error {
	return b.err
}

func newBuilder(kind types.Kind, t Table) *Builder {
	return &Builder{ast: &types.AST{Kind: kind, Table: t}}
}

// Select creates a new SELECT query builder.
func Select(t Table) *Builder {
	return newBuilder(types.KindSelect, t)
}

// Update creates a new UPDATE query builder.
func Update(t Table) *Builder {
	return newBuilder(types.KindUpdate, t)
}

// Delete creates a new DELETE query builder.
func Delete(t Table) *Builder {
	return newBuilder(types.KindDelete, t)
}

// Insert creates a new INSERT query builder.
func Insert(t Table) *Builder {
	return newBuilder(types.KindInsert, t)
}

func (b *Builder) requireSelect(method string) bool {
	if b.err != nil {
		return false
	}
	if b.ast.Kind != types.KindSelect {
		b.err = fmt.Errorf("%s() can only be used with SELECT queries", method)
		return false
	}
	return true
}

// Field appends a projected field.
func (b *Builder) Field(f PathProvider) *Builder {
	if !b.requireSelect("Field") {
		return b
	}
	switch p := b.ast.Projection.(type) {
	case types.FieldsProjection:
		p.Fields = append(p.Fields, f.Path())
		b.ast.Projection = p
	case nil:
		b.ast.Projection = types.FieldsProjection{Fields: []types.FieldPath{f.Path()}}
	default:
		b.err = fmt.Errorf("Field() cannot be combined with a %T", p)
	}
	return b
}

// Fields appends several projected fields.
func (b *Builder) Fields(fs ...PathProvider) *Builder {
	for _, f := range fs {
		b.Field(f)
	}
	return b
}

// ProjectIf selects fs only for rows matching cond.
func (b *Builder) ProjectIf(cond Expr, fs ...PathProvider) *Builder {
	if !b.requireSelect("ProjectIf") {
		return b
	}
	if b.ast.Projection != nil {
		b.err = fmt.Errorf("ProjectIf() cannot be combined with another projection")
		return b
	}
	paths := make([]types.FieldPath, len(fs))
	for i, f := range fs {
		paths[i] = f.Path()
	}
	b.ast.Projection = types.ConditionalProjection{Condition: cond, Fields: paths}
	return b
}

// Where sets or adds conditions. Multiple calls are combined with AND.
func (b *Builder) Where(e Expr) *Builder {
	if b.err != nil {
		return b
	}

	switch {
	case b.ast.Filter == nil:
		b.ast.Filter = e
	case b.where != nil:
		b.where.Exprs = append(b.where.Exprs, e)
		b.ast.Filter = *b.where
	default:
		b.where = &types.Group{Logic: types.AND, Exprs: []types.Expr{b.ast.Filter, e}}
		b.ast.Filter = *b.where
	}
	return b
}

// WhereEq appends an equality on f against a bind named bind, declaring
// value under that name.
func (b *Builder) WhereEq(f PathProvider, bind string, value any) *Builder {
	if b.err != nil {
		return b
	}
	ref, err := TryRef(bind)
	if err != nil {
		b.err = err
		return b
	}
	b.Bind(bind, value)
	return b.Where(Eq(f, ref))
}

// Bind declares a value for Ref binds and raw fragments to resolve against.
func (b *Builder) Bind(name string, value any) *Builder {
	if b.err != nil {
		return b
	}
	if !isValidBindName(name) {
		b.err = fmt.Errorf("invalid bind name '%s'", name)
		return b
	}
	for _, existing := range b.ast.Bindings {
		if existing.Name != name {
			continue
		}
		if !reflect.DeepEqual(existing.Value, value) {
			b.err = DuplicateBindNameError{Name: name}
		}
		return b
	}
	b.ast.Bindings = append(b.ast.Bindings, types.Bind{Name: name, Value: value})
	return b
}

// JoinEdge appends an outward graph hop: ->edge->target.
func (b *Builder) JoinEdge(edge Edge, target Table, alias string) *Builder {
	if !b.requireSelect("JoinEdge") {
		return b
	}
	b.ast.Joins = append(b.ast.Joins, types.EdgeJoin{Edge: edge, Target: target, Alias: alias})
	return b
}

// JoinReverse appends an inward graph hop: <-edge<-target.
func (b *Builder) JoinReverse(edge Edge, target Table, alias string) *Builder {
	if !b.requireSelect("JoinReverse") {
		return b
	}
	b.ast.Joins = append(b.ast.Joins, types.ReverseEdgeJoin{Edge: edge, Target: target, Alias: alias})
	return b
}

// Fetch eager-loads the record link at f.
func (b *Builder) Fetch(f PathProvider) *Builder {
	if !b.requireSelect("Fetch") {
		return b
	}
	b.ast.Joins = append(b.ast.Joins, types.FetchJoin{Path: f.Path()})
	return b
}

// Let binds the result of sub to $alias.
func (b *Builder) Let(alias string, sub *Builder) *Builder {
	if !b.requireSelect("Let") {
		return b
	}
	query, err := sub.Build()
	if err != nil {
		b.err = fmt.Errorf("Let(%s): %w", alias, err)
		return b
	}
	b.ast.Joins = append(b.ast.Joins, types.LetJoin{Alias: alias, Query: query})
	return b
}

// OrderBy adds ascending ordering.
func (b *Builder) OrderBy(f PathProvider) *Builder {
	return b.order(f, types.ASC)
}

// OrderByDesc adds descending ordering.
func (b *Builder) OrderByDesc(f PathProvider) *Builder {
	return b.order(f, types.DESC)
}

func (b *Builder) order(f PathProvider, dir types.Direction) *Builder {
	if b.err != nil {
		return b
	}
	b.ast.OrderBy = append(b.ast.OrderBy, types.OrderBy{Path: f.Path(), Direction: dir})
	return b
}

// GroupBy adds grouping fields.
func (b *Builder) GroupBy(fs ...PathProvider) *Builder {
	if b.err != nil {
		return b
	}
	for _, f := range fs {
		b.ast.GroupBy = append(b.ast.GroupBy, f.Path())
	}
	return b
}

// Limit sets the limit.
func (b *Builder) Limit(n int) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Limit == nil {
		b.ast.Limit = &types.Limit{}
	}
	b.ast.Limit.Count = n
	return b
}

// Start skips n rows. It requires Limit.
func (b *Builder) Start(n int) *Builder {
	if b.err != nil {
		return b
	}
	b.start = &n
	return b
}

// Set assigns a bound value to f in UPDATE and INSERT queries.
func (b *Builder) Set(f PathProvider, bind Bind) *Builder {
	if b.err != nil {
		return b
	}
	if b.ast.Kind != types.KindUpdate && b.ast.Kind != types.KindInsert {
		b.err = fmt.Errorf("Set() can only be used with UPDATE or INSERT queries")
		return b
	}
	b.ast.Assignments = append(b.ast.Assignments, types.Assignment{Path: f.Path(), Bind: bind})
	return b
}

// Build returns the constructed AST or an error.
func (b *Builder) Build() (*types.AST, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.start != nil {
		if b.ast.Limit == nil {
			return nil, fmt.Errorf("Start() requires Limit()")
		}
		b.ast.Limit.Start = *b.start
	}

	if err := b.ast.Validate(); err != nil {
		return nil, err
	}

	return b.ast, nil
}

// MustBuild returns the AST or panics on error.
func (b *Builder) MustBuild() *types.AST {
	ast, err := b.Build()
	if err != nil {
		panic(err)
	}
	return ast
}

// Render builds the AST and renders it with r.
func (b *Builder) Render(r Renderer) (*QueryResult, error) {
	ast, err := b.Build()
	if err != nil {
		return nil, err
	}
	return Compile(ast, r)
}

// MustRender builds and renders the AST or panics on error.
func (b *Builder) MustRender(r Renderer) *QueryResult {
	result, err := b.Render(r)
	if err != nil {
		panic(err)
	}
	return result
}
