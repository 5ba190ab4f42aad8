// Package sqlite provides the SQLite dialect renderer for surql.
package sqlite

import (
	"fmt"

	"github.com/zoobzio/surql/internal/relational"
	"github.com/zoobzio/surql/internal/render"
	"github.com/zoobzio/surql/internal/types"
)

// Renderer implements the SQLite dialect renderer.
type Renderer struct {
	base *relational.Renderer
}

// New creates a new SQLite renderer.
func New() *Renderer {
	return &Renderer{base: relational.New(dialect{}, nil)}
}

// Engine returns types.EngineSQLite.
func (r *Renderer) Engine() types.Engine {
	return types.EngineSQLite
}

// Render converts an AST to a QueryResult with SQLite SQL.
//
// Collections are stored as JSON text, so Contains and HasPermission go
// through json_each.
func (r *Renderer) Render(ast *types.AST) (*types.QueryResult, error) {
	return r.base.Render(ast)
}

// Capabilities returns the features supported by SQLite.
func (r *Renderer) Capabilities() render.Capabilities {
	return render.Capabilities{
		CommonTableExpr:       true,
		ConditionalProjection: true,
	}
}

type dialect struct{}

func (dialect) Engine() types.Engine { return types.EngineSQLite }

func (dialect) QuoteIdentifier(name string) string {
	return relational.QuoteDouble(name)
}

func (dialect) RenderIn(path string, negate bool, value any, arg func(any) string) string {
	return relational.ExpandIn(path, negate, value, arg)
}

func (dialect) RenderILike(path, placeholder string) string {
	return fmt.Sprintf("LOWER(%s) LIKE LOWER(%s)", path, placeholder)
}

func (dialect) RenderMatches(_, _ string) (string, error) {
	return "", render.NewUnsupportedExprError(types.EngineSQLite, "Matches",
		"use Like, StartsWith or EndsWith patterns instead")
}

func (dialect) RenderContains(path, placeholder string) (string, error) {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE value = %s)", path, placeholder), nil
}

func (dialect) RenderContainsSet(op types.Operator, _, _ string) (string, error) {
	return "", render.NewUnsupportedExprError(types.EngineSQLite, op.Variant(),
		"SQLite does not have native array types")
}

func (dialect) LikeEscape() string {
	return ` ESCAPE '\'`
}
