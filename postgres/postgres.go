// Package postgres provides the PostgreSQL dialect renderer for surql.
package postgres

import (
	"fmt"
	"strconv"

	"github.com/zoobzio/surql/internal/relational"
	"github.com/zoobzio/surql/internal/render"
	"github.com/zoobzio/surql/internal/types"
)

// Renderer implements the PostgreSQL dialect renderer.
type Renderer struct {
	base *relational.Renderer
}

// New creates a new PostgreSQL renderer emitting "?" placeholders, the
// portable form shared with the other relational engines. PostgreSQL does
// not accept "?" and no driver rewrites it; use NewNumbered for text that
// will be executed.
func New() *Renderer {
	return &Renderer{base: relational.New(dialect{}, nil)}
}

// NewNumbered creates a PostgreSQL renderer emitting $1, $2, ... placeholders
// for drivers that pass the text to the server unchanged, such as pgx.
func NewNumbered() *Renderer {
	return &Renderer{base: relational.New(dialect{}, func(n int) string {
		return "$" + strconv.Itoa(n)
	})}
}

// Engine returns types.EnginePostgres.
func (r *Renderer) Engine() types.Engine {
	return types.EnginePostgres
}

// Render converts an AST to a QueryResult with PostgreSQL SQL.
func (r *Renderer) Render(ast *types.AST) (*types.QueryResult, error) {
	return r.base.Render(ast)
}

// Capabilities returns the features supported by PostgreSQL.
func (r *Renderer) Capabilities() render.Capabilities {
	return render.Capabilities{
		CommonTableExpr:       true,
		RegexOperators:        true,
		CaseInsensitiveLike:   true,
		ArrayContainment:      true,
		ConditionalProjection: true,
	}
}

type dialect struct{}

func (dialect) Engine() types.Engine { return types.EnginePostgres }

func (dialect) QuoteIdentifier(name string) string {
	return relational.QuoteDouble(name)
}

// RenderIn binds the whole collection as one array argument.
func (dialect) RenderIn(path string, negate bool, value any, arg func(any) string) string {
	if negate {
		return fmt.Sprintf("%s != ALL(%s)", path, arg(value))
	}
	return fmt.Sprintf("%s = ANY(%s)", path, arg(value))
}

func (dialect) RenderILike(path, placeholder string) string {
	return path + " ILIKE " + placeholder
}

func (dialect) RenderMatches(path, placeholder string) (string, error) {
	return path + " ~ " + placeholder, nil
}

func (dialect) RenderContains(path, placeholder string) (string, error) {
	return fmt.Sprintf("%s = ANY(%s)", placeholder, path), nil
}

func (dialect) RenderContainsSet(op types.Operator, path, placeholder string) (string, error) {
	switch op {
	case types.ContainsAny:
		return path + " && " + placeholder, nil
	case types.ContainsAll:
		return path + " @> " + placeholder, nil
	}
	return "", render.NewUnsupportedExprError(types.EnginePostgres, op.Variant())
}

func (dialect) LikeEscape() string {
	return ` ESCAPE '\'`
}
