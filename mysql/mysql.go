// Package mysql provides the MySQL and MariaDB dialect renderer for surql.
package mysql

import (
	"fmt"
	"strings"

	"github.com/zoobzio/surql/internal/relational"
	"github.com/zoobzio/surql/internal/render"
	"github.com/zoobzio/surql/internal/types"
)

// Renderer implements the MySQL dialect renderer.
type Renderer struct {
	base *relational.Renderer
}

// New creates a new MySQL renderer.
func New() *Renderer {
	return &Renderer{base: relational.New(dialect{}, nil)}
}

// Engine returns types.EngineMySQL.
func (r *Renderer) Engine() types.Engine {
	return types.EngineMySQL
}

// Render converts an AST to a QueryResult with MySQL SQL.
func (r *Renderer) Render(ast *types.AST) (*types.QueryResult, error) {
	return r.base.Render(ast)
}

// Capabilities returns the features supported by MySQL 8 and MariaDB 10.2+.
func (r *Renderer) Capabilities() render.Capabilities {
	return render.Capabilities{
		CommonTableExpr:       true,
		RegexOperators:        true,
		ConditionalProjection: true,
	}
}

type dialect struct{}

func (dialect) Engine() types.Engine { return types.EngineMySQL }

func (dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, "`", "``")
	return "`" + escaped + "`"
}

func (dialect) RenderIn(path string, negate bool, value any, arg func(any) string) string {
	return relational.ExpandIn(path, negate, value, arg)
}

func (dialect) RenderILike(path, placeholder string) string {
	return fmt.Sprintf("LOWER(%s) LIKE LOWER(%s)", path, placeholder)
}

func (dialect) RenderMatches(path, placeholder string) (string, error) {
	return path + " REGEXP " + placeholder, nil
}

func (dialect) RenderContains(path, placeholder string) (string, error) {
	return fmt.Sprintf("JSON_CONTAINS(%s, JSON_QUOTE(%s))", path, placeholder), nil
}

func (dialect) RenderContainsSet(op types.Operator, _, _ string) (string, error) {
	return "", render.NewUnsupportedExprError(types.EngineMySQL, op.Variant(),
		"use Contains once per value")
}

// LikeEscape is empty: backslash is already the default LIKE escape.
func (dialect) LikeEscape() string {
	return ""
}
