// Package dialect maps engines to their renderers.
package dialect

import (
	"fmt"

	"github.com/zoobzio/surql"
	"github.com/zoobzio/surql/mysql"
	"github.com/zoobzio/surql/postgres"
	"github.com/zoobzio/surql/sqlite"
	"github.com/zoobzio/surql/surrealdb"
)

// Renderer is a surql.Renderer that also reports what it can render.
type Renderer interface {
	surql.Renderer
	Capabilities() surql.Capabilities
}

// For returns the renderer for e. Postgres uses numbered placeholders so the
// text can be handed to pgx unchanged.
func For(e surql.Engine) (Renderer, error) {
	switch e {
	case surql.EngineSurrealDB:
		return surrealdb.New(), nil
	case surql.EnginePostgres:
		return postgres.NewNumbered(), nil
	case surql.EngineSQLite:
		return sqlite.New(), nil
	case surql.EngineMySQL:
		return mysql.New(), nil
	default:
		return nil, fmt.Errorf("unsupported engine: %q", e)
	}
}

// Named resolves name with surql.ParseEngine and returns its renderer.
func Named(name string) (Renderer, error) {
	e, err := surql.ParseEngine(name)
	if err != nil {
		return nil, err
	}
	return For(e)
}
