// Package driver executes compiled surql queries through database/sql.
//
// The graph engine has no database/sql driver; render those queries with the
// surrealdb package and send them through a SurrealDB client instead.
package driver

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"  // registers "mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // registers "sqlite"

	"github.com/zoobzio/surql"
	"github.com/zoobzio/surql/dialect"
	"github.com/zoobzio/surql/schema"
)

var driverNames = map[surql.Engine]string{
	surql.EnginePostgres: "pgx",
	surql.EngineMySQL:    "mysql",
	surql.EngineSQLite:   "sqlite",
}

// DriverName returns the database/sql driver registered for e.
func DriverName(e surql.Engine) (string, error) {
	name, ok := driverNames[e]
	if !ok {
		return "", fmt.Errorf("engine %s has no database/sql driver", e)
	}
	return name, nil
}

// Option configures a DB.
type Option func(*DB)

// WithCatalog checks every AST against c before rendering.
func WithCatalog(c *schema.Catalog) Option {
	return func(d *DB) { d.catalog = c }
}

// WithRenderer overrides the renderer chosen for the engine.
func WithRenderer(r dialect.Renderer) Option {
	return func(d *DB) { d.renderer = r }
}

// DB pairs a *sql.DB with the renderer for its engine.
type DB struct {
	db       *sql.DB
	renderer dialect.Renderer
	catalog  *schema.Catalog
	log      *logrus.Entry
}

// Open opens a connection pool for engine at dsn.
func Open(engine surql.Engine, dsn string, opts ...Option) (*DB, error) {
	name, err := DriverName(engine)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", engine, err)
	}
	d, err := New(db, engine, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return d, nil
}

// New wraps an existing pool.
func New(db *sql.DB, engine surql.Engine, opts ...Option) (*DB, error) {
	if db == nil {
		return nil, fmt.Errorf("db cannot be nil")
	}
	if _, err := DriverName(engine); err != nil {
		return nil, err
	}
	r, err := dialect.For(engine)
	if err != nil {
		return nil, err
	}

	d := &DB{
		db:       db,
		renderer: r,
		log: logrus.WithFields(logrus.Fields{
			"component": "Driver",
			"engine":    engine,
		}),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.renderer.Engine() != engine {
		return nil, fmt.Errorf("renderer for %s cannot serve %s", d.renderer.Engine(), engine)
	}
	return d, nil
}

// SQL returns the underlying pool.
func (d *DB) SQL() *sql.DB {
	return d.db
}

// Engine reports the engine queries are rendered for.
func (d *DB) Engine() surql.Engine {
	return d.renderer.Engine()
}

// Close closes the pool.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping verifies the connection.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", d.Engine(), err)
	}
	return nil
}

// Compile checks ast against the catalog, if any, and renders it.
func (d *DB) Compile(ast *surql.AST) (*surql.QueryResult, error) {
	if d.catalog != nil {
		if err := d.catalog.Check(ast); err != nil {
			return nil, fmt.Errorf("schema check: %w", err)
		}
	}
	return surql.Compile(ast, d.renderer)
}

// Query renders ast and runs it, returning the rows.
func (d *DB) Query(ctx context.Context, ast *surql.AST) (*sql.Rows, error) {
	result, err := d.Compile(ast)
	if err != nil {
		return nil, err
	}

	rows, err := d.db.QueryContext(ctx, result.Text, result.Args...)
	if err != nil {
		d.log.WithError(err).WithField("query", result.Text).Error("Query failed")
		return nil, fmt.Errorf("query: %w", err)
	}
	return rows, nil
}

// QueryRow renders ast and runs it, returning at most one row.
func (d *DB) QueryRow(ctx context.Context, ast *surql.AST) (*sql.Row, error) {
	result, err := d.Compile(ast)
	if err != nil {
		return nil, err
	}
	return d.db.QueryRowContext(ctx, result.Text, result.Args...), nil
}

// Exec renders ast and executes it.
func (d *DB) Exec(ctx context.Context, ast *surql.AST) (sql.Result, error) {
	result, err := d.Compile(ast)
	if err != nil {
		return nil, err
	}

	res, err := d.db.ExecContext(ctx, result.Text, result.Args...)
	if err != nil {
		d.log.WithError(err).WithField("query", result.Text).Error("Exec failed")
		return nil, fmt.Errorf("exec: %w", err)
	}
	return res, nil
}

// ExecTx renders every AST first, then executes them in order inside one
// transaction. Nothing runs if any AST fails to render; any execution error
// rolls the transaction back.
func (d *DB) ExecTx(ctx context.Context, asts ...*surql.AST) error {
	if len(asts) == 0 {
		return fmt.Errorf("transaction requires at least one statement")
	}

	results := make([]*surql.QueryResult, len(asts))
	for i, ast := range asts {
		result, err := d.Compile(ast)
		if err != nil {
			return fmt.Errorf("statement %d: %w", i, err)
		}
		results[i] = result
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for i, result := range results {
		if _, err := tx.ExecContext(ctx, result.Text, result.Args...); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				d.log.WithError(rbErr).Error("Rollback failed")
			}
			return fmt.Errorf("statement %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	d.log.WithField("statements", len(results)).Debug("Committed transaction")
	return nil
}
