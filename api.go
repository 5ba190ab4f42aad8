// Package surql provides a typed query builder that compiles to SurrealQL and
// to SQL for PostgreSQL, SQLite and MySQL.
//
// Queries are built as an Abstract Syntax Tree (AST) through fluent builder
// calls or by hand, then rendered by an engine renderer into query text plus
// the bindings it references. Rendering performs no I/O.
//
// # Basic Usage
//
//	import (
//		"github.com/zoobzio/surql/schema"
//		"github.com/zoobzio/surql/surrealdb"
//	)
//
//	result, err := surql.Select(surql.TableReport).
//		WhereEq(schema.ReportAuthorID, "auther_id", "u1").
//		Limit(10).
//		Render(surrealdb.New())
//	// result.Text:     SELECT * FROM report WHERE author_id = $auther_id LIMIT 10
//	// result.Bindings: {auther_id: "u1"}
//
// # Engines
//
// The graph engine uses named $bind placeholders. The relational engines
// (postgres, sqlite, mysql) emit positional placeholders and fill
// QueryResult.Args in text order. Graph hops become joins through the edge
// table; features an engine cannot express return UnsupportedExprError.
//
//	result, err := query.Render(postgres.New())
//
// # Paths
//
// Nested fields are addressed by FieldPath values, usually produced by the
// schema package's field enumerations and chain builders:
//
//	schema.Profile().Addresses().Any().City() // profile.addresses.*.city
package surql

import (
	"github.com/zoobzio/surql/internal/render"
	"github.com/zoobzio/surql/internal/types"
)

// AST represents the abstract syntax tree for a query.
// This is re-exported from internal/types for use by consumers.
type AST = types.AST

// QueryResult contains the rendered text and its bindings.
type QueryResult = types.QueryResult

// Bind is a named value placeholder.
type Bind = types.Bind

// Bindings is the ordered name to value map returned with rendered text.
type Bindings = types.Bindings

// NewBindings creates an empty Bindings.
func NewBindings() *Bindings {
	return types.NewBindings()
}

// Kind represents the type of statement.
type Kind = types.Kind

// Re-export kind constants for public API.
const (
	KindSelect = types.KindSelect
	KindUpdate = types.KindUpdate
	KindDelete = types.KindDelete
	KindInsert = types.KindInsert
)

// Direction represents sort direction.
type Direction = types.Direction

// Re-export direction constants.
const (
	ASC  = types.ASC
	DESC = types.DESC
)

// OrderBy, Limit and Assignment are the remaining AST members.
type (
	OrderBy    = types.OrderBy
	Limit      = types.Limit
	Assignment = types.Assignment
)

// Path types.
type (
	FieldPath    = types.FieldPath
	PathSegment  = types.PathSegment
	PathProvider = types.PathProvider
	QueryField   = types.QueryField
)

// Table is a storable entity.
type Table = types.Table

// Re-export table constants.
const (
	TableUser   = types.TableUser
	TableRole   = types.TableRole
	TableReport = types.TableReport
)

// ParseTable resolves a table wire name such as "report".
func ParseTable(name string) (Table, error) {
	return types.ParseTable(name)
}

// Edge is a traversable relationship.
type Edge = types.Edge

// Re-export edge constants.
const (
	EdgeHasRole          = types.EdgeHasRole
	EdgeEvents           = types.EdgeEvents
	EdgeAuther           = types.EdgeAuther
	EdgeAssignedReviewer = types.EdgeAssignedReviewer
	EdgeAssignedTo       = types.EdgeAssignedTo
	EdgeAuthoredBy       = types.EdgeAuthoredBy
	EdgeReviewedBy       = types.EdgeReviewedBy
	EdgeHasPermission    = types.EdgeHasPermission
)

// ParseEdge resolves an edge wire name such as "has_role".
func ParseEdge(name string) (Edge, error) {
	return types.ParseEdge(name)
}

// Engine identifies a compilation target.
type Engine = types.Engine

// Re-export engine constants.
const (
	EngineSurrealDB = types.EngineSurrealDB
	EnginePostgres  = types.EnginePostgres
	EngineSQLite    = types.EngineSQLite
	EngineMySQL     = types.EngineMySQL
)

// Engines returns every engine in declaration order.
func Engines() []Engine {
	return types.Engines()
}

// ParseEngine resolves an engine name such as "postgresql" or "mariadb".
func ParseEngine(name string) (Engine, error) {
	return types.ParseEngine(name)
}

// Expression types.
type (
	Expr              = types.Expr
	Operator          = types.Operator
	Comparison        = types.Comparison
	Presence          = types.Presence
	Group             = types.Group
	Negation          = types.Negation
	PermissionCheck   = types.PermissionCheck
	SubqueryCondition = types.SubqueryCondition
	Raw               = types.Raw
)

// Join types.
type (
	Join            = types.Join
	EdgeJoin        = types.EdgeJoin
	ReverseEdgeJoin = types.ReverseEdgeJoin
	FetchJoin       = types.FetchJoin
	LetJoin         = types.LetJoin
)

// Projection types.
type (
	Projection            = types.Projection
	AllProjection         = types.AllProjection
	FieldsProjection      = types.FieldsProjection
	ConditionalProjection = types.ConditionalProjection
)

// Error types returned by renderers.
type (
	UnsupportedExprError      = render.UnsupportedExprError
	MissingBindingError       = render.MissingBindingError
	InvalidPathForEngineError = render.InvalidPathForEngineError
	DuplicateBindNameError    = render.DuplicateBindNameError
)

// Capabilities describes the features an engine supports.
type Capabilities = render.Capabilities
