package integration

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/surql"
	"github.com/zoobzio/surql/driver"
	"github.com/zoobzio/surql/schema"
)

// columnTypes holds the per-engine storage types of the fixture tables.
type columnTypes struct {
	text  string
	array string
	bool  string
	time  string
}

var engineColumns = map[surql.Engine]columnTypes{
	surql.EngineSQLite:   {text: "TEXT", array: "TEXT", bool: "BOOLEAN", time: "TEXT"},
	surql.EnginePostgres: {text: "TEXT", array: "TEXT[]", bool: "BOOLEAN", time: "TIMESTAMP"},
	surql.EngineMySQL:    {text: "VARCHAR(255)", array: "JSON", bool: "BOOLEAN", time: "DATETIME"},
}

func quoteFor(e surql.Engine) func(string) string {
	if e == surql.EngineMySQL {
		return func(s string) string { return "`" + s + "`" }
	}
	return func(s string) string { return `"` + s + `"` }
}

// arrayLiteral spells a string collection the way the engine stores it:
// a native array on PostgreSQL, JSON text elsewhere.
func arrayLiteral(e surql.Engine, values ...string) string {
	quoted := make([]string, len(values))
	if e == surql.EnginePostgres {
		for i, v := range values {
			quoted[i] = "'" + v + "'"
		}
		return "ARRAY[" + strings.Join(quoted, ", ") + "]::TEXT[]"
	}
	for i, v := range values {
		quoted[i] = `"` + v + `"`
	}
	return "'[" + strings.Join(quoted, ",") + "]'"
}

// fixtureSQL drops, creates and seeds the user, role and report tables and
// the has_role and authored_by edges.
func fixtureSQL(e surql.Engine) []string {
	q := quoteFor(e)
	c := engineColumns[e]
	arr := func(values ...string) string { return arrayLiteral(e, values...) }

	tables := []string{"user", "role", "report", "has_role", "authored_by"}
	var stmts []string
	for _, name := range tables {
		stmts = append(stmts, "DROP TABLE IF EXISTS "+q(name))
	}

	stmts = append(stmts,
		fmt.Sprintf("CREATE TABLE %s (%s %s, %s %s, %s %s, %s %s, %s %s)", q("user"),
			q("id"), c.text, q("email"), c.text, q("username"), c.text, q("status"), c.text, q("permissions"), c.array),
		fmt.Sprintf("CREATE TABLE %s (%s %s, %s %s, %s %s, %s %s)", q("role"),
			q("id"), c.text, q("name"), c.text, q("is_system_role"), c.bool, q("permissions"), c.array),
		fmt.Sprintf("CREATE TABLE %s (%s %s, %s %s, %s %s, %s %s, %s INTEGER, %s %s, %s %s NULL)", q("report"),
			q("id"), c.text, q("title"), c.text, q("status"), c.text, q("author_id"), c.text,
			q("version"), q("permissions"), c.array, q("due_date"), c.time),
	)
	for _, edge := range []string{"has_role", "authored_by"} {
		stmts = append(stmts, fmt.Sprintf("CREATE TABLE %s (%s %s, %s %s, %s %s)", q(edge),
			q("id"), c.text, q("in"), c.text, q("out"), c.text))
	}

	stmts = append(stmts,
		fmt.Sprintf(`INSERT INTO %s VALUES
			('u1', 'alice@example.com', 'alice', 'active', %s),
			('u2', 'bob@example.com', 'bob', 'suspended', %s),
			('u3', 'carol@example.com', 'carol', 'active', %s)`,
			q("user"), arr("view_reports", "create_report"), arr("view_reports"), arr()),
		fmt.Sprintf(`INSERT INTO %s VALUES
			('r1', 'admin', TRUE, %s),
			('r2', 'reviewer', FALSE, %s)`,
			q("role"), arr("manage_system"), arr("review_reports")),
		fmt.Sprintf(`INSERT INTO %s VALUES
			('rp1', 'Q1_summary', 'draft', 'u1', 1, %s, '2024-03-01 00:00:00'),
			('rp2', 'Q1X plan', 'approved', 'u1', 3, %s, NULL),
			('rp3', 'Budget', 'submitted', 'u2', 2, %s, NULL)`,
			q("report"), arr("view_reports"), arr("view_reports", "export_reports"), arr("edit_reports")),
		fmt.Sprintf(`INSERT INTO %s VALUES ('h1', 'u1', 'r1'), ('h2', 'u2', 'r2'), ('h3', 'u3', 'r2')`, q("has_role")),
		fmt.Sprintf(`INSERT INTO %s VALUES ('a1', 'u1', 'rp1'), ('a2', 'u1', 'rp2'), ('a3', 'u2', 'rp3')`, q("authored_by")),
	)
	return stmts
}

func loadFixture(ctx context.Context, t *testing.T, db *driver.DB) {
	t.Helper()
	for _, stmt := range fixtureSQL(db.Engine()) {
		_, err := db.SQL().ExecContext(ctx, stmt)
		require.NoError(t, err, "fixture statement: %s", stmt)
	}
}

func openEngine(ctx context.Context, t *testing.T, engine surql.Engine, dsn string) *driver.DB {
	t.Helper()

	db, err := driver.Open(engine, dsn, driver.WithCatalog(schema.DefaultCatalog()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Ping(ctx))

	loadFixture(ctx, t, db)
	return db
}

// ids runs a single-column query and collects the values in row order.
func ids(ctx context.Context, t *testing.T, db *driver.DB, b *surql.Builder) []string {
	t.Helper()

	ast, err := b.Build()
	require.NoError(t, err)
	rows, err := db.Query(ctx, ast)
	require.NoError(t, err)
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		require.NoError(t, rows.Scan(&id))
		out = append(out, id)
	}
	require.NoError(t, rows.Err())
	return out
}

func qualified(table, column string) surql.FieldPath {
	return surql.Path(surql.Field(table), surql.Field(column))
}

type scenario struct {
	name  string
	query *surql.Builder
	want  []string
}

// sharedScenarios hold across every relational engine.
func sharedScenarios() []scenario {
	reportIDs := func() *surql.Builder {
		return surql.Select(surql.TableReport).Field(schema.ReportID)
	}
	active := surql.Select(surql.TableUser).
		Field(schema.UserID).
		Where(surql.Eq(schema.UserStatus, surql.B("status", "active"))).
		MustBuild()

	return []scenario{
		{
			"reports by author",
			reportIDs().WhereEq(schema.ReportAuthorID, "auther_id", "u1").OrderBy(schema.ReportID),
			[]string{"rp1", "rp2"},
		},
		{
			"prefix escapes wildcards",
			reportIDs().Where(surql.StartsWith(schema.ReportTitle, surql.B("prefix", "Q1_"))),
			[]string{"rp1"},
		},
		{
			"in",
			reportIDs().Where(surql.In(schema.ReportStatusField, surql.B("statuses", []string{"draft", "submitted"}))).OrderBy(schema.ReportID),
			[]string{"rp1", "rp3"},
		},
		{
			"not in empty",
			reportIDs().Where(surql.NotIn(schema.ReportStatusField, surql.B("nothing", []string{}))).OrderBy(schema.ReportID),
			[]string{"rp1", "rp2", "rp3"},
		},
		{
			"permission",
			reportIDs().Where(surql.HasPermission(schema.ReportPermissions, surql.B("perm", schema.PermExportReports.String()))),
			[]string{"rp2"},
		},
		{
			"negated group",
			reportIDs().Where(surql.Not(surql.Or(
				surql.Eq(schema.ReportStatusField, surql.B("status", "draft")),
				surql.Gt(schema.ReportVersion, surql.B("v", 2)),
			))),
			[]string{"rp3"},
		},
		{
			"presence",
			reportIDs().Where(surql.IsNotNull(schema.ReportDueDate)),
			[]string{"rp1"},
		},
		{
			"edge hop",
			surql.Select(surql.TableUser).
				Field(qualified("user", "id")).
				JoinEdge(surql.EdgeHasRole, surql.TableRole, "r").
				Where(surql.Eq(qualified("r", "name"), surql.B("role", "reviewer"))).
				OrderBy(qualified("user", "id")),
			[]string{"u2", "u3"},
		},
		{
			"reverse hop",
			surql.Select(surql.TableReport).
				Field(qualified("report", "id")).
				JoinReverse(surql.EdgeAuthoredBy, surql.TableUser, "a").
				Where(surql.Eq(qualified("a", "username"), surql.B("name", "alice"))).
				OrderBy(qualified("report", "id")),
			[]string{"rp1", "rp2"},
		},
		{
			"chained hops",
			surql.Select(surql.TableReport).
				Field(qualified("report", "id")).
				JoinReverse(surql.EdgeAuthoredBy, surql.TableUser, "a").
				JoinEdge(surql.EdgeHasRole, surql.TableRole, "r").
				Where(surql.Eq(qualified("r", "name"), surql.B("role", "reviewer"))).
				OrderBy(qualified("report", "id")),
			[]string{"rp3"},
		},
		{
			"same edge traversed twice",
			surql.Select(surql.TableUser).
				Field(qualified("peer", "id")).
				JoinEdge(surql.EdgeHasRole, surql.TableRole, "r").
				JoinReverse(surql.EdgeHasRole, surql.TableUser, "peer").
				Where(surql.Eq(qualified("user", "id"), surql.B("uid", "u2"))).
				OrderBy(qualified("peer", "id")),
			[]string{"u2", "u3"},
		},
		{
			"repeated hop",
			surql.Select(surql.TableUser).
				Field(qualified("user", "id")).
				JoinEdge(surql.EdgeHasRole, surql.TableRole, "a").
				JoinEdge(surql.EdgeHasRole, surql.TableRole, "b"),
			nil,
		},
		{
			"subquery",
			reportIDs().Where(surql.Subquery(schema.ReportAuthorID, active)).OrderBy(schema.ReportID),
			[]string{"rp1", "rp2"},
		},
		{
			"limit offset",
			reportIDs().OrderBy(schema.ReportID).Limit(1).Start(1),
			[]string{"rp2"},
		},
		{
			"group by",
			surql.Select(surql.TableReport).
				Field(schema.ReportAuthorID).
				GroupBy(schema.ReportAuthorID).
				OrderBy(schema.ReportAuthorID),
			[]string{"u1", "u2"},
		},
	}
}

func runScenarios(ctx context.Context, t *testing.T, db *driver.DB, scenarios []scenario) {
	t.Helper()
	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			assert.Equal(t, sc.want, ids(ctx, t, db, sc.query))
		})
	}
}

// runMutations updates and deletes inside one transaction, then inserts.
func runMutations(ctx context.Context, t *testing.T, db *driver.DB) {
	t.Helper()

	archive := surql.Update(surql.TableReport).
		Set(schema.ReportStatusField, surql.B("status", schema.StatusArchived.String())).
		Where(surql.Eq(schema.ReportID, surql.B("rid", "rp3"))).
		MustBuild()
	drop := surql.Delete(surql.TableReport).
		Where(surql.Eq(schema.ReportID, surql.B("rid", "rp1"))).
		MustBuild()
	require.NoError(t, db.ExecTx(ctx, archive, drop))

	got := ids(ctx, t, db, surql.Select(surql.TableReport).
		Field(schema.ReportID).
		Where(surql.Eq(schema.ReportStatusField, surql.B("status", "archived"))))
	assert.Equal(t, []string{"rp3"}, got)

	remaining := ids(ctx, t, db, surql.Select(surql.TableReport).Field(schema.ReportID).OrderBy(schema.ReportID))
	assert.Equal(t, []string{"rp2", "rp3"}, remaining)

	insert := surql.Insert(surql.TableRole).
		Set(schema.RoleID, surql.B("id", "r3")).
		Set(schema.RoleName, surql.B("name", "auditor")).
		Set(schema.RoleIsSystemRole, surql.B("system", false)).
		MustBuild()
	res, err := db.Exec(ctx, insert)
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
