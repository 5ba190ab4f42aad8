package surrealdb

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/zoobzio/surql"
	"github.com/zoobzio/surql/internal/types"
	"github.com/zoobzio/surql/schema"
	stest "github.com/zoobzio/surql/testing"
)

func assertGolden(t *testing.T, name, text string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(text+"\n"))
}

func TestNew(t *testing.T) {
	r := New()
	if r == nil {
		t.Fatal("New() returned nil")
	}
	if r.Engine() != types.EngineSurrealDB {
		t.Errorf("Engine() = %s, want surrealdb", r.Engine())
	}
}

// =============================================================================
// SELECT
// =============================================================================

func TestRender_ReportsByAuthor(t *testing.T) {
	result, err := surql.Select(surql.TableReport).
		WhereEq(schema.ReportAuthorID, "auther_id", "u1").
		Limit(10).
		Render(New())
	stest.AssertNoError(t, err)

	assertGolden(t, "reports_by_author", result.Text)
	stest.AssertBindings(t, result, map[string]any{"auther_id": "u1"})
	if n := strings.Count(result.Text, "$auther_id"); n != 1 {
		t.Errorf("$auther_id occurs %d times, want 1", n)
	}
	if len(result.Args) != 0 {
		t.Errorf("Args = %v, want none", result.Args)
	}
}

func TestRender_FieldsProjection(t *testing.T) {
	fields := []surql.PathProvider{
		schema.UserID,
		schema.UserEmail,
		schema.Profile().Field(schema.ProfileFirstName),
	}
	result, err := surql.Select(surql.TableUser).Fields(fields...).Render(New())
	stest.AssertNoError(t, err)

	stest.AssertText(t, "SELECT id, email, profile.first_name FROM user", result.Text)

	projection := strings.TrimSuffix(strings.TrimPrefix(result.Text, "SELECT "), " FROM user")
	if got := len(strings.Split(projection, ", ")); got != len(fields) {
		t.Errorf("projection has %d tokens, want %d", got, len(fields))
	}
}

func TestRender_Paths(t *testing.T) {
	tests := []struct {
		name     string
		field    surql.PathProvider
		expected string
	}{
		{"wildcard", schema.Profile().Addresses().Any().City(), "SELECT profile.addresses.*.city FROM user"},
		{"index", schema.Profile().Addresses().At(0).City(), "SELECT profile.addresses[0].city FROM user"},
		{"preferences", schema.Preferences().Field(schema.PreferenceLanguage), "SELECT preferences.language FROM user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := surql.Select(surql.TableUser).Field(tt.field).Render(New())
			stest.AssertNoError(t, err)
			stest.AssertText(t, tt.expected, result.Text)
		})
	}
}

func TestRender_NestedGroups(t *testing.T) {
	filter := surql.And(
		surql.Eq(schema.UserStatus, surql.B("status", "active")),
		surql.Or(
			surql.Contains(schema.UserRoles, surql.B("role", "admin")),
			surql.IsNull(schema.Profile().Field(schema.ProfileIsDeleted)),
		),
		surql.Not(surql.Or(
			surql.Ne(schema.UserUsername, surql.B("username", "root")),
			surql.Exists(schema.Profile().Field(schema.ProfileBio)),
		)),
	)

	result, err := surql.Select(surql.TableUser).Where(filter).Render(New())
	stest.AssertNoError(t, err)

	assertGolden(t, "nested_groups", result.Text)
	stest.AssertBalancedParens(t, result.Text, stest.CountGroups(filter))
	stest.AssertBindOrder(t, result, "status", "role", "username")
}

func TestRender_Operators(t *testing.T) {
	title := schema.ReportTitle
	tests := []struct {
		name     string
		expr     surql.Expr
		expected string
	}{
		{"gt", surql.Gt(schema.ReportVersion, surql.B("v", 1)), "version > $v"},
		{"gte", surql.Gte(schema.ReportVersion, surql.B("v", 1)), "version >= $v"},
		{"lt", surql.Lt(schema.ReportVersion, surql.B("v", 1)), "version < $v"},
		{"lte", surql.Lte(schema.ReportVersion, surql.B("v", 1)), "version <= $v"},
		{"in", surql.In(schema.ReportStatusField, surql.B("s", []string{"draft"})), "status IN $s"},
		{"not in", surql.NotIn(schema.ReportStatusField, surql.B("s", []string{"draft"})), "status NOT IN $s"},
		{"contains any", surql.ContainsAny(schema.ReportPermissions, surql.B("p", []string{"a"})), "permissions CONTAINSANY $p"},
		{"contains all", surql.ContainsAll(schema.ReportPermissions, surql.B("p", []string{"a"})), "permissions CONTAINSALL $p"},
		{"starts with", surql.StartsWith(title, surql.B("p", "Q")), "string::starts_with(title, $p)"},
		{"ends with", surql.EndsWith(title, surql.B("p", "Q")), "string::ends_with(title, $p)"},
		{"matches", surql.Matches(title, surql.B("p", "^Q")), "string::matches(title, $p)"},
		{"is not null", surql.IsNotNull(title), "title IS NOT NONE"},
		{"not exists", surql.NotExists(title), "title = NONE"},
		{"permission", surql.HasPermission(schema.ReportPermissions, surql.B("perm", schema.PermViewReports)), "permissions CONTAINS $perm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := surql.Select(surql.TableReport).Where(tt.expr).Render(New())
			stest.AssertNoError(t, err)
			stest.AssertText(t, "SELECT * FROM report WHERE "+tt.expected, result.Text)
		})
	}
}

func TestRender_GroupOrderLimitStart(t *testing.T) {
	result, err := surql.Select(surql.TableReport).
		Field(schema.ReportStatusField).
		GroupBy(schema.ReportStatusField).
		OrderBy(schema.ReportStatusField).
		OrderByDesc(schema.ReportCreatedAt).
		Limit(5).
		Start(10).
		Render(New())
	stest.AssertNoError(t, err)

	stest.AssertText(t, "SELECT status FROM report GROUP BY status ORDER BY status ASC, created_at DESC LIMIT 5 START 10", result.Text)
}

// =============================================================================
// Joins
// =============================================================================

func TestRender_DuplicateJoinsKeepOrder(t *testing.T) {
	result, err := surql.Select(surql.TableUser).
		JoinEdge(surql.EdgeHasRole, surql.TableRole, "r").
		JoinEdge(surql.EdgeHasRole, surql.TableRole, "r").
		Render(New())
	stest.AssertNoError(t, err)

	stest.AssertText(t, "SELECT * FROM user ->has_role->role AS r ->has_role->role AS r", result.Text)
}

func TestRender_ReverseFetchLet(t *testing.T) {
	mine := surql.Select(surql.TableReport).
		Field(schema.ReportID).
		WhereEq(schema.ReportAuthorID, "me", "u1")

	result, err := surql.Select(surql.TableReport).
		JoinReverse(surql.EdgeAuthoredBy, surql.TableUser, "").
		Fetch(schema.ReportAuthorID).
		Let("mine", mine).
		Render(New())
	stest.AssertNoError(t, err)

	assertGolden(t, "joins", result.Text)
	stest.AssertBindings(t, result, map[string]any{"me": "u1"})
}

func TestRender_Subquery(t *testing.T) {
	active := surql.Select(surql.TableUser).
		Field(schema.UserID).
		Where(surql.Eq(schema.UserStatus, surql.B("status", "active"))).
		MustBuild()

	result, err := surql.Select(surql.TableReport).
		Where(surql.Subquery(schema.ReportAuthorID, active)).
		Render(New())
	stest.AssertNoError(t, err)

	stest.AssertText(t, "SELECT * FROM report WHERE author_id IN (SELECT id FROM user WHERE status = $status)", result.Text)
	stest.AssertBindings(t, result, map[string]any{"status": "active"})
}

// =============================================================================
// Mutations
// =============================================================================

func TestRender_Mutations(t *testing.T) {
	tests := []struct {
		name     string
		builder  *surql.Builder
		expected string
	}{
		{
			"update",
			surql.Update(surql.TableReport).
				Set(schema.ReportStatusField, surql.B("status", schema.StatusApproved)).
				Where(surql.Eq(schema.ReportID, surql.B("rid", "r1"))),
			"UPDATE report SET status = $status WHERE id = $rid",
		},
		{
			"delete",
			surql.Delete(surql.TableReport).
				Where(surql.Eq(schema.ReportID, surql.B("rid", "r1"))),
			"DELETE FROM report WHERE id = $rid",
		},
		{
			"insert",
			surql.Insert(surql.TableRole).
				Set(schema.RoleName, surql.B("name", "auditor")).
				Set(schema.RoleIsSystemRole, surql.B("system", false)),
			"INSERT INTO role (name, is_system_role) VALUES ($name, $system)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.builder.Render(New())
			stest.AssertNoError(t, err)
			stest.AssertText(t, tt.expected, result.Text)
		})
	}
}

// =============================================================================
// Bindings
// =============================================================================

func TestRender_SameBindTwice(t *testing.T) {
	result, err := surql.Select(surql.TableReport).
		Where(surql.Or(
			surql.Eq(schema.ReportAuthorID, surql.B("who", "u1")),
			surql.Eq(schema.ReportAssignedReviewerID, surql.B("who", "u1")),
		)).
		Render(New())
	stest.AssertNoError(t, err)

	stest.AssertText(t, "SELECT * FROM report WHERE (author_id = $who OR assigned_reviewer_id = $who)", result.Text)
	stest.AssertBindings(t, result, map[string]any{"who": "u1"})
}

func TestRender_ConflictingBinds(t *testing.T) {
	_, err := surql.Select(surql.TableReport).
		Where(surql.Or(
			surql.Eq(schema.ReportAuthorID, surql.B("who", "u1")),
			surql.Eq(schema.ReportAssignedReviewerID, surql.B("who", "u2")),
		)).
		Render(New())

	dup := stest.AssertErrorAs[surql.DuplicateBindNameError](t, err)
	if dup.Name != "who" {
		t.Errorf("Name = %q, want who", dup.Name)
	}
}

func TestRender_MissingRef(t *testing.T) {
	ast := &types.AST{
		Kind:   types.KindSelect,
		Table:  types.TableUser,
		Filter: types.Comparison{Path: schema.UserID.Path(), Operator: types.EQ, Bind: surql.Ref("who")},
	}

	_, err := New().Render(ast)
	missing := stest.AssertErrorAs[surql.MissingBindingError](t, err)
	if missing.Name != "who" {
		t.Errorf("Name = %q, want who", missing.Name)
	}
}

func TestRender_Raw(t *testing.T) {
	_, err := surql.Select(surql.TableReport).
		Where(surql.RawExpr("version > $min")).
		Render(New())
	stest.AssertErrorAs[surql.MissingBindingError](t, err)

	result, err := surql.Select(surql.TableReport).
		Bind("min", 3).
		Where(surql.RawExpr("version > $min AND author_id = $auth.id")).
		Render(New())
	stest.AssertNoError(t, err)
	stest.AssertText(t, "SELECT * FROM report WHERE version > $min AND author_id = $auth.id", result.Text)
	stest.AssertBindings(t, result, map[string]any{"min": 3})
}

func TestRender_Deterministic(t *testing.T) {
	ast := surql.Select(surql.TableUser).
		Where(surql.And(
			surql.Eq(schema.UserStatus, surql.B("status", "active")),
			surql.Contains(schema.UserRoles, surql.B("role", "admin")),
		)).
		MustBuild()

	r := New()
	first, err := r.Render(ast)
	stest.AssertNoError(t, err)
	second, err := r.Render(ast)
	stest.AssertNoError(t, err)

	stest.AssertText(t, first.Text, second.Text)
	stest.AssertBindOrder(t, second, first.Bindings.Names()...)
}

// =============================================================================
// Unsupported
// =============================================================================

func TestRender_Unsupported(t *testing.T) {
	tests := []struct {
		name    string
		builder *surql.Builder
		variant string
	}{
		{
			"like",
			surql.Select(surql.TableReport).Where(surql.Like(schema.ReportTitle, surql.B("p", "Q%"))),
			"Like",
		},
		{
			"ilike",
			surql.Select(surql.TableReport).Where(surql.ILike(schema.ReportTitle, surql.B("p", "q%"))),
			"ILike",
		},
		{
			"conditional projection",
			surql.Select(surql.TableReport).ProjectIf(surql.IsNotNull(schema.ReportDueDate), schema.ReportDueDate),
			"ConditionalProjection",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Render(New())
			unsupported := stest.AssertErrorAs[surql.UnsupportedExprError](t, err)
			if unsupported.Variant != tt.variant {
				t.Errorf("Variant = %q, want %q", unsupported.Variant, tt.variant)
			}
			if unsupported.Engine != types.EngineSurrealDB {
				t.Errorf("Engine = %q, want surrealdb", unsupported.Engine)
			}
		})
	}
}

func TestRender_InvalidAST(t *testing.T) {
	_, err := New().Render(&types.AST{Kind: types.KindUpdate, Table: types.TableUser})
	stest.AssertErrorContains(t, err, "invalid AST: UPDATE requires at least one assignment")
}

// =============================================================================
// Transactions
// =============================================================================

func TestRenderTransaction(t *testing.T) {
	update := surql.Update(surql.TableReport).
		Set(schema.ReportStatusField, surql.B("status", schema.StatusArchived)).
		Where(surql.Eq(schema.ReportID, surql.B("rid", "r1"))).
		MustBuild()
	del := surql.Delete(surql.TableReport).
		Where(surql.Eq(schema.ReportID, surql.B("rid", "r1"))).
		MustBuild()

	result, err := New().RenderTransaction(update, del)
	stest.AssertNoError(t, err)

	assertGolden(t, "transaction", result.Text)
	stest.AssertBindings(t, result, map[string]any{"status": schema.StatusArchived, "rid": "r1"})
}

func TestRenderTransaction_Errors(t *testing.T) {
	_, err := New().RenderTransaction()
	stest.AssertErrorContains(t, err, "at least one statement")

	a := surql.Delete(surql.TableReport).Where(surql.Eq(schema.ReportID, surql.B("rid", "r1"))).MustBuild()
	b := surql.Delete(surql.TableReport).Where(surql.Eq(schema.ReportID, surql.B("rid", "r2"))).MustBuild()
	_, err = New().RenderTransaction(a, b)
	stest.AssertErrorAs[surql.DuplicateBindNameError](t, err)
	stest.AssertErrorContains(t, err, "statement 1")
}

func TestCapabilities(t *testing.T) {
	c := New().Capabilities()
	if !c.GraphHops || !c.IndexSegments || !c.Transactions {
		t.Errorf("Capabilities() = %+v", c)
	}
	if c.ConditionalProjection || c.CaseInsensitiveLike {
		t.Errorf("Capabilities() = %+v", c)
	}
}
