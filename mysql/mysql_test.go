package mysql

import (
	"testing"

	"github.com/zoobzio/surql"
	"github.com/zoobzio/surql/internal/types"
	"github.com/zoobzio/surql/schema"
	stest "github.com/zoobzio/surql/testing"
)

func TestNew(t *testing.T) {
	r := New()
	if r == nil {
		t.Fatal("New() returned nil")
	}
	if r.Engine() != types.EngineMySQL {
		t.Errorf("Engine() = %s, want mysql", r.Engine())
	}
}

func TestRender_Select(t *testing.T) {
	result, err := surql.Select(surql.TableUser).
		Fields(schema.UserID, schema.UserEmail).
		JoinEdge(surql.EdgeHasRole, surql.TableRole, "").
		Where(surql.Eq(schema.UserStatus, surql.B("status", "active"))).
		OrderBy(schema.UserEmail).
		Limit(3).
		Render(New())
	stest.AssertNoError(t, err)

	expected := "SELECT `id`, `email` FROM `user`" +
		" INNER JOIN `has_role` AS `has_role_1` ON `has_role_1`.`in` = `user`.`id`" +
		" INNER JOIN `role` ON `role`.`id` = `has_role_1`.`out`" +
		" WHERE `status` = ? ORDER BY `email` ASC LIMIT 3"
	stest.AssertText(t, expected, result.Text)
	stest.AssertArgs(t, []any{"active"}, result.Args)
}

func TestRender_Operators(t *testing.T) {
	tests := []struct {
		name     string
		expr     surql.Expr
		expected string
		args     []any
	}{
		{"in", surql.In(schema.ReportVersion, surql.B("v", []int{1, 2})), "`version` IN (?, ?)", []any{1, 2}},
		{"matches", surql.Matches(schema.ReportTitle, surql.B("p", "^Q")), "`title` REGEXP ?", []any{"^Q"}},
		{"ilike", surql.ILike(schema.ReportTitle, surql.B("p", "q%")), "LOWER(`title`) LIKE LOWER(?)", []any{"q%"}},
		{"ends with", surql.EndsWith(schema.ReportTitle, surql.B("p", "_v2")), "`title` LIKE ?", []any{`%\_v2`}},
		{
			"contains",
			surql.Contains(schema.ReportPermissions, surql.B("p", "view_reports")),
			"JSON_CONTAINS(`permissions`, JSON_QUOTE(?))",
			[]any{"view_reports"},
		},
		{"nested path", surql.Eq(schema.Content().Field(schema.ContentBody), surql.B("b", "x")), "`content`.`body` = ?", []any{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := surql.Select(surql.TableReport).Where(tt.expr).Render(New())
			stest.AssertNoError(t, err)
			stest.AssertText(t, "SELECT * FROM `report` WHERE "+tt.expected, result.Text)
			stest.AssertArgs(t, tt.args, result.Args)
		})
	}
}

func TestRender_Update(t *testing.T) {
	result, err := surql.Update(surql.TableUser).
		Set(schema.UserStatus, surql.B("status", "suspended")).
		Where(surql.Eq(schema.UserID, surql.B("uid", "u1"))).
		Render(New())
	stest.AssertNoError(t, err)

	stest.AssertText(t, "UPDATE `user` SET `status` = ? WHERE `id` = ?", result.Text)
	stest.AssertArgs(t, []any{"suspended", "u1"}, result.Args)
}

func TestRender_Unsupported(t *testing.T) {
	_, err := surql.Select(surql.TableReport).
		Where(surql.ContainsAll(schema.ReportPermissions, surql.B("p", []string{"a"}))).
		Render(New())
	unsupported := stest.AssertErrorAs[surql.UnsupportedExprError](t, err)
	if unsupported.Variant != "ContainsAll" || unsupported.Engine != types.EngineMySQL {
		t.Errorf("error = %+v", unsupported)
	}

	_, err = surql.Select(surql.TableReport).Fetch(schema.ReportAuthorID).Render(New())
	stest.AssertErrorAs[surql.UnsupportedExprError](t, err)
}

func TestQuoteIdentifier(t *testing.T) {
	if got := (dialect{}).QuoteIdentifier("we`ird"); got != "`we``ird`" {
		t.Errorf("QuoteIdentifier() = %s", got)
	}
}

func TestCapabilities(t *testing.T) {
	c := New().Capabilities()
	if !c.RegexOperators || !c.CommonTableExpr || c.ArrayContainment {
		t.Errorf("Capabilities() = %+v", c)
	}
}
