package surql_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/zoobzio/surql"
	"github.com/zoobzio/surql/schema"
	"github.com/zoobzio/surql/surrealdb"
	stest "github.com/zoobzio/surql/testing"
)

func TestCompile_LogsOutcome(t *testing.T) {
	hook := test.NewGlobal()
	level := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		logrus.SetLevel(level)
		hook.Reset()
	})

	ast := surql.Select(surql.TableReport).WhereEq(schema.ReportAuthorID, "auther_id", "u1").MustBuild()
	_, err := surql.Compile(ast, surrealdb.New())
	stest.AssertNoError(t, err)

	entry := hook.LastEntry()
	if entry == nil || entry.Message != "Compiled query" {
		t.Fatalf("LastEntry() = %+v, want Compiled query", entry)
	}
	if entry.Data["component"] != "Compiler" || entry.Data["binds"] != 1 {
		t.Errorf("Data = %v", entry.Data)
	}

	bad := surql.Select(surql.TableReport).Where(surql.Like(schema.ReportTitle, surql.B("p", "x"))).MustBuild()
	_, err = surql.Compile(bad, surrealdb.New())
	stest.AssertErrorAs[surql.UnsupportedExprError](t, err)
	if hook.LastEntry().Message != "Failed to compile query" {
		t.Errorf("LastEntry().Message = %q", hook.LastEntry().Message)
	}
}

func TestParseNames(t *testing.T) {
	for _, e := range surql.Engines() {
		got, err := surql.ParseEngine(e.String())
		stest.AssertNoError(t, err)
		if got != e {
			t.Errorf("ParseEngine(%q) = %s", e, got)
		}
	}

	table, err := surql.ParseTable("report")
	stest.AssertNoError(t, err)
	if table != surql.TableReport {
		t.Errorf("ParseTable(report) = %s", table)
	}

	edge, err := surql.ParseEdge("has_role")
	stest.AssertNoError(t, err)
	if edge != surql.EdgeHasRole {
		t.Errorf("ParseEdge(has_role) = %s", edge)
	}

	_, err = surql.ParseTable("users")
	stest.AssertError(t, err)
}
