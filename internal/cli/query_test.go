package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/surql"
)

func TestParseQueryFile_RejectsUnknownKeys(t *testing.T) {
	_, err := ParseQueryFile([]byte("table: report\nwher: x\n"))
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestQueryFile_Build(t *testing.T) {
	q, err := ParseQueryFile([]byte(`
table: user
fields: [profile.first_name, profile.addresses.*.city]
joins:
  - edge: has_role
    target: role
    alias: r
  - fetch: roles
limit: 5
`))
	require.NoError(t, err)

	ast, err := q.Build()
	require.NoError(t, err)
	assert.Equal(t, surql.KindSelect, ast.Kind)
	assert.Equal(t, surql.TableUser, ast.Table)
	require.Len(t, ast.Joins, 2)
	assert.Equal(t, surql.EdgeJoin{Edge: surql.EdgeHasRole, Target: surql.TableRole, Alias: "r"}, ast.Joins[0])
	require.NotNil(t, ast.Limit)
	assert.Equal(t, 5, ast.Limit.Count)
}

func TestQueryFile_BuildInsertDefaultsBindName(t *testing.T) {
	q, err := ParseQueryFile([]byte(`
kind: insert
table: role
set:
  - field: name
    value: auditor
  - field: is_system_role
    bind: system
    value: false
`))
	require.NoError(t, err)

	ast, err := q.Build()
	require.NoError(t, err)
	require.Len(t, ast.Assignments, 2)
	assert.Equal(t, "name", ast.Assignments[0].Bind.Name)
	assert.Equal(t, "system", ast.Assignments[1].Bind.Name)
	assert.Equal(t, false, ast.Assignments[1].Bind.Value)
}

func TestQueryFile_BuildErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown table", "table: users\n", "unknown table"},
		{"unknown kind", "kind: upsert\ntable: user\n", "unknown kind"},
		{"bad path", "table: user\nfields: ['a..b']\n", "fields"},
		{"unknown edge", "table: user\njoins: [{edge: likes, target: role}]\n", "joins[0]"},
		{"bad filter", "table: user\nfilter: 'nope = 1'\n", "filter"},
		{"update without set", "kind: update\ntable: user\n", "UPDATE requires at least one assignment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseQueryFile([]byte(tt.yaml))
			require.NoError(t, err)
			_, err = q.Build()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
