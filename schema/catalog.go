package schema

import (
	"fmt"
	"strconv"

	"github.com/zoobzio/dbml"
	"github.com/zoobzio/surql/internal/types"
)

// Project returns the DBML mirror of the relational layout. Nested documents
// (profile, preferences, content) are single jsonb columns; every edge is a
// table of (id, in, out) rows.
func Project() *dbml.Project {
	project := dbml.NewProject("surql")

	user := dbml.NewTable(types.TableUser.String())
	user.AddColumn(dbml.NewColumn(UserID.String(), "text"))
	user.AddColumn(dbml.NewColumn(UserEmail.String(), "varchar"))
	user.AddColumn(dbml.NewColumn(UserUsername.String(), "varchar"))
	user.AddColumn(dbml.NewColumn(UserProfile.String(), "jsonb"))
	user.AddColumn(dbml.NewColumn(UserRoles.String(), "text[]"))
	user.AddColumn(dbml.NewColumn(UserPermissions.String(), "text[]"))
	user.AddColumn(dbml.NewColumn(UserPreferences.String(), "jsonb"))
	user.AddColumn(dbml.NewColumn(UserStatus.String(), "varchar"))
	user.AddColumn(dbml.NewColumn(UserEvents.String(), "jsonb"))
	project.AddTable(user)

	role := dbml.NewTable(types.TableRole.String())
	role.AddColumn(dbml.NewColumn(RoleID.String(), "text"))
	role.AddColumn(dbml.NewColumn(RoleName.String(), "varchar"))
	role.AddColumn(dbml.NewColumn(RoleDescription.String(), "text"))
	role.AddColumn(dbml.NewColumn(RolePermissions.String(), "text[]"))
	role.AddColumn(dbml.NewColumn(RoleIsSystemRole.String(), "boolean"))
	role.AddColumn(dbml.NewColumn(RoleCreatedAt.String(), "timestamp"))
	role.AddColumn(dbml.NewColumn(RoleEvents.String(), "jsonb"))
	project.AddTable(role)

	report := dbml.NewTable(types.TableReport.String())
	report.AddColumn(dbml.NewColumn(ReportID.String(), "text"))
	report.AddColumn(dbml.NewColumn(ReportTitle.String(), "varchar"))
	report.AddColumn(dbml.NewColumn(ReportContent.String(), "jsonb"))
	report.AddColumn(dbml.NewColumn(ReportType.String(), "varchar"))
	report.AddColumn(dbml.NewColumn(ReportPermissions.String(), "text[]"))
	report.AddColumn(dbml.NewColumn(ReportStatusField.String(), "varchar"))
	report.AddColumn(dbml.NewColumn(ReportAuthorID.String(), "text"))
	report.AddColumn(dbml.NewColumn(ReportAssignedReviewerID.String(), "text"))
	report.AddColumn(dbml.NewColumn(ReportCreatedAt.String(), "timestamp"))
	report.AddColumn(dbml.NewColumn(ReportUpdatedAt.String(), "timestamp"))
	report.AddColumn(dbml.NewColumn(ReportDueDate.String(), "timestamp"))
	report.AddColumn(dbml.NewColumn(ReportVersion.String(), "int"))
	report.AddColumn(dbml.NewColumn(ReportEvents.String(), "jsonb"))
	project.AddTable(report)

	for _, e := range types.Edges() {
		edge := dbml.NewTable(e.String())
		edge.AddColumn(dbml.NewColumn("id", "text"))
		edge.AddColumn(dbml.NewColumn("in", "text"))
		edge.AddColumn(dbml.NewColumn("out", "text"))
		project.AddTable(edge)
	}

	return project
}

// Catalog checks ASTs against a DBML project before they reach a relational
// engine.
type Catalog struct {
	columns map[string]map[string]bool // table -> column
}

// NewCatalog indexes project.
func NewCatalog(project *dbml.Project) (*Catalog, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}

	c := &Catalog{columns: make(map[string]map[string]bool)}
	for _, table := range project.Tables {
		cols := make(map[string]bool)
		for _, col := range table.Columns {
			cols[col.Name] = true
		}
		c.columns[table.Name] = cols
	}
	return c, nil
}

// DefaultCatalog indexes Project().
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(Project())
	if err != nil {
		panic(err)
	}
	return c
}

// HasTable reports whether the catalog declares name.
func (c *Catalog) HasTable(name string) bool {
	_, ok := c.columns[name]
	return ok
}

// HasColumn reports whether table declares column.
func (c *Catalog) HasColumn(table, column string) bool {
	return c.columns[table][column]
}

// Check verifies that the tables, edges and top-level columns referenced by
// ast exist. Paths rooted at a join alias or target are checked against that
// table; nested segments below a column are not checked.
func (c *Catalog) Check(ast *types.AST) error {
	table := ast.Table.String()
	if !c.HasTable(table) {
		return fmt.Errorf("table '%s' not found in schema", table)
	}

	scope := map[string]string{table: table}
	hops := 0
	for _, join := range ast.Joins {
		switch j := join.(type) {
		case types.EdgeJoin:
			hops++
			if err := c.checkHop(j.Edge, j.Target, j.Alias, hops, scope); err != nil {
				return err
			}
		case types.ReverseEdgeJoin:
			hops++
			if err := c.checkHop(j.Edge, j.Target, j.Alias, hops, scope); err != nil {
				return err
			}
		case types.FetchJoin:
			if err := c.checkPath(table, j.Path, scope); err != nil {
				return err
			}
		case types.LetJoin:
			if err := c.Check(j.Query); err != nil {
				return fmt.Errorf("LET %s: %w", j.Alias, err)
			}
			scope[j.Alias] = ""
		}
	}

	var paths []types.FieldPath
	switch p := ast.Projection.(type) {
	case types.FieldsProjection:
		paths = append(paths, p.Fields...)
	case types.ConditionalProjection:
		paths = append(paths, p.Fields...)
		if err := c.checkExpr(table, p.Condition, scope); err != nil {
			return err
		}
	}
	paths = append(paths, ast.GroupBy...)
	for _, o := range ast.OrderBy {
		paths = append(paths, o.Path)
	}
	for _, a := range ast.Assignments {
		paths = append(paths, a.Path)
	}
	for _, p := range paths {
		if err := c.checkPath(table, p, scope); err != nil {
			return err
		}
	}

	if ast.Filter != nil {
		return c.checkExpr(table, ast.Filter, scope)
	}
	return nil
}

// checkHop brings the hop's edge alias and target into scope, named the way
// relational engines render them.
func (c *Catalog) checkHop(e types.Edge, target types.Table, alias string, n int, scope map[string]string) error {
	if !c.HasTable(e.String()) {
		return fmt.Errorf("edge table '%s' not found in schema", e)
	}
	if !c.HasTable(target.String()) {
		return fmt.Errorf("table '%s' not found in schema", target)
	}
	scope[e.HopAlias(n)] = e.String()
	if alias != "" {
		scope[alias] = target.String()
		return nil
	}
	if _, taken := scope[target.String()]; taken {
		scope[target.String()+"_"+strconv.Itoa(n)] = target.String()
		return nil
	}
	scope[target.String()] = target.String()
	return nil
}

func (c *Catalog) checkPath(table string, p types.FieldPath, scope map[string]string) error {
	root := p.Root()
	if root == "" {
		return nil
	}
	if c.HasColumn(table, root) {
		return nil
	}
	if qualified, ok := scope[root]; ok && len(p) > 1 {
		// alias.column; LET aliases have no known columns.
		if qualified == "" || p[1].Kind != types.SegmentField || c.HasColumn(qualified, p[1].Name) {
			return nil
		}
		return fmt.Errorf("field '%s' not found in table '%s'", p[1].Name, qualified)
	}
	return fmt.Errorf("field '%s' not found in table '%s'", root, table)
}

func (c *Catalog) checkExpr(table string, e types.Expr, scope map[string]string) error {
	switch ex := e.(type) {
	case types.Comparison:
		return c.checkPath(table, ex.Path, scope)
	case types.Presence:
		return c.checkPath(table, ex.Path, scope)
	case types.Group:
		for _, child := range ex.Exprs {
			if err := c.checkExpr(table, child, scope); err != nil {
				return err
			}
		}
	case types.Negation:
		return c.checkExpr(table, ex.Expr, scope)
	case types.PermissionCheck:
		return c.checkPath(table, ex.Path, scope)
	case types.SubqueryCondition:
		if err := c.checkPath(table, ex.Path, scope); err != nil {
			return err
		}
		return c.Check(ex.Query)
	}
	return nil
}
