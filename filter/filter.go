// Package filter translates AIP-160 filter expressions into surql predicate
// trees over declared field paths.
package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	"github.com/zoobzio/surql/internal/types"
	"github.com/zoobzio/surql/schema"
)

// Field declares one filterable identifier and the path it addresses.
type Field struct {
	Type *expr.Type
	Name string
	Path types.FieldPath
	// Collection marks array fields, where ":" tests membership.
	Collection bool
}

// Translator parses filter strings against a fixed set of fields.
type Translator struct {
	decls  *filtering.Declarations
	fields map[string]Field
}

// New creates a translator for fields.
func New(fields ...Field) (*Translator, error) {
	opts := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
	index := make(map[string]Field, len(fields))
	for _, f := range fields {
		if _, dup := index[f.Name]; dup {
			return nil, fmt.Errorf("duplicate filter field %q", f.Name)
		}
		index[f.Name] = f
		opts = append(opts, filtering.DeclareIdent(f.Name, f.Type))
	}

	decls, err := filtering.NewDeclarations(opts...)
	if err != nil {
		return nil, fmt.Errorf("create declarations: %w", err)
	}
	return &Translator{decls: decls, fields: index}, nil
}

// ReportFields returns the filterable fields of the report table.
func ReportFields() []Field {
	return []Field{
		{Name: "id", Path: schema.ReportID.Path(), Type: filtering.TypeString},
		{Name: "title", Path: schema.ReportTitle.Path(), Type: filtering.TypeString},
		{Name: "report_type", Path: schema.ReportType.Path(), Type: filtering.TypeString},
		{Name: "status", Path: schema.ReportStatusField.Path(), Type: filtering.TypeString},
		{Name: "author_id", Path: schema.ReportAuthorID.Path(), Type: filtering.TypeString},
		{Name: "assigned_reviewer_id", Path: schema.ReportAssignedReviewerID.Path(), Type: filtering.TypeString},
		{Name: "version", Path: schema.ReportVersion.Path(), Type: filtering.TypeInt},
		{Name: "created_at", Path: schema.ReportCreatedAt.Path(), Type: filtering.TypeTimestamp},
		{Name: "updated_at", Path: schema.ReportUpdatedAt.Path(), Type: filtering.TypeTimestamp},
		{Name: "due_date", Path: schema.ReportDueDate.Path(), Type: filtering.TypeTimestamp},
		{Name: "permissions", Path: schema.ReportPermissions.Path(), Type: filtering.TypeString, Collection: true},
		{Name: "reviewer_id", Path: schema.Content().ReviewComments().Any().Field(schema.CommentReviewerID), Type: filtering.TypeString},
	}
}

// UserFields returns the filterable fields of the user table.
func UserFields() []Field {
	return []Field{
		{Name: "id", Path: schema.UserID.Path(), Type: filtering.TypeString},
		{Name: "email", Path: schema.UserEmail.Path(), Type: filtering.TypeString},
		{Name: "username", Path: schema.UserUsername.Path(), Type: filtering.TypeString},
		{Name: "status", Path: schema.UserStatus.Path(), Type: filtering.TypeString},
		{Name: "first_name", Path: schema.Profile().Field(schema.ProfileFirstName), Type: filtering.TypeString},
		{Name: "last_name", Path: schema.Profile().Field(schema.ProfileLastName), Type: filtering.TypeString},
		{Name: "is_deleted", Path: schema.Profile().Field(schema.ProfileIsDeleted), Type: filtering.TypeBool},
		{Name: "city", Path: schema.Profile().Addresses().Any().City(), Type: filtering.TypeString},
		{Name: "language", Path: schema.Preferences().Field(schema.PreferenceLanguage), Type: filtering.TypeString},
		{Name: "roles", Path: schema.UserRoles.Path(), Type: filtering.TypeString, Collection: true},
		{Name: "permissions", Path: schema.UserPermissions.Path(), Type: filtering.TypeString, Collection: true},
	}
}

// RoleFields returns the filterable fields of the role table.
func RoleFields() []Field {
	return []Field{
		{Name: "id", Path: schema.RoleID.Path(), Type: filtering.TypeString},
		{Name: "name", Path: schema.RoleName.Path(), Type: filtering.TypeString},
		{Name: "is_system_role", Path: schema.RoleIsSystemRole.Path(), Type: filtering.TypeBool},
		{Name: "created_at", Path: schema.RoleCreatedAt.Path(), Type: filtering.TypeTimestamp},
		{Name: "permissions", Path: schema.RolePermissions.Path(), Type: filtering.TypeString, Collection: true},
	}
}

// ForTable returns a translator over the filterable fields of t.
func ForTable(t types.Table) (*Translator, error) {
	switch t {
	case types.TableUser:
		return New(UserFields()...)
	case types.TableRole:
		return New(RoleFields()...)
	case types.TableReport:
		return New(ReportFields()...)
	default:
		return nil, fmt.Errorf("no filter fields for table %d", t)
	}
}

// Parse translates filterStr. An empty filter yields a nil Expr. Binds are
// named after their field with a running suffix: status_1, status_2.
func (t *Translator) Parse(filterStr string) (types.Expr, error) {
	if strings.TrimSpace(filterStr) == "" {
		return nil, nil
	}

	filter, err := filtering.ParseFilterString(filterStr, t.decls)
	if err != nil {
		return nil, fmt.Errorf("parse filter: %w", err)
	}

	tr := &translation{fields: t.fields}
	return tr.translateExpr(filter.CheckedExpr.GetExpr())
}

// translation holds the state of one Parse call.
type translation struct {
	fields  map[string]Field
	counter int
}

func (tr *translation) translateExpr(e *expr.Expr) (types.Expr, error) {
	if e == nil {
		return nil, fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_CallExpr:
		return tr.translateCall(kind.CallExpr)
	default:
		return nil, fmt.Errorf("unsupported expression type: %T", kind)
	}
}

func (tr *translation) translateCall(call *expr.Expr_Call) (types.Expr, error) {
	switch call.Function {
	case "_&&_", "AND", "FUZZY":
		return tr.translateLogic(types.AND, call.Args)
	case "_||_", "OR":
		return tr.translateLogic(types.OR, call.Args)
	case "!_", "NOT":
		if len(call.Args) != 1 {
			return nil, fmt.Errorf("NOT requires 1 argument")
		}
		inner, err := tr.translateExpr(call.Args[0])
		if err != nil {
			return nil, err
		}
		return types.Negation{Expr: inner}, nil
	case "_==_", "=":
		return tr.translateComparison(call.Args, types.EQ)
	case "_!=_", "!=":
		return tr.translateComparison(call.Args, types.NE)
	case "_<_", "<":
		return tr.translateComparison(call.Args, types.LT)
	case "_<=_", "<=":
		return tr.translateComparison(call.Args, types.LTE)
	case "_>_", ">":
		return tr.translateComparison(call.Args, types.GT)
	case "_>=_", ">=":
		return tr.translateComparison(call.Args, types.GTE)
	case ":":
		return tr.translateComparison(call.Args, types.Contains)
	default:
		return nil, fmt.Errorf("unsupported function: %s", call.Function)
	}
}

// translateLogic flattens nested calls of the same operator into one group.
func (tr *translation) translateLogic(logic types.LogicOperator, args []*expr.Expr) (types.Expr, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%s requires 2 arguments", logic)
	}

	group := types.Group{Logic: logic}
	for _, arg := range args {
		child, err := tr.translateExpr(arg)
		if err != nil {
			return nil, err
		}
		if g, ok := child.(types.Group); ok && g.Logic == logic {
			group.Exprs = append(group.Exprs, g.Exprs...)
			continue
		}
		group.Exprs = append(group.Exprs, child)
	}
	return group, nil
}

func (tr *translation) translateComparison(args []*expr.Expr, op types.Operator) (types.Expr, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("comparison requires 2 arguments")
	}

	name, err := extractFieldName(args[0])
	if err != nil {
		return nil, err
	}
	field, ok := tr.fields[name]
	if !ok {
		return nil, fmt.Errorf("unknown field: %s", name)
	}

	value, err := extractValue(args[1])
	if err != nil {
		return nil, err
	}

	switch {
	case op == types.Contains && !field.Collection:
		return nil, fmt.Errorf("field %s is not a collection", name)
	case op == types.EQ && field.Collection:
		op = types.Contains
	case op == types.EQ:
		// A trailing * on a string value is a prefix match.
		if s, ok := value.(string); ok && len(s) > 1 && strings.HasSuffix(s, "*") {
			op = types.StartsWith
			value = strings.TrimSuffix(s, "*")
		}
	}

	tr.counter++
	bind := types.Bind{Name: name + "_" + strconv.Itoa(tr.counter), Value: value}
	return types.Comparison{Path: field.Path, Operator: op, Bind: bind}, nil
}

func extractFieldName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_IdentExpr:
		return kind.IdentExpr.Name, nil
	default:
		return "", fmt.Errorf("expected identifier, got %T", kind)
	}
}

func extractValue(e *expr.Expr) (any, error) {
	if e == nil {
		return nil, fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_ConstExpr:
		return extractConstValue(kind.ConstExpr)
	case *expr.Expr_CallExpr:
		if kind.CallExpr.Function == "timestamp" && len(kind.CallExpr.Args) == 1 {
			return extractTimestampValue(kind.CallExpr.Args[0])
		}
		return nil, fmt.Errorf("unsupported function in value position: %s", kind.CallExpr.Function)
	default:
		return nil, fmt.Errorf("expected constant or timestamp, got %T", kind)
	}
}

func extractConstValue(c *expr.Constant) (any, error) {
	if c == nil {
		return nil, fmt.Errorf("nil constant")
	}

	switch kind := c.ConstantKind.(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	case *expr.Constant_Uint64Value:
		return kind.Uint64Value, nil
	case *expr.Constant_DoubleValue:
		return kind.DoubleValue, nil
	case *expr.Constant_BoolValue:
		return kind.BoolValue, nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", kind)
	}
}

func extractTimestampValue(e *expr.Expr) (time.Time, error) {
	c, ok := e.GetExprKind().(*expr.Expr_ConstExpr)
	if !ok {
		return time.Time{}, fmt.Errorf("timestamp argument must be a constant string")
	}
	s, ok := c.ConstExpr.GetConstantKind().(*expr.Constant_StringValue)
	if !ok {
		return time.Time{}, fmt.Errorf("timestamp argument must be a string")
	}
	ts, err := time.Parse(time.RFC3339Nano, s.StringValue)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp format: %s", s.StringValue)
	}
	return ts.UTC(), nil
}
