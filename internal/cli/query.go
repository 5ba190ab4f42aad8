package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zoobzio/surql"
	"github.com/zoobzio/surql/filter"
)

// QueryFile is the YAML form of a query.
//
//	kind: select
//	table: report
//	fields: [id, title]
//	filter: status = "draft" AND version > 1
//	order_by:
//	  - field: created_at
//	    desc: true
//	limit: 10
type QueryFile struct {
	Kind    string      `yaml:"kind"`
	Table   string      `yaml:"table"`
	Fields  []string    `yaml:"fields,omitempty"`
	Joins   []JoinSpec  `yaml:"joins,omitempty"`
	Filter  string      `yaml:"filter,omitempty"`
	OrderBy []OrderSpec `yaml:"order_by,omitempty"`
	GroupBy []string    `yaml:"group_by,omitempty"`
	Limit   *int        `yaml:"limit,omitempty"`
	Start   int         `yaml:"start,omitempty"`
	Set     []SetSpec   `yaml:"set,omitempty"`
}

// JoinSpec is a graph hop, or a fetch when Fetch is set.
type JoinSpec struct {
	Edge    string `yaml:"edge,omitempty"`
	Target  string `yaml:"target,omitempty"`
	Alias   string `yaml:"alias,omitempty"`
	Reverse bool   `yaml:"reverse,omitempty"`
	Fetch   string `yaml:"fetch,omitempty"`
}

// OrderSpec orders by one path.
type OrderSpec struct {
	Field string `yaml:"field"`
	Desc  bool   `yaml:"desc,omitempty"`
}

// SetSpec assigns a value in UPDATE and INSERT queries. Bind defaults to the
// field path with dots replaced by underscores.
type SetSpec struct {
	Field string `yaml:"field"`
	Bind  string `yaml:"bind,omitempty"`
	Value any    `yaml:"value"`
}

// LoadQueryFile reads and parses a query file. Unknown keys are rejected.
func LoadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read query file: %w", err)
	}
	return ParseQueryFile(data)
}

// ParseQueryFile parses YAML query data.
func ParseQueryFile(data []byte) (*QueryFile, error) {
	var q QueryFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&q); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &q, nil
}

// Build converts the file into a validated AST.
func (q *QueryFile) Build() (*surql.AST, error) {
	table, err := surql.ParseTable(q.Table)
	if err != nil {
		return nil, err
	}

	var b *surql.Builder
	switch strings.ToLower(q.Kind) {
	case "", "select":
		b = surql.Select(table)
	case "update":
		b = surql.Update(table)
	case "delete":
		b = surql.Delete(table)
	case "insert":
		b = surql.Insert(table)
	default:
		return nil, fmt.Errorf("unknown kind: %q", q.Kind)
	}

	for _, f := range q.Fields {
		p, err := surql.ParsePath(f)
		if err != nil {
			return nil, fmt.Errorf("fields: %w", err)
		}
		b.Field(p)
	}

	for i, j := range q.Joins {
		if err := addJoin(b, j); err != nil {
			return nil, fmt.Errorf("joins[%d]: %w", i, err)
		}
	}

	if q.Filter != "" {
		tr, err := filter.ForTable(table)
		if err != nil {
			return nil, err
		}
		e, err := tr.Parse(q.Filter)
		if err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}
		b.Where(e)
	}

	for _, o := range q.OrderBy {
		p, err := surql.ParsePath(o.Field)
		if err != nil {
			return nil, fmt.Errorf("order_by: %w", err)
		}
		if o.Desc {
			b.OrderByDesc(p)
		} else {
			b.OrderBy(p)
		}
	}

	for _, g := range q.GroupBy {
		p, err := surql.ParsePath(g)
		if err != nil {
			return nil, fmt.Errorf("group_by: %w", err)
		}
		b.GroupBy(p)
	}

	if q.Limit != nil {
		b.Limit(*q.Limit)
	}
	if q.Start > 0 {
		b.Start(q.Start)
	}

	for _, s := range q.Set {
		p, err := surql.ParsePath(s.Field)
		if err != nil {
			return nil, fmt.Errorf("set: %w", err)
		}
		name := s.Bind
		if name == "" {
			name = strings.ReplaceAll(s.Field, ".", "_")
		}
		bind, err := surql.TryB(name, s.Value)
		if err != nil {
			return nil, fmt.Errorf("set: %w", err)
		}
		b.Set(p, bind)
	}

	return b.Build()
}

func addJoin(b *surql.Builder, j JoinSpec) error {
	if j.Fetch != "" {
		p, err := surql.ParsePath(j.Fetch)
		if err != nil {
			return err
		}
		b.Fetch(p)
		return nil
	}

	edge, err := surql.ParseEdge(j.Edge)
	if err != nil {
		return err
	}
	target, err := surql.ParseTable(j.Target)
	if err != nil {
		return err
	}
	if j.Reverse {
		b.JoinReverse(edge, target, j.Alias)
	} else {
		b.JoinEdge(edge, target, j.Alias)
	}
	return nil
}
