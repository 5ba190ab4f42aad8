package cli

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zoobzio/surql"
	"github.com/zoobzio/surql/driver"
	"github.com/zoobzio/surql/schema"
)

// ExecOutput is the result of running one query.
type ExecOutput struct {
	Rows         []map[string]any `json:"rows,omitempty" yaml:"rows,omitempty"`
	RowsAffected int64            `json:"rows_affected" yaml:"rows_affected"`
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <query.yaml>",
		Short: "Run a query file against a relational database",
		Long: `Render a YAML query file for a relational engine and run it against the
database at --dsn (or SURQL_DSN). SELECT queries print their rows; other
kinds print the number of affected rows.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(rootOpts, args[0], cmd)
		},
	}
}

func runExec(opts *RootOptions, path string, cmd *cobra.Command) error {
	if opts.Config.DSN == "" {
		return fmt.Errorf("exec requires --dsn or SURQL_DSN")
	}

	q, err := LoadQueryFile(path)
	if err != nil {
		return err
	}
	ast, err := q.Build()
	if err != nil {
		return err
	}

	var dbOpts []driver.Option
	if opts.Config.CheckSchema {
		dbOpts = append(dbOpts, driver.WithCatalog(schema.DefaultCatalog()))
	}
	db, err := driver.Open(opts.engine(), opts.Config.DSN, dbOpts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}()

	out, err := execute(cmd, db, ast)
	if err != nil {
		return err
	}

	f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.Write(out, func(w io.Writer) error {
		if ast.Kind != surql.KindSelect {
			_, err := fmt.Fprintf(w, "%d row(s) affected\n", out.RowsAffected)
			return err
		}
		for _, row := range out.Rows {
			fmt.Fprintln(w, row)
		}
		_, err := fmt.Fprintf(w, "%d row(s)\n", out.RowsAffected)
		return err
	})
}

func execute(cmd *cobra.Command, db *driver.DB, ast *surql.AST) (ExecOutput, error) {
	ctx := cmd.Context()

	if ast.Kind != surql.KindSelect {
		res, err := db.Exec(ctx, ast)
		if err != nil {
			return ExecOutput{}, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return ExecOutput{}, fmt.Errorf("rows affected: %w", err)
		}
		return ExecOutput{RowsAffected: n}, nil
	}

	rows, err := db.Query(ctx, ast)
	if err != nil {
		return ExecOutput{}, err
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return ExecOutput{}, err
	}
	return out, nil
}

func scanRows(rows *sql.Rows) (ExecOutput, error) {
	cols, err := rows.Columns()
	if err != nil {
		return ExecOutput{}, fmt.Errorf("columns: %w", err)
	}

	out := ExecOutput{Rows: []map[string]any{}}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return ExecOutput{}, fmt.Errorf("scan: %w", err)
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		out.Rows = append(out.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return ExecOutput{}, fmt.Errorf("rows: %w", err)
	}
	out.RowsAffected = int64(len(out.Rows))
	return out, nil
}
