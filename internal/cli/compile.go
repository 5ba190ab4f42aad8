package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/zoobzio/surql"
	"github.com/zoobzio/surql/dialect"
)

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compile <query.yaml>",
		Short: "Render a query file for an engine",
		Long: `Render a YAML query file into query text plus bindings.

The filter key takes an AIP-160 filter over the table's filterable fields
(see "surql fields <table>").`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(rootOpts, args[0], cmd)
		},
	}
}

func runCompile(opts *RootOptions, path string, cmd *cobra.Command) error {
	q, err := LoadQueryFile(path)
	if err != nil {
		return err
	}
	ast, err := q.Build()
	if err != nil {
		return err
	}

	r, err := dialect.For(opts.engine())
	if err != nil {
		return err
	}
	result, err := surql.Compile(ast, r)
	if err != nil {
		return err
	}

	out := newCompileOutput(r.Engine(), result)
	f := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.Write(out, func(w io.Writer) error { return writeCompileText(w, out) })
}

func newCompileOutput(e surql.Engine, result *surql.QueryResult) CompileOutput {
	out := CompileOutput{
		Engine:   e.String(),
		Text:     result.Text,
		Bindings: []BindingEntry{},
		Args:     result.Args,
	}
	for _, name := range result.Bindings.Names() {
		v, _ := result.Bindings.Get(name)
		out.Bindings = append(out.Bindings, BindingEntry{Name: name, Value: v})
	}
	return out
}
