package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zoobzio/surql"
	"github.com/zoobzio/surql/filter"
)

// FieldInfo describes one filterable field.
type FieldInfo struct {
	Name       string `json:"name" yaml:"name"`
	Path       string `json:"path" yaml:"path"`
	Collection bool   `json:"collection,omitempty" yaml:"collection,omitempty"`
}

// NewFieldsCommand creates the fields command.
func NewFieldsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "fields <table>",
		Short:         "List the filterable fields of a table",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(rootOpts, args[0], cmd)
		},
	}
}

func runFields(opts *RootOptions, name string, cmd *cobra.Command) error {
	table, err := surql.ParseTable(name)
	if err != nil {
		return err
	}

	var fields []filter.Field
	switch table {
	case surql.TableUser:
		fields = filter.UserFields()
	case surql.TableRole:
		fields = filter.RoleFields()
	case surql.TableReport:
		fields = filter.ReportFields()
	}

	infos := make([]FieldInfo, len(fields))
	for i, f := range fields {
		infos[i] = FieldInfo{Name: f.Name, Path: f.Path.String(), Collection: f.Collection}
	}

	out := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Write(infos, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, info := range infos {
			suffix := ""
			if info.Collection {
				suffix = "  (collection)"
			}
			fmt.Fprintf(tw, "%s\t%s%s\n", info.Name, info.Path, suffix)
		}
		return tw.Flush()
	})
}
