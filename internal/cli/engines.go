package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoobzio/surql"
	"github.com/zoobzio/surql/dialect"
)

// EngineInfo describes one engine and the features it renders.
type EngineInfo struct {
	Name     string   `json:"name" yaml:"name"`
	Graph    bool     `json:"graph" yaml:"graph"`
	Features []string `json:"features" yaml:"features"`
}

// NewEnginesCommand creates the engines command.
func NewEnginesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "engines",
		Short:         "List engines and their capabilities",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngines(rootOpts, cmd)
		},
	}
}

func runEngines(opts *RootOptions, cmd *cobra.Command) error {
	var infos []EngineInfo
	for _, e := range surql.Engines() {
		r, err := dialect.For(e)
		if err != nil {
			return err
		}
		infos = append(infos, EngineInfo{
			Name:     e.String(),
			Graph:    e.IsGraph(),
			Features: features(r.Capabilities()),
		})
	}

	out := &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Write(infos, func(w io.Writer) error {
		for _, info := range infos {
			fmt.Fprintf(w, "%s: %s\n", info.Name, strings.Join(info.Features, ", "))
		}
		return nil
	})
}

func features(c surql.Capabilities) []string {
	flags := []struct {
		on   bool
		name string
	}{
		{c.IndexSegments, "index-segments"},
		{c.GraphHops, "graph-hops"},
		{c.Fetch, "fetch"},
		{c.Let, "let"},
		{c.CommonTableExpr, "cte"},
		{c.RegexOperators, "regex"},
		{c.CaseInsensitiveLike, "ilike"},
		{c.ArrayContainment, "array-containment"},
		{c.ConditionalProjection, "conditional-projection"},
		{c.Transactions, "transactions"},
	}
	out := []string{}
	for _, f := range flags {
		if f.on {
			out = append(out, f.name)
		}
	}
	return out
}
