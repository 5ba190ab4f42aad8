package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Formatter writes command results as text, JSON or YAML.
type Formatter struct {
	Format string
	Writer io.Writer
}

// Write encodes data in the configured structured format, or calls text for
// the text format.
func (f *Formatter) Write(data any, text func(w io.Writer) error) error {
	switch f.Format {
	case "json":
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case "yaml":
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(f.Writer)
	}
}

// CompileOutput is the result of rendering one query.
type CompileOutput struct {
	Engine   string         `json:"engine" yaml:"engine"`
	Text     string         `json:"text" yaml:"text"`
	Bindings []BindingEntry `json:"bindings" yaml:"bindings"`
	Args     []any          `json:"args,omitempty" yaml:"args,omitempty"`
}

// BindingEntry is one bound name, kept in render order.
type BindingEntry struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

func writeCompileText(w io.Writer, out CompileOutput) error {
	if _, err := fmt.Fprintln(w, out.Text); err != nil {
		return err
	}
	for _, b := range out.Bindings {
		fmt.Fprintf(w, "  $%s = %v\n", b.Name, b.Value)
	}
	for i, a := range out.Args {
		fmt.Fprintf(w, "  arg %d = %v\n", i+1, a)
	}
	return nil
}
