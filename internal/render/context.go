package render

import (
	"fmt"

	"github.com/zoobzio/surql/internal/types"
)

// builtinParams are the parameters the graph engine defines on its own. A raw
// fragment may reference them without a binding.
var builtinParams = map[string]bool{
	"auth":    true,
	"session": true,
	"token":   true,
	"scope":   true,
	"access":  true,
	"this":    true,
	"parent":  true,
	"value":   true,
	"before":  true,
	"after":   true,
	"input":   true,
	"event":   true,
}

// Context threads the target engine, the placeholder counter and the
// accumulated bindings through one render pass. Nested queries render into
// the same Context so that binds stay unique across the whole statement.
type Context struct {
	// Placeholder formats the n-th positional placeholder, counting from 1.
	// Nil means "?".
	Placeholder func(n int) string

	bindings *types.Bindings
	declared *types.Bindings
	lets     map[string]bool
	Engine   types.Engine
	raws     []string
	args     []any
	// BindCounter is the number of positional placeholders emitted so far.
	BindCounter int
	depth       int
}

// NewContext creates a render context for engine. declared holds the values
// that Ref binds resolve against.
func NewContext(engine types.Engine, declared []types.Bind) (*Context, error) {
	ctx := &Context{
		Engine:   engine,
		bindings: types.NewBindings(),
		declared: types.NewBindings(),
		lets:     make(map[string]bool),
	}
	if err := ctx.Declare(declared); err != nil {
		return nil, err
	}
	return ctx, nil
}

// Declare adds values that Ref binds resolve against. Nested queries declare
// their own bindings into the shared context.
func (c *Context) Declare(binds []types.Bind) error {
	for _, b := range binds {
		if !c.declared.Put(b.Name, b.Value) {
			return DuplicateBindNameError{Name: b.Name}
		}
	}
	return nil
}

// Descend enters a nested query.
func (c *Context) Descend() error {
	if c.depth >= types.MaxSubqueryDepth {
		return fmt.Errorf("maximum subquery depth (%d) exceeded", types.MaxSubqueryDepth)
	}
	c.depth++
	return nil
}

// Ascend leaves a nested query.
func (c *Context) Ascend() {
	c.depth--
}

// Depth returns the current nesting level; the outermost query is 0.
func (c *Context) Depth() int {
	return c.depth
}

// Register resolves b and records it in the result bindings.
func (c *Context) Register(b types.Bind) (any, error) {
	value := b.Value
	if b.Ref {
		v, ok := c.declared.Get(b.Name)
		if !ok {
			return nil, MissingBindingError{Name: b.Name}
		}
		value = v
	}
	if !c.bindings.Put(b.Name, value) {
		return nil, DuplicateBindNameError{Name: b.Name}
	}
	return value, nil
}

// Param registers b and returns its named placeholder, $name.
func (c *Context) Param(b types.Bind) (string, error) {
	if _, err := c.Register(b); err != nil {
		return "", err
	}
	return "$" + b.Name, nil
}

// Arg appends a positional argument and returns its placeholder.
func (c *Context) Arg(value any) string {
	c.args = append(c.args, value)
	c.BindCounter++
	if c.Placeholder == nil {
		return "?"
	}
	return c.Placeholder(c.BindCounter)
}

// DeclareLet records a LET alias so raw fragments may reference it.
func (c *Context) DeclareLet(alias string) {
	c.lets[alias] = true
}

// AddRaw queues a raw fragment for the parameter check run by Result.
func (c *Context) AddRaw(text string) {
	c.raws = append(c.raws, text)
}

// Result checks queued raw fragments and assembles the query result.
func (c *Context) Result(text string) (*types.QueryResult, error) {
	for _, raw := range c.raws {
		for _, name := range RawParams(raw) {
			if c.bindings.Has(name) || c.lets[name] || builtinParams[name] {
				continue
			}
			v, ok := c.declared.Get(name)
			if !ok {
				return nil, MissingBindingError{Name: name}
			}
			c.bindings.Put(name, v)
		}
	}
	return &types.QueryResult{
		Text:     text,
		Bindings: c.bindings,
		Args:     c.args,
	}, nil
}

// RawParams returns the $name references in text, in order of appearance.
// References inside single or double quoted strings are ignored.
func RawParams(text string) []string {
	var names []string
	var quote byte
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case quote != 0:
			if ch == '\\' {
				i++
			} else if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			quote = ch
		case ch == '$':
			j := i + 1
			for j < len(text) && isIdentByte(text[j], j == i+1) {
				j++
			}
			if j > i+1 {
				names = append(names, text[i+1:j])
			}
			i = j - 1
		}
	}
	return names
}

func isIdentByte(b byte, first bool) bool {
	switch {
	case b == '_', b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		return true
	case !first && b >= '0' && b <= '9':
		return true
	}
	return false
}
