package types

// QueryResult contains the rendered query text and its parameters.
type QueryResult struct {
	Bindings *Bindings
	Text     string
	// Args holds the positional arguments for relational engines, one per
	// placeholder in text order. It is empty for the graph engine.
	Args []any
}
