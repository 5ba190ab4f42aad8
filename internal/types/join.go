package types

// Join is a clause rendered after FROM, in declaration order.
type Join interface {
	Variant() string
	joinNode()
}

// EdgeJoin traverses an edge outward: ->edge->target.
type EdgeJoin struct {
	Alias  string
	Edge   Edge
	Target Table
}

// ReverseEdgeJoin traverses an edge inward: <-edge<-target.
type ReverseEdgeJoin struct {
	Alias  string
	Edge   Edge
	Target Table
}

// FetchJoin resolves a record link in place.
type FetchJoin struct {
	Path FieldPath
}

// LetJoin binds the result of a nested query to a parameter alias.
type LetJoin struct {
	Query *AST
	Alias string
}

func (EdgeJoin) Variant() string        { return "Edge" }
func (ReverseEdgeJoin) Variant() string { return "ReverseEdge" }
func (FetchJoin) Variant() string       { return "Fetch" }
func (LetJoin) Variant() string         { return "Let" }

func (EdgeJoin) joinNode()        {}
func (ReverseEdgeJoin) joinNode() {}
func (FetchJoin) joinNode()       {}
func (LetJoin) joinNode()         {}
