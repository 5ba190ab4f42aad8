package render

// Capabilities describes the query features supported by an engine.
type Capabilities struct {
	IndexSegments         bool // profile.addresses[0] style paths
	GraphHops             bool // ->edge->table traversal in FROM
	Fetch                 bool // FETCH record links
	Let                   bool // LET $alias = (subquery)
	CommonTableExpr       bool // WITH "alias" AS (subquery)
	RegexOperators        bool // Matches
	CaseInsensitiveLike   bool // ILIKE operator
	ArrayContainment      bool // ContainsAny / ContainsAll
	ConditionalProjection bool // CASE WHEN projections
	Transactions          bool // single-text transaction blocks
}
