package types

// Operator is the comparison applied by a Comparison node.
type Operator string

const (
	// Comparison.
	EQ  Operator = "="
	NE  Operator = "!="
	GT  Operator = ">"
	GTE Operator = ">="
	LT  Operator = "<"
	LTE Operator = "<="

	// Set and collection.
	IN          Operator = "IN"
	NotIn       Operator = "NOT IN"
	Contains    Operator = "CONTAINS"
	ContainsAny Operator = "CONTAINSANY"
	ContainsAll Operator = "CONTAINSALL"

	// String.
	LIKE       Operator = "LIKE"
	ILIKE      Operator = "ILIKE"
	StartsWith Operator = "STARTS WITH"
	EndsWith   Operator = "ENDS WITH"
	Matches    Operator = "MATCHES"
)

var operatorVariants = map[Operator]string{
	EQ:          "Eq",
	NE:          "Ne",
	GT:          "Gt",
	GTE:         "Gte",
	LT:          "Lt",
	LTE:         "Lte",
	IN:          "In",
	NotIn:       "NotIn",
	Contains:    "Contains",
	ContainsAny: "ContainsAny",
	ContainsAll: "ContainsAll",
	LIKE:        "Like",
	ILIKE:       "ILike",
	StartsWith:  "StartsWith",
	EndsWith:    "EndsWith",
	Matches:     "Matches",
}

// Variant returns the expression variant name for the operator.
func (o Operator) Variant() string {
	if v, ok := operatorVariants[o]; ok {
		return v
	}
	return string(o)
}

// Valid reports whether o is a declared operator.
func (o Operator) Valid() bool {
	_, ok := operatorVariants[o]
	return ok
}

// NullCheck selects the presence test applied by a Presence node.
type NullCheck int

const (
	CheckIsNull NullCheck = iota
	CheckIsNotNull
	CheckExists
	CheckNotExists
)

// Variant returns the expression variant name for the check.
func (c NullCheck) Variant() string {
	switch c {
	case CheckIsNull:
		return "IsNull"
	case CheckIsNotNull:
		return "IsNotNull"
	case CheckExists:
		return "Exists"
	case CheckNotExists:
		return "NotExists"
	default:
		return "UnknownCheck"
	}
}
