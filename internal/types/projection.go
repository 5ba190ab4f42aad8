package types

// Projection selects what a SELECT returns. A nil Projection means all.
type Projection interface {
	projectionNode()
}

// AllProjection selects every field.
type AllProjection struct{}

// FieldsProjection selects the listed paths.
type FieldsProjection struct {
	Fields []FieldPath
}

// ConditionalProjection selects Fields only where Condition holds.
type ConditionalProjection struct {
	Condition Expr
	Fields    []FieldPath
}

func (AllProjection) projectionNode()         {}
func (FieldsProjection) projectionNode()      {}
func (ConditionalProjection) projectionNode() {}
