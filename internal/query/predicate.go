package query

// Op identifies a field comparison.
type Op string

const (
	OpEq Op = "eq"
	OpNe Op = "ne"
	// OpContains is a case-insensitive substring match.
	OpContains Op = "contains"
)

// Predicate is a closed set of boolean conditions over entity columns. The
// planner produces predicates; only the store adapter lowers them to SQL,
// so column names never travel through string concatenation elsewhere.
type Predicate interface {
	isPredicate()
}

// FieldOp compares a single column against a value.
type FieldOp struct {
	Column string
	Op     Op
	Value  any
}

// And is the conjunction of its members. An empty And matches everything.
type And []Predicate

// Or is the disjunction of its members. An empty Or matches nothing.
type Or []Predicate

func (FieldOp) isPredicate() {}
func (And) isPredicate()     {}
func (Or) isPredicate()      {}

// Eq builds an equality predicate.
func Eq(column string, value any) FieldOp {
	return FieldOp{Column: column, Op: OpEq, Value: value}
}

// Ne builds an inequality predicate.
func Ne(column string, value any) FieldOp {
	return FieldOp{Column: column, Op: OpNe, Value: value}
}

// Contains builds a case-insensitive substring predicate.
func Contains(column, needle string) FieldOp {
	return FieldOp{Column: column, Op: OpContains, Value: needle}
}
