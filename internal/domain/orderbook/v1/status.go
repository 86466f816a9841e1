package orderbookv1

// Status reports what an Enter or Cancel call did. It is informational:
// the book never fails on input.
type Status string

const (
	// StatusApplied means the book changed and events were emitted.
	StatusApplied Status = "applied"
	// StatusDuplicate means Enter saw an id that is already resting.
	StatusDuplicate Status = "duplicate"
	// StatusRejected means Enter got an empty id, an unknown side or a non-positive size.
	StatusRejected Status = "rejected"
	// StatusNotFound means Cancel got an id that is not resting.
	StatusNotFound Status = "not_found"
	// StatusNoOp means Cancel asked for a size not below the remaining quantity.
	StatusNoOp Status = "no_op"
)

// Changed reports whether the call mutated the book.
func (s Status) Changed() bool {
	return s == StatusApplied
}
