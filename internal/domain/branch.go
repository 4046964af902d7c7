package domain

import "encoding/json"

// BranchStatus is the outcome of one independently degradable sub-call.
type BranchStatus string

// Branch status values.
const (
	BranchOK     BranchStatus = "ok"
	BranchEmpty  BranchStatus = "empty"
	BranchFailed BranchStatus = "failed"
)

// Branch carries the items of a sub-call together with the reason it has none.
// A failed branch always has zero items; an empty branch succeeded with nothing to return.
type Branch[T any] struct {
	items []T
	err   error
}

// Succeeded wraps the items of a successful call.
func Succeeded[T any](items []T) Branch[T] { return Branch[T]{items: items} }

// Failed records a failed call.
func Failed[T any](err error) Branch[T] { return Branch[T]{err: err} }

// Items returns the branch items (nil when failed).
func (b Branch[T]) Items() []T { return b.items }

// Err returns the failure cause, if any.
func (b Branch[T]) Err() error { return b.err }

// Status distinguishes legitimately empty results from failed upstream calls.
func (b Branch[T]) Status() BranchStatus {
	switch {
	case b.err != nil:
		return BranchFailed
	case len(b.items) == 0:
		return BranchEmpty
	default:
		return BranchOK
	}
}

type branchJSON[T any] struct {
	Status BranchStatus `json:"status"`
	Items  []T          `json:"items"`
	Error  string       `json:"error,omitempty"`
}

// MarshalJSON renders the branch as {status, items, error}.
func (b Branch[T]) MarshalJSON() ([]byte, error) {
	out := branchJSON[T]{Status: b.Status(), Items: b.items}
	if out.Items == nil {
		out.Items = []T{}
	}
	if b.err != nil {
		out.Error = b.err.Error()
	}
	return json.Marshal(out)
}
