package services

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports missing or invalid checkout input. Nothing has
// been written when it is returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid order input: %s", strings.Join(e.Fields, ", "))
}

// PersistenceError reports a failed write to the order store. Incomplete
// is set when the order row was committed but its items were not, so an
// administrator can reconcile or retry instead of the failure being
// swallowed.
type PersistenceError struct {
	OrderID    uint
	Incomplete bool
	Err        error
}

func (e *PersistenceError) Error() string {
	if e.Incomplete {
		return fmt.Sprintf("order %d persisted without items: %v", e.OrderID, e.Err)
	}
	return fmt.Sprintf("failed to persist order: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// InvalidStateTransitionError reports a status change attempted on an
// order that already left the pending state.
type InvalidStateTransitionError struct {
	OrderID uint
	From    string
	To      string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("order %d: cannot change status from %q to %q", e.OrderID, e.From, e.To)
}

// ErrOrderNotFound is returned when a referenced order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ErrOrderIncomplete marks a store failure where the order row was
// committed but the item rows were not. The transactional gorm store never
// produces it; it exists for stores without multi-statement transactions.
var ErrOrderIncomplete = errors.New("order committed without items")
