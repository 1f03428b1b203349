package store

import "fmt"

// DuplicateIDError reports an append whose transaction id is already present.
// Ids are generated collision-free upstream, so seeing this error means the
// id generator misbehaved; it is surfaced, never swallowed.
type DuplicateIDError struct {
	TransactionID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate transaction id: %s", e.TransactionID)
}

// PersistenceError reports a failed write to the backing storage. The record
// was not durably stored and the submission must be treated as failed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
