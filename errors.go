package clprover

import (
	goerrors "github.com/go-errors/errors"
)

// InvalidStructure is returned whenever an operation receives input that
// fails a structural or cryptographic consistency check: a schema
// mismatch, a missing map key, an unsatisfied predicate, or a failed
// signature/witness verification. It wraps go-errors/errors so callers
// that want a stack trace for debugging still get one.
type InvalidStructure struct {
	msg   string
	cause error
}

func newInvalidStructure(msg string) error {
	return &InvalidStructure{msg: msg, cause: goerrors.New(msg)}
}

func wrapInvalidStructure(msg string, cause error) error {
	return &InvalidStructure{msg: msg, cause: goerrors.WrapPrefix(cause, msg, 0)}
}

func (e *InvalidStructure) Error() string {
	return e.msg
}

func (e *InvalidStructure) Unwrap() error {
	return e.cause
}
