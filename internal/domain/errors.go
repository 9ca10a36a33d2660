package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyCode      = errors.New("product code is empty")
	ErrDuplicateCode  = errors.New("product code already recorded")
	ErrNoCodes        = errors.New("no codes captured")
	ErrNoDevice       = errors.New("no capture device configured")
	ErrStoreClosed    = errors.New("store is closed")
	ErrNotImplemented = errors.New("not implemented")
)

// ErrorKind decides how a failure is reported to the operator: the console
// picks its message from the kind, never from the wrapped driver error.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindDuplicate      ErrorKind = "duplicate"
	KindStorage        ErrorKind = "storage"
	KindDevice         ErrorKind = "device"
	KindNotImplemented ErrorKind = "not_implemented"
)

// OpError is returned by inventory operations. Op names the step that
// failed (e.g. "store.insert"), Code the offending product code if any.
type OpError struct {
	Op   string
	Kind ErrorKind
	Code string
	Err  error
}

// Error renders "op: kind (code=X): cause", leaving out empty parts.
func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(string(e.Kind))
	if e.Code != "" {
		b.WriteString(" (code=" + e.Code + ")")
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// KindOf digs the outermost OpError out of err and returns its kind.
// Errors that never passed through an inventory operation have no kind.
func KindOf(err error) ErrorKind {
	var oe *OpError
	if !errors.As(err, &oe) {
		return ""
	}
	return oe.Kind
}

// IsKind is shorthand for KindOf(err) == kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
