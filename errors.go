package sigmatch

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Sentinel errors for errors.Is checks. Check wraps them in the typed
// errors below, which carry the failure details.
var (
	ErrNotCallable = errors.New("value is not callable")
	ErrMismatch    = errors.New("signature does not match shape")
)

// NotCallableError reports that a value has no inspectable signature.
type NotCallableError struct {
	Type reflect.Type // nil when the value itself was nil
}

func (e *NotCallableError) Error() string {
	if e.Type == nil {
		return "cannot inspect the signature of <nil>"
	}
	return fmt.Sprintf("cannot inspect the signature of non-callable %s value", e.Type)
}

func (e *NotCallableError) Unwrap() error { return ErrNotCallable }

// MismatchError reports that a candidate is invocable but its signature
// failed at least one check. Failed lists the names of the failed checks.
type MismatchError struct {
	Failed []string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("signature does not match shape (failed checks: %s)", strings.Join(e.Failed, ", "))
}

func (e *MismatchError) Unwrap() error { return ErrMismatch }
