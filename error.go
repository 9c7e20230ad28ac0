package ghostpen

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and map well to transport-level errors such
// as HTTP status codes. Subpackages translate external failures into one of
// these codes so callers can branch on ErrorCode without importing the
// subpackage.
const (
	ECONFLICT    = "conflict"
	EEXTRACT     = "extract"     // supported file yielded no text
	EINTERNAL    = "internal"    // invariant broken, bug
	EINVALID     = "invalid"     // validation failed on caller input
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable" // persistence layer could not complete
	EUNSUPPORTED = "unsupported" // file format outside the supported set
	EUPSTREAM    = "upstream"    // embedding or generation backend failed
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract the code and message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface. Not used by the application itself.
func (e *Error) Error() string {
	return fmt.Sprintf("ghostpen error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
