package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a scenepack error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"     // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"           // 404
	ErrIOFailure         ErrorCode = "IO_FAILURE"          // 500
	ErrEncodingInvariant ErrorCode = "ENCODING_INVARIANT"  // 422
	ErrUnknownRaceKey    ErrorCode = "UNKNOWN_RACE_KEY"    // 422
	ErrUnknownLegacyRace ErrorCode = "UNKNOWN_LEGACY_RACE" // 422
	ErrUnknownGender     ErrorCode = "UNKNOWN_GENDER"      // 422
	ErrMalformedDocument ErrorCode = "MALFORMED_DOCUMENT"  // 422
	ErrInternal          ErrorCode = "INTERNAL"            // 500
)

// PackError represents a structured error with code, status, and details.
type PackError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *PackError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *PackError {
	return &PackError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing file, scene, or stage.
func NewNotFound(identifier string) *PackError {
	return &PackError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewIOFailure creates a 500 error wrapping a filesystem failure.
// The failure is propagated to the caller as-is; no retry is attempted.
func NewIOFailure(err error) *PackError {
	return &PackError{
		Code:    ErrIOFailure,
		Status:  500,
		Message: err.Error(),
	}
}

// NewEncodingInvariant creates a 422 error for a data model state that
// cannot be encoded, e.g. a non-warned scene with an empty stage list.
// Compilation must abort rather than emit a partial record.
func NewEncodingInvariant(msg string) *PackError {
	return &PackError{
		Code:    ErrEncodingInvariant,
		Status:  422,
		Message: msg,
	}
}

// NewUnknownRaceKey creates a 422 error for a race key with no output folder.
func NewUnknownRaceKey(raceKey string) *PackError {
	return &PackError{
		Code:    ErrUnknownRaceKey,
		Status:  422,
		Message: fmt.Sprintf("no output folder for race key %q", raceKey),
		Details: map[string]any{"race_key": raceKey},
	}
}

// NewUnknownLegacyRace creates a 422 error for an unrecognized legacy race code.
func NewUnknownLegacyRace(code string) *PackError {
	return &PackError{
		Code:    ErrUnknownLegacyRace,
		Status:  422,
		Message: fmt.Sprintf("unrecognized legacy race code %q", code),
		Details: map[string]any{"code": code},
	}
}

// NewUnknownGender creates a 422 error for an unrecognized legacy gender code.
func NewUnknownGender(code string) *PackError {
	return &PackError{
		Code:    ErrUnknownGender,
		Status:  422,
		Message: fmt.Sprintf("unrecognized gender: %s", code),
		Details: map[string]any{"code": code},
	}
}

// NewMalformedDocument creates a 422 error naming the missing or invalid
// field and the context it was expected in.
func NewMalformedDocument(field, context string) *PackError {
	return &PackError{
		Code:    ErrMalformedDocument,
		Status:  422,
		Message: fmt.Sprintf("missing %s attribute in %s", field, context),
		Details: map[string]any{"field": field, "context": context},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message is generic; the original error is kept in Details for logging.
func NewInternal(err error) *PackError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &PackError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// Is checks if an error is (or wraps) a PackError with the given code.
func Is(err error, code ErrorCode) bool {
	var pErr *PackError
	if stderrors.As(err, &pErr) {
		return pErr.Code == code
	}
	return false
}
