package errors

import (
	"fmt"
	"testing"
)

func TestPackError_Error(t *testing.T) {
	err := &PackError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "not found: scene",
	}

	expected := "NOT_FOUND: not found: scene"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("project path is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "project path is required" {
		t.Errorf("Message = %q, want %q", err.Message, "project path is required")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("pack.scenepack.json")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["identifier"] != "pack.scenepack.json" {
		t.Errorf("Details[identifier] = %v, want %q", err.Details["identifier"], "pack.scenepack.json")
	}
}

func TestNewEncodingInvariant(t *testing.T) {
	err := NewEncodingInvariant("empty scene whilst building files")

	if err.Code != ErrEncodingInvariant {
		t.Errorf("Code = %q, want %q", err.Code, ErrEncodingInvariant)
	}
	if err.Status != 422 {
		t.Errorf("Status = %d, want 422", err.Status)
	}
}

func TestNewUnknownRaceKey(t *testing.T) {
	err := NewUnknownRaceKey("Basilisk")

	if err.Code != ErrUnknownRaceKey {
		t.Errorf("Code = %q, want %q", err.Code, ErrUnknownRaceKey)
	}
	if err.Details["race_key"] != "Basilisk" {
		t.Errorf("Details[race_key] = %v, want %q", err.Details["race_key"], "Basilisk")
	}
}

func TestNewUnknownGender(t *testing.T) {
	err := NewUnknownGender("amphibian")

	if err.Code != ErrUnknownGender {
		t.Errorf("Code = %q, want %q", err.Code, ErrUnknownGender)
	}
	if err.Message != "unrecognized gender: amphibian" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestNewMalformedDocument(t *testing.T) {
	err := NewMalformedDocument("actors", `animation "Example"`)

	if err.Code != ErrMalformedDocument {
		t.Errorf("Code = %q, want %q", err.Code, ErrMalformedDocument)
	}
	if err.Details["field"] != "actors" {
		t.Errorf("Details[field] = %v, want %q", err.Details["field"], "actors")
	}
}

func TestNewInternal(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		originalErr := fmt.Errorf("disk full")
		err := NewInternal(originalErr)

		if err.Code != ErrInternal {
			t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
		}
		if err.Status != 500 {
			t.Errorf("Status = %d, want 500", err.Status)
		}
		// Message should be generic (not leak internal details)
		if err.Message != "an internal error occurred" {
			t.Errorf("Message = %q, want %q", err.Message, "an internal error occurred")
		}
		// Original error should be stored in Details for logging
		if err.Details["internal_error"] != "disk full" {
			t.Errorf("Details[internal_error] = %q, want %q", err.Details["internal_error"], "disk full")
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewInternal(nil)

		if err.Message != "an internal error occurred" {
			t.Errorf("Message = %q, want %q", err.Message, "an internal error occurred")
		}
		// Details should be empty but not nil
		if err.Details == nil {
			t.Error("Details should not be nil")
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		err := NewNotFound("test")
		if !Is(err, ErrNotFound) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		err := NewNotFound("test")
		if Is(err, ErrIOFailure) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("non-PackError", func(t *testing.T) {
		err := fmt.Errorf("plain error")
		if Is(err, ErrNotFound) {
			t.Error("Is() = true, want false for non-PackError")
		}
	})

	t.Run("wrapped PackError", func(t *testing.T) {
		inner := NewUnknownRaceKey("Basilisk")
		wrapped := fmt.Errorf("scene 0: %w", inner)
		if !Is(wrapped, ErrUnknownRaceKey) {
			t.Error("Is() = false, want true for wrapped PackError")
		}
		if Is(wrapped, ErrNotFound) {
			t.Error("Is() = true, want false for wrong code on wrapped PackError")
		}
	})
}
