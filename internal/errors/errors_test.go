package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFound(t *testing.T) {
	err := NotFound("resource not found")

	if err.Kind != ErrNotFound {
		t.Errorf("expected Kind ErrNotFound, got %d", err.Kind)
	}
	if err.Message != "resource not found" {
		t.Errorf("expected Message 'resource not found', got %q", err.Message)
	}
	if err.Err != nil {
		t.Errorf("expected Err to be nil, got %v", err.Err)
	}
}

func TestNotFoundf(t *testing.T) {
	err := NotFoundf("card %d not found", 123)

	if err.Kind != ErrNotFound {
		t.Errorf("expected Kind ErrNotFound, got %d", err.Kind)
	}
	if err.Message != "card 123 not found" {
		t.Errorf("expected formatted message, got %q", err.Message)
	}
}

func TestValidation(t *testing.T) {
	err := Validation("name required")

	if err.Kind != ErrValidation {
		t.Errorf("expected Kind ErrValidation, got %d", err.Kind)
	}
}

func TestValidationf(t *testing.T) {
	err := Validationf("field %s is empty", "name")

	if err.Kind != ErrValidation {
		t.Errorf("expected Kind ErrValidation, got %d", err.Kind)
	}
	if err.Message != "field name is empty" {
		t.Errorf("expected formatted message, got %q", err.Message)
	}
}

func TestConflict(t *testing.T) {
	err := Conflict("already exists")

	if err.Kind != ErrConflict {
		t.Errorf("expected Kind ErrConflict, got %d", err.Kind)
	}
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("bad payload")

	if err.Kind != ErrInvalidInput {
		t.Errorf("expected Kind ErrInvalidInput, got %d", err.Kind)
	}
}

func TestInternal_WrapsError(t *testing.T) {
	underlying := fmt.Errorf("disk full")
	err := Internal(underlying)

	if err.Kind != ErrInternal {
		t.Errorf("expected Kind ErrInternal, got %d", err.Kind)
	}
	if err.Err != underlying {
		t.Error("expected underlying error to be kept")
	}
}

func TestError_MessageOnly(t *testing.T) {
	err := NotFound("missing")

	if err.Error() != "missing" {
		t.Errorf("expected 'missing', got %q", err.Error())
	}
}

func TestError_WithUnderlying(t *testing.T) {
	err := Wrap(fmt.Errorf("row scan failed"), ErrInternal, "query cards")

	want := "query cards: row scan failed"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestUnwrap(t *testing.T) {
	underlying := fmt.Errorf("root cause")
	err := Wrap(underlying, ErrInternal, "wrapped")

	if !errors.Is(err, underlying) {
		t.Error("expected errors.Is to find the underlying error")
	}
	if errors.Unwrap(err) != underlying {
		t.Error("expected Unwrap to return the underlying error")
	}
}

func TestErrorsAs_FindsKind(t *testing.T) {
	var err error = NotFound("missing card")

	var appErr *Error
	if !errors.As(err, &appErr) {
		t.Fatal("expected errors.As to match *Error")
	}
	if appErr.Kind != ErrNotFound {
		t.Errorf("expected Kind ErrNotFound, got %d", appErr.Kind)
	}
}
