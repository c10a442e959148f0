package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCode(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(CodeConflict)
	if meta.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409, got %d", meta.HTTPStatus)
	}
	if meta.Retryable {
		t.Fatalf("conflict should not be retryable")
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("boom")
	err := Wrap(CodeDependency, cause, "pricing lookup failed")
	if !stdErrors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to satisfy errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsThroughWrapping(t *testing.T) {
	t.Parallel()

	inner := New(CodeNotFound, "order set not found")
	outer := fmt.Errorf("workflow: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatalf("expected typed error")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("unexpected code %s", typed.Code())
	}
	if !HasCode(outer, CodeNotFound) {
		t.Fatalf("HasCode should see the wrapped code")
	}
}
