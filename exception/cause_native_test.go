//go:build !no_native_cause

package exception_test

import (
	"testing"

	"github.com/thanhminhmr/go-exception/exception"
)

func TestRawCauseValue(t *testing.T) {
	err := exception.NewWithOptions("outer", exception.Options{Cause: "disk full"})
	if err.GetCause() != nil {
		t.Fatalf("GetCause()=%v want nil for a non-error cause", err.GetCause())
	}
	if got := err.GetRawCause(); got != "disk full" {
		t.Fatalf("GetRawCause()=%v want=%q", got, "disk full")
	}
	if !containsInOrder(err.String(), "ChainedError: outer", "\nCaused by...\n", "  disk full") {
		t.Fatalf("String() missing raw cause: %q", err.String())
	}
}

func TestToStructuredRawCause(t *testing.T) {
	err := exception.NewWithOptions("outer", exception.Options{Cause: 42})
	if got := err.ToStructured().Cause; got != 42 {
		t.Fatalf("Cause=%#v want=42", got)
	}
}

func TestPanicRecoverPair(t *testing.T) {
	defer func() {
		recovered := exception.Recover(recover())
		if recovered == nil {
			t.Fatalf("nothing recovered")
		}
		if got := recovered.GetRawCause(); got != "Test" {
			t.Fatalf("GetRawCause()=%v want=%q", got, "Test")
		}
		checkStackTrace(t, recovered, "/exception_test.TestPanicRecoverPair")
	}()
	exception.Panic("Test")
}
