package exception_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/thanhminhmr/go-exception/exception"
)

func TestNewDefaults(t *testing.T) {
	before := time.Now()
	err := exception.New("")
	after := time.Now()
	if got, want := err.GetMessage(), exception.DefaultMessage; got != want {
		t.Fatalf("GetMessage()=%q want=%q", got, want)
	}
	if got, want := err.GetName(), "ChainedError"; got != want {
		t.Fatalf("GetName()=%q want=%q", got, want)
	}
	if got, want := err.GetType(), "ChainedError"; got != want {
		t.Fatalf("GetType()=%q want=%q", got, want)
	}
	if timestamp := err.GetTimestamp(); timestamp.Before(before) || timestamp.After(after) {
		t.Fatalf("GetTimestamp()=%v not within [%v, %v]", timestamp, before, after)
	}
	if err.GetCause() != nil || err.GetRawCause() != nil {
		t.Fatalf("expected no cause, got %v", err.GetRawCause())
	}
}

func TestNameIsMostDerivedVariant(t *testing.T) {
	err := exception.NewArgumentError("bad", "id")
	if got, want := err.GetName(), "ArgumentError"; got != want {
		t.Fatalf("GetName()=%q want=%q", got, want)
	}
	if got, want := err.GetType(), "ArgumentError"; got != want {
		t.Fatalf("GetType()=%q want=%q", got, want)
	}
	if got, want := err.Error(), "ArgumentError: bad"; got != want {
		t.Fatalf("Error()=%q want=%q", got, want)
	}
}

func TestNameOverride(t *testing.T) {
	err := exception.NewWithOptions("failed", exception.Options{Name: "StorageError"})
	if got, want := err.GetName(), "StorageError"; got != want {
		t.Fatalf("GetName()=%q want=%q", got, want)
	}
	if got, want := err.GetType(), "ChainedError"; got != want {
		t.Fatalf("GetType()=%q want=%q", got, want)
	}
}

func TestCauseIdentity(t *testing.T) {
	root := errors.New("root")
	for name, err := range map[string]*exception.ChainedError{
		"raw":     exception.New("outer", root),
		"options": exception.NewWithOptions("outer", exception.Options{Cause: root}),
	} {
		if err.GetCause() != root {
			t.Fatalf("%s: GetCause()=%v want=%v", name, err.GetCause(), root)
		}
		if err.GetRawCause() != root {
			t.Fatalf("%s: GetRawCause()=%v want=%v", name, err.GetRawCause(), root)
		}
		if !errors.Is(err, root) {
			t.Fatalf("%s: errors.Is(err, root)=false", name)
		}
	}
}

func TestCauseThroughChain(t *testing.T) {
	root := exception.NewArgumentError("bad id", "id")
	err := exception.New("outer", exception.New("mid", root))
	var argument *exception.ArgumentError
	if !errors.As(err, &argument) || argument != root {
		t.Fatalf("errors.As did not find the ArgumentError in the chain")
	}
}

func TestNilCauseIsIgnored(t *testing.T) {
	var typedNil *exception.ChainedError
	for name, err := range map[string]*exception.ChainedError{
		"untyped": exception.New("outer", nil),
		"typed":   exception.New("outer", typedNil),
		"none":    exception.New("outer"),
	} {
		if err.GetRawCause() != nil {
			t.Fatalf("%s: expected no cause, got %#v", name, err.GetRawCause())
		}
		if strings.Contains(err.String(), "Caused by") {
			t.Fatalf("%s: String() renders a cause: %q", name, err.String())
		}
	}
}

func TestFormat(t *testing.T) {
	err := exception.New("outer", errors.New("root"))
	if got, want := fmt.Sprintf("%v", err), "ChainedError: outer"; got != want {
		t.Fatalf("%%v=%q want=%q", got, want)
	}
	if got, want := fmt.Sprintf("%s", err), "ChainedError: outer"; got != want {
		t.Fatalf("%%s=%q want=%q", got, want)
	}
	if got, want := fmt.Sprintf("%q", err), `"ChainedError: outer"`; got != want {
		t.Fatalf("%%q=%q want=%q", got, want)
	}
	if got, want := fmt.Sprintf("%+v", err), err.String(); got != want {
		t.Fatalf("%%+v=%q want=%q", got, want)
	}
}

func TestStackStartsAtCaller(t *testing.T) {
	err := exception.New("outer")
	trace := err.GetStackTrace()
	if len(trace) == 0 {
		t.Fatalf("expected non-empty stack trace")
	}
	if !strings.HasSuffix(trace[0].Function, "/exception_test.TestStackStartsAtCaller") {
		t.Fatalf("expected first function is this function, got %+v", trace[0])
	}
	if !strings.HasPrefix(err.GetStack(), "at ") {
		t.Fatalf("GetStack()=%q should start with a frame", err.GetStack())
	}
}

func TestVersion(t *testing.T) {
	version := exception.Version()
	if parts := strings.Split(version, "."); len(parts) != 3 {
		t.Fatalf("Version()=%q is not a semantic version", version)
	}
}

// containsInOrder reports whether all needles appear in haystack in order.
func containsInOrder(haystack string, needles ...string) bool {
	position := 0
	for _, needle := range needles {
		index := strings.Index(haystack[position:], needle)
		if index < 0 {
			return false
		}
		position += index + len(needle)
	}
	return true
}
