package exception

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// causeSlot holds the cause of an Exception according to the storage strategy resolved
// for this process.
type causeSlot interface {
	get() any
}

// nativeCause keeps any cause value, relying on the standard error wrapping to expose it.
type nativeCause struct {
	value any
}

func (c nativeCause) get() any {
	return c.value
}

// simulatedCause only keeps causes that are errors.
type simulatedCause struct {
	err error
}

func (c simulatedCause) get() any {
	if c.err == nil {
		return nil
	}
	return c.err
}

// supportsNativeCause is probed once per process.
var supportsNativeCause = sync.OnceValue(detectNativeCause)

func detectNativeCause() (supported bool) {
	if nativeCauseDisabled {
		return false
	}
	defer func() {
		if recover() != nil {
			supported = false
		}
	}()
	inner := errors.New("inner")
	probe := fmt.Errorf("probe: %w", inner)
	return errors.Unwrap(probe) == inner
}

func storeCause(cause any) causeSlot {
	if isNil(cause) {
		return nil
	}
	return storeCauseWith(supportsNativeCause(), cause)
}

func storeCauseWith(native bool, cause any) causeSlot {
	if native {
		return nativeCause{value: cause}
	}
	if err, ok := cause.(error); ok {
		return simulatedCause{err: err}
	}
	return nil
}

// isNil reports whether value is an untyped nil or a typed nil of a nillable kind.
func isNil(value any) bool {
	if value == nil {
		return true
	}
	switch reflected := reflect.ValueOf(value); reflected.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return reflected.IsNil()
	}
	return false
}
