package exception

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// The helpers below panic with an *ArgumentError when their condition holds and return
// normally otherwise. Use Recover to turn the panic back into an error.
//
// Absence follows two markers: a value is "undefined" when it is an interface holding
// nothing at all (an untyped nil), and "null" when it holds a nil of a known type, such
// as a nil pointer, map, slice, channel or func.

const defaultArgumentName = "argument"

// ThrowIfNull panics if value is a typed nil.
func ThrowIfNull(value any, argumentName ...string) {
	if isNull(value) {
		throwArgument("%s can not be 'null'", argumentName)
	}
}

// ThrowIfUndefined panics if value is an untyped nil.
func ThrowIfUndefined(value any, argumentName ...string) {
	if value == nil {
		throwArgument("%s can not be 'undefined'", argumentName)
	}
}

// ThrowIfNullOrUndefined panics if value is nil, typed or not.
func ThrowIfNullOrUndefined(value any, argumentName ...string) {
	if isNil(value) {
		throwArgument("%s can not be 'null' or 'undefined'", argumentName)
	}
}

// ThrowMissingArgument always panics.
func ThrowMissingArgument(argumentName ...string) {
	throwArgument("%s is missing", argumentName)
}

// ThrowIfEmptyString panics if value is a string of length zero.
func ThrowIfEmptyString(value any, argumentName ...string) {
	if text, ok := asString(value); ok && text == "" {
		throwArgument("%s cannot be an empty string", argumentName)
	}
}

// ThrowIfNullOrWhitespace panics if value is nil, typed or not, or a string that is empty
// or only contains whitespace.
func ThrowIfNullOrWhitespace(value any, argumentName ...string) {
	if isNil(value) {
		throwArgument("%s cannot be null, empty, or whitespace", argumentName)
	}
	if text, ok := asString(value); ok && strings.TrimFunc(text, isTrimmable) == "" {
		throwArgument("%s cannot be null, empty, or whitespace", argumentName)
	}
}

func throwArgument(template string, argumentName []string) {
	name := defaultArgumentName
	if len(argumentName) > 0 {
		name = argumentName[0]
	}
	// skip throwArgument and the exported helper
	panic(newArgumentError(fmt.Sprintf(template, name), argumentName, 2))
}

func isNull(value any) bool {
	return value != nil && isNil(value)
}

// asString accepts strings and types derived from them.
func asString(value any) (string, bool) {
	if text, ok := value.(string); ok {
		return text, true
	}
	if value == nil {
		return "", false
	}
	if reflected := reflect.ValueOf(value); reflected.Kind() == reflect.String {
		return reflected.String(), true
	}
	return "", false
}

func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
