package exception

import (
	"fmt"
	"time"
)

// Exception is an error that knows its own cause chain and can render it.
//
// Every Exception is immutable once constructed: its name, message, timestamp, stack
// trace and cause never change, and all renderings are pure reads of that state plus the
// state of the errors reachable through the cause chain.
type Exception interface {
	// Error returns a single line in the form of "Name: message".
	Error() string

	// GetName returns the display name of this Exception. Unless overridden at
	// construction, it is the same as GetType.
	GetName() string

	// GetType returns the name of the most derived variant, such as "ChainedError" or
	// "ArgumentError".
	GetType() string

	// GetMessage returns the message of this Exception. Never empty.
	GetMessage() string

	// GetTimestamp returns the instant this Exception was constructed.
	GetTimestamp() time.Time

	// GetStackTrace returns the call stack captured at construction. The slice may be
	// empty if stack capture is disabled.
	GetStackTrace() StackFrames

	// GetStack returns the captured call stack as text, one frame per line.
	GetStack() string

	// GetCause returns the error that triggered this Exception, or nil. A cause that was
	// stored but is not an error is only visible through GetRawCause.
	GetCause() error

	// GetRawCause returns the stored cause as given at construction, or nil.
	GetRawCause() any

	// String renders this Exception, its stack and its whole cause chain, indenting each
	// cause one level deeper than the error it caused.
	String() string

	// FullStack renders the stack of this Exception followed by one "Caused by:" line for
	// every error in the cause chain.
	FullStack() string

	// ToStructured returns the recursive structured form of this Exception.
	ToStructured() Record

	__() // private
}

// type check
var (
	_ Exception = (*ChainedError)(nil)
	_ Exception = (*ArgumentError)(nil)
)

// DefaultMessage replaces an empty message at construction.
const DefaultMessage = "No message description was set to this error."

const chainedErrorType = "ChainedError"

// Options is the configuration form of construction.
type Options struct {
	// Cause is the triggering failure. Values that are not errors are only kept when the
	// runtime supports native cause storage.
	Cause any

	// Name overrides the display name. The type stays the most derived variant name.
	Name string
}

// ChainedError is the general Exception carrying an optional cause.
type ChainedError struct {
	kind       string
	name       string
	message    string
	timestamp  time.Time
	cause      causeSlot
	stackTrace StackFrames
}

// New creates a ChainedError with an optional raw cause. Only the first cause is used;
// it may be any error, including another Exception.
//
//	err := exception.New("load profile failed", err)
func New(message string, cause ...any) *ChainedError {
	var first any
	if len(cause) > 0 {
		first = cause[0]
	}
	e := &ChainedError{}
	e.init(chainedErrorType, message, Options{Cause: first}, 1)
	return e
}

// NewWithOptions creates a ChainedError from its configuration form.
//
//	err := exception.NewWithOptions("wrapping error", exception.Options{Cause: inner})
func NewWithOptions(message string, options Options) *ChainedError {
	e := &ChainedError{}
	e.init(chainedErrorType, message, options, 1)
	return e
}

// init fills e, capturing the stack from the caller skip frames above the caller of init.
func (e *ChainedError) init(kind string, message string, options Options, skip int) {
	if message == "" {
		message = DefaultMessage
	}
	name := options.Name
	if name == "" {
		name = kind
	}
	e.kind = kind
	e.name = name
	e.message = message
	e.timestamp = time.Now()
	e.cause = storeCause(options.Cause)
	e.stackTrace = StackTrace(skip + 1)
}

func (e *ChainedError) Error() string {
	return headline(e.name, e.message)
}

func (e *ChainedError) GetName() string {
	return e.name
}

func (e *ChainedError) GetType() string {
	return e.kind
}

func (e *ChainedError) GetMessage() string {
	return e.message
}

func (e *ChainedError) GetTimestamp() time.Time {
	return e.timestamp
}

func (e *ChainedError) GetStackTrace() StackFrames {
	return e.stackTrace
}

func (e *ChainedError) GetStack() string {
	return e.stackTrace.String()
}

func (e *ChainedError) GetCause() error {
	if err, ok := e.GetRawCause().(error); ok {
		return err
	}
	return nil
}

func (e *ChainedError) GetRawCause() any {
	if e.cause == nil {
		return nil
	}
	return e.cause.get()
}

func (e *ChainedError) Unwrap() error {
	return e.GetCause()
}

func (e *ChainedError) String() string {
	return renderString(e)
}

func (e *ChainedError) FullStack() string {
	return renderFullStack(e)
}

func (e *ChainedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprint(s, e.String())
			return
		}
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	default:
		_, _ = fmt.Fprint(s, e.Error())
	}
}

func (e *ChainedError) __() {}

func headline(name string, message string) string {
	if message != "" {
		return name + ": " + message
	}
	return name
}
