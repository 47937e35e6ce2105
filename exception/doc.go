// Package exception provides an error type that carries the error that caused it, and
// renders the whole cause chain as text or as a structured record.
//
// A ChainedError is created with a message and an optional cause:
//
//	if err := load(); err != nil {
//		return exception.New("load profile failed", err)
//	}
//
// The chain can then be rendered in four ways:
//
//   - String: name, message and stack of each link, causes indented one level deeper
//     under a "Caused by..." line
//   - FullStack: the stack of each link, one "Caused by:" entry per cause
//   - ToStructured / MarshalJSON: a recursive Record of name, type, timestamp, message,
//     stack and cause
//   - PrintCauseChain: one "Name: message" line per link, indented by depth
//
// Causes do not need to come from this package. Any error takes part in a chain through
// errors.Unwrap, and may report a name, message, stack or cause of its own by
// implementing GetName, GetMessage, GetStack or GetCause.
//
// Chain walks stop at a link already visited and at Settings.MaxChainDepth, so cyclic
// chains render with a "<circular cause>" marker instead of recursing forever.
//
// The Throw helpers validate function arguments by panicking with an ArgumentError;
// Recover turns such a panic back into an Exception.
package exception
