package exception

import (
	"runtime"
	"strconv"
	"strings"
)

// StackFrame is a single call site of a captured stack trace.
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// String renders the frame as "at function (file:line)".
func (f StackFrame) String() string {
	return "at " + f.Function + " (" + f.File + ":" + strconv.Itoa(f.Line) + ")"
}

// StackFrames is a stack trace, innermost call first.
type StackFrames []StackFrame

// String renders one frame per line, without a trailing newline.
func (s StackFrames) String() string {
	var builder strings.Builder
	for index, frame := range s {
		if index > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(frame.String())
	}
	return builder.String()
}

// StackTrace captures the current call stack starting from the caller of StackTrace. A
// skip of 1 starts from the caller of that caller, and so on. The depth is bounded by
// Settings.StackDepth; a depth of 0 captures nothing.
func StackTrace(skip int) StackFrames {
	depth := settings().StackDepth
	if depth <= 0 {
		return nil
	}
	// get stack trace
	programCounters := make([]uintptr, depth)
	programCountersLength := runtime.Callers(2+skip, programCounters)
	if programCountersLength == 0 {
		return nil
	}
	frames := runtime.CallersFrames(programCounters[:programCountersLength])
	// create stack frames
	stack := make(StackFrames, 0, programCountersLength)
	for len(stack) < depth {
		frame, more := frames.Next()
		stack = append(stack, StackFrame{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}
	return stack
}
