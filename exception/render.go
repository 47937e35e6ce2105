package exception

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

const indentUnit = "  "

const (
	circularMarker  = "<circular cause>"
	truncatedMarker = "<cause chain truncated>"
)

// The capabilities below let foreign errors take part in a chain. Anything that is an
// error can be rendered; the more of these it implements, the richer the rendering.
type (
	named interface {
		GetName() string
	}
	typed interface {
		GetType() string
	}
	messenger interface {
		GetMessage() string
	}
	stacker interface {
		GetStack() string
	}
	causer interface {
		GetCause() error
	}
	rawCauser interface {
		GetRawCause() any
	}
)

func nameOf(err error) string {
	if n, ok := err.(named); ok {
		if name := n.GetName(); name != "" {
			return name
		}
	}
	return "Error"
}

func typeOf(err error) string {
	if t, ok := err.(typed); ok {
		if kind := t.GetType(); kind != "" {
			return kind
		}
	}
	return fmt.Sprintf("%T", err)
}

func messageOf(err error) string {
	if m, ok := err.(messenger); ok {
		return m.GetMessage()
	}
	return err.Error()
}

func stackOf(err error) string {
	if s, ok := err.(stacker); ok {
		return s.GetStack()
	}
	return ""
}

func causeOf(err error) error {
	if c, ok := err.(causer); ok {
		return c.GetCause()
	}
	return errors.Unwrap(err)
}

func rawCauseOf(err error) any {
	if c, ok := err.(rawCauser); ok {
		return c.GetRawCause()
	}
	if cause := causeOf(err); cause != nil {
		return cause
	}
	return nil
}

// chainWalker guards a single walk over a cause chain against cycles and against chains
// longer than Settings.MaxChainDepth.
type chainWalker struct {
	seen     map[error]struct{}
	visited  int
	maxDepth int
}

func newChainWalker() *chainWalker {
	return &chainWalker{
		seen:     make(map[error]struct{}),
		maxDepth: settings().MaxChainDepth,
	}
}

// visit records err as the next link, returning the marker to render instead of err
// when the walk must stop there.
func (w *chainWalker) visit(err error) (marker string) {
	if w.visited >= w.maxDepth {
		return truncatedMarker
	}
	w.visited++
	if reflect.ValueOf(err).Comparable() {
		if _, seen := w.seen[err]; seen {
			return circularMarker
		}
		w.seen[err] = struct{}{}
	}
	return ""
}

func writeIndented(builder *strings.Builder, level int, text string) {
	indent := strings.Repeat(indentUnit, level)
	builder.WriteString(indent)
	builder.WriteString(strings.ReplaceAll(text, "\n", "\n"+indent))
}

func renderString(err error) string {
	var builder strings.Builder
	walker := newChainWalker()
	var current any = err
	for depth := 0; !isNil(current); depth++ {
		if depth > 0 {
			builder.WriteByte('\n')
			writeIndented(&builder, depth-1, "Caused by...")
			builder.WriteByte('\n')
		}
		link, ok := current.(error)
		if !ok {
			writeIndented(&builder, depth, fmt.Sprint(current))
			break
		}
		if marker := walker.visit(link); marker != "" {
			writeIndented(&builder, depth, marker)
			break
		}
		writeIndented(&builder, depth, headline(nameOf(link), messageOf(link)))
		if stack := stackOf(link); stack != "" {
			builder.WriteByte('\n')
			writeIndented(&builder, depth+1, stack)
		}
		current = rawCauseOf(link)
	}
	return builder.String()
}

func renderFullStack(err error) string {
	var builder strings.Builder
	walker := newChainWalker()
	walker.visit(err)
	builder.WriteString(stackOf(err))
	for link := causeOf(err); !isNil(link); link = causeOf(link) {
		builder.WriteString("\nCaused by: ")
		if marker := walker.visit(link); marker != "" {
			builder.WriteString(marker)
			break
		}
		if stack := stackOf(link); stack != "" {
			builder.WriteString(stack)
		} else {
			builder.WriteString(messageOf(link))
		}
	}
	return builder.String()
}

// PrintCauseChain summarizes the cause chain of any error, one line per link:
//
//	ChainedError: Outer
//	  ChainedError: Inner
//	    Error: Root
//
// Errors without a name are printed as "Error", errors without a message as
// "(no message)".
func PrintCauseChain(err error) string {
	var lines []string
	walker := newChainWalker()
	for depth := 0; !isNil(err); depth++ {
		indent := strings.Repeat(indentUnit, depth)
		if marker := walker.visit(err); marker != "" {
			lines = append(lines, indent+marker)
			break
		}
		message := messageOf(err)
		if message == "" {
			message = "(no message)"
		}
		lines = append(lines, indent+nameOf(err)+": "+message)
		err = causeOf(err)
	}
	return strings.Join(lines, "\n")
}
