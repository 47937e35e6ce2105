package exception

import (
	"encoding/json"
	"reflect"
	"sync/atomic"
)

// TimestampLayout formats timestamps as ISO-8601 in UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Structured is implemented by values that provide their own structured form. A cause
// implementing it is embedded in a Record as the result of ToStructured.
type Structured interface {
	ToStructured() any
}

// Record is the structured form of an Exception. Cause is a nested Record when the cause
// is an Exception, the structured form of any other cause that provides one, the raw
// cause value, or nil.
type Record struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Stack     string `json:"stack,omitempty"`
	Cause     any    `json:"cause"`

	argumentName *string
	path         *chainPath
}

// ShallowRecord is the structured form of an error that is not an Exception. Its cause,
// if any, is kept as given and only converted when the record is marshaled.
type ShallowRecord struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
	Cause   any    `json:"cause,omitempty"`

	path *chainPath
}

func (r ShallowRecord) MarshalJSON() ([]byte, error) {
	type plain ShallowRecord
	output := plain(r)
	output.Cause = r.nestedCause()
	return json.Marshal(output)
}

// nestedCause converts the raw cause for marshaling, continuing the walk that produced r.
func (r ShallowRecord) nestedCause() any {
	return structuredCause(r.Cause, r.path, false)
}

// chainPath is the immutable list of links walked so far, newest first. Records keep the
// path that produced them so that converting their causes later, when marshaled, continues
// the same walk instead of starting over.
type chainPath struct {
	link   error
	parent *chainPath
	depth  int
}

// visit returns the path extended by err, or the marker to render instead of err when the
// walk must stop there. A nil path is an empty walk.
func (p *chainPath) visit(err error) (*chainPath, string) {
	depth := 0
	if p != nil {
		depth = p.depth
	}
	if depth >= settings().MaxChainDepth {
		return p, truncatedMarker
	}
	next := &chainPath{parent: p, depth: depth + 1}
	if reflect.ValueOf(err).Comparable() {
		for ancestor := p; ancestor != nil; ancestor = ancestor.parent {
			if ancestor.link == err {
				return p, circularMarker
			}
		}
		next.link = err
	}
	return next, ""
}

func shallowRecord(err error, path *chainPath) ShallowRecord {
	return ShallowRecord{
		Name:    nameOf(err),
		Type:    typeOf(err),
		Message: messageOf(err),
		Stack:   stackOf(err),
		Cause:   rawCauseOf(err),
		path:    path,
	}
}

// ToStructured returns the structured form of any error: the Record of an Exception, the
// own form of a Structured error, or a ShallowRecord otherwise. It returns nil for a nil
// error.
//
// Use it when embedding a foreign error in a log entry or a response; a plain error
// value usually marshals as an empty JSON object.
func ToStructured(err error) any {
	if isNil(err) {
		return nil
	}
	path, _ := (*chainPath)(nil).visit(err)
	switch value := err.(type) {
	case Exception:
		return structuredRecord(value, path)
	case Structured:
		return value.ToStructured()
	}
	return shallowRecord(err, path)
}

// serializer converts foreign causes embedded in a Record. A nil convert embeds their
// ShallowRecord.
type serializer struct {
	convert func(error) any
}

// nativeSerializer is installed at most once.
var nativeSerializer atomic.Pointer[serializer]

// ExtendNativeErrors makes every Record embed foreign causes through their ShallowRecord
// instead of the raw error value. It reports whether this call installed the serializer;
// once one is installed, later calls leave it untouched.
func ExtendNativeErrors() bool {
	return nativeSerializer.CompareAndSwap(nil, &serializer{})
}

// ExtendNativeErrorsWith is ExtendNativeErrors with a custom serializer.
func ExtendNativeErrorsWith(convert func(error) any) bool {
	if convert == nil {
		return false
	}
	return nativeSerializer.CompareAndSwap(nil, &serializer{convert: convert})
}

func (e *ChainedError) ToStructured() Record {
	path, _ := (*chainPath)(nil).visit(e)
	return structuredRecord(e, path)
}

func (e *ChainedError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToStructured())
}

// ToStructured is the Record of the error. Log marshalers also carry the argument name,
// even when the error is nested in another chain.
func (e *ArgumentError) ToStructured() Record {
	path, _ := (*chainPath)(nil).visit(e)
	return structuredRecord(e, path)
}

type argumentNamer interface {
	GetArgumentName() (string, bool)
}

// structuredRecord converts e, the last link of path.
func structuredRecord(e Exception, path *chainPath) Record {
	var stack string
	if trace := e.GetStackTrace(); len(trace) > 0 {
		stack = trace.String()
	}
	record := Record{
		Name:      e.GetName(),
		Type:      e.GetType(),
		Timestamp: e.GetTimestamp().UTC().Format(TimestampLayout),
		Message:   e.GetMessage(),
		Stack:     stack,
		Cause:     structuredCause(e.GetRawCause(), path, true),
		path:      path,
	}
	if namer, ok := e.(argumentNamer); ok {
		if name, ok := namer.GetArgumentName(); ok {
			record.argumentName = &name
		}
	}
	return record
}

// structuredCause converts the cause of the last link of path. With keepForeign, foreign
// errors stay raw unless a serializer is installed; otherwise they become a ShallowRecord.
func structuredCause(cause any, path *chainPath, keepForeign bool) any {
	if isNil(cause) {
		return nil
	}
	err, ok := cause.(error)
	if !ok {
		return cause
	}
	next, marker := path.visit(err)
	if marker != "" {
		return marker
	}
	switch value := err.(type) {
	case Exception:
		return structuredRecord(value, next)
	case Structured:
		return value.ToStructured()
	}
	if keepForeign {
		installed := nativeSerializer.Load()
		if installed == nil {
			return cause
		}
		if installed.convert != nil {
			return installed.convert(err)
		}
	}
	return shallowRecord(err, next)
}
