//go:build !no_zerolog

package exception

import "github.com/rs/zerolog"

func (e *ChainedError) MarshalZerologObject(event *zerolog.Event) {
	e.ToStructured().MarshalZerologObject(event)
}

func (e *ArgumentError) MarshalZerologObject(event *zerolog.Event) {
	e.ToStructured().MarshalZerologObject(event)
}

func (r Record) MarshalZerologObject(event *zerolog.Event) {
	event.Str("name", r.Name).
		Str("type", r.Type).
		Str("timestamp", r.Timestamp).
		Str("message", r.Message)
	if r.argumentName != nil {
		event.Str("argument_name", *r.argumentName)
	}
	if r.Stack != "" {
		event.Str("stack", r.Stack)
	}
	// a raw foreign cause is converted on the walk that produced the record
	marshalZerologCause(event, structuredCause(r.Cause, r.path, false))
}

func (r ShallowRecord) MarshalZerologObject(event *zerolog.Event) {
	event.Str("name", r.Name).
		Str("type", r.Type).
		Str("message", r.Message)
	if r.Stack != "" {
		event.Str("stack", r.Stack)
	}
	if r.Cause != nil {
		marshalZerologCause(event, r.nestedCause())
	}
}

func marshalZerologCause(event *zerolog.Event, cause any) {
	switch value := cause.(type) {
	case zerolog.LogObjectMarshaler:
		event.Object("cause", value)
	case error:
		event.Str("cause", value.Error())
	default:
		event.Any("cause", value)
	}
}
