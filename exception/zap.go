//go:build !no_zap

package exception

import "go.uber.org/zap/zapcore"

func (e *ChainedError) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	return e.ToStructured().MarshalLogObject(encoder)
}

func (e *ArgumentError) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	return e.ToStructured().MarshalLogObject(encoder)
}

func (r Record) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("name", r.Name)
	encoder.AddString("type", r.Type)
	encoder.AddString("timestamp", r.Timestamp)
	encoder.AddString("message", r.Message)
	if r.argumentName != nil {
		encoder.AddString("argument_name", *r.argumentName)
	}
	if r.Stack != "" {
		encoder.AddString("stack", r.Stack)
	}
	return marshalZapCause(encoder, structuredCause(r.Cause, r.path, false))
}

func (r ShallowRecord) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("name", r.Name)
	encoder.AddString("type", r.Type)
	encoder.AddString("message", r.Message)
	if r.Stack != "" {
		encoder.AddString("stack", r.Stack)
	}
	if r.Cause == nil {
		return nil
	}
	return marshalZapCause(encoder, r.nestedCause())
}

func marshalZapCause(encoder zapcore.ObjectEncoder, cause any) error {
	switch value := cause.(type) {
	case zapcore.ObjectMarshaler:
		return encoder.AddObject("cause", value)
	case error:
		encoder.AddString("cause", value.Error())
		return nil
	default:
		return encoder.AddReflected("cause", value)
	}
}
