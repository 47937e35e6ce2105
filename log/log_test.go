package log_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/thanhminhmr/go-exception/exception"
	"github.com/thanhminhmr/go-exception/log"

	"github.com/rs/zerolog"
	"go.uber.org/fx/fxevent"
	"go.uber.org/fx/fxtest"
)

func decodeLine(t *testing.T, buffer *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buffer.Bytes(), &entry); err != nil {
		t.Fatalf("log entry is not json: %v\n%s", err, buffer.String())
	}
	return entry
}

func TestErrLogsForeignChain(t *testing.T) {
	var buffer bytes.Buffer
	logger := zerolog.New(&buffer)
	logger.Error().Err(fmt.Errorf("request failed: %w", exception.New("inner", errors.New("root")))).Msg("failed")

	entry := decodeLine(t, &buffer)
	record, ok := entry[zerolog.ErrorFieldName].(map[string]any)
	if !ok {
		t.Fatalf("error field is %T, want an object: %v", entry[zerolog.ErrorFieldName], entry)
	}
	if record["name"] != "Error" || record["message"] != "request failed: ChainedError: inner" {
		t.Fatalf("unexpected record %v", record)
	}
	cause, ok := record["cause"].(map[string]any)
	if !ok || cause["name"] != "ChainedError" || cause["message"] != "inner" {
		t.Fatalf("unexpected cause %v", record["cause"])
	}
}

func TestMarshalError(t *testing.T) {
	if log.MarshalError(nil) != nil {
		t.Fatalf("MarshalError(nil) should be nil")
	}
	if _, ok := log.MarshalError(exception.New("outer")).(exception.Record); !ok {
		t.Fatalf("MarshalError() of an Exception should be its Record")
	}
}

func TestConsoleLoggerStopsContext(t *testing.T) {
	lifecycle := fxtest.NewLifecycle(t)
	logger, ctx := log.ConsoleLogger(lifecycle)
	if logger == nil || zerolog.Ctx(ctx) != logger {
		t.Fatalf("context does not carry the logger")
	}
	lifecycle.RequireStart()
	if ctx.Err() != nil {
		t.Fatalf("context canceled before stop")
	}
	lifecycle.RequireStop()
	if ctx.Err() == nil {
		t.Fatalf("context not canceled after stop")
	}
}

func TestFxLoggerLogsRootCause(t *testing.T) {
	var buffer bytes.Buffer
	logger := zerolog.New(&buffer)
	log.InitFxLogger(&logger).LogEvent(&fxevent.Invoked{
		FunctionName: "main.run",
		Err:          exception.New("run failed", errors.New("port in use")),
	})

	entry := decodeLine(t, &buffer)
	if entry[zerolog.MessageFieldName] != "Invoke failed" || entry["function"] != "main.run" {
		t.Fatalf("unexpected entry %v", entry)
	}
	record, ok := entry[zerolog.ErrorFieldName].(map[string]any)
	if !ok || record["message"] != "run failed" {
		t.Fatalf("unexpected error %v", entry[zerolog.ErrorFieldName])
	}
}

func TestFxLoggerSkipsSuccessfulInvoke(t *testing.T) {
	var buffer bytes.Buffer
	logger := zerolog.New(&buffer)
	log.InitFxLogger(&logger).LogEvent(&fxevent.Invoked{FunctionName: "main.run"})
	if buffer.Len() != 0 {
		t.Fatalf("unexpected output %s", buffer.String())
	}
}

type relinkError struct {
	next error
}

func (e *relinkError) Error() string { return "relink" }

func (e *relinkError) Unwrap() error { return e.next }

func TestErrLogsCyclicChain(t *testing.T) {
	foreign := &relinkError{}
	foreign.next = exception.New("inner", foreign)

	var buffer bytes.Buffer
	logger := zerolog.New(&buffer)
	logger.Error().Err(foreign).Msg("failed")

	entry := decodeLine(t, &buffer)
	record, _ := entry[zerolog.ErrorFieldName].(map[string]any)
	inner, ok := record["cause"].(map[string]any)
	if !ok || inner["message"] != "inner" {
		t.Fatalf("unexpected cause %v", record["cause"])
	}
	if got := inner["cause"]; got != "<circular cause>" {
		t.Fatalf("innermost cause=%v want the circular marker", got)
	}
}
