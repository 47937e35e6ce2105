package log

import (
	"github.com/rs/zerolog"
	"go.uber.org/dig"
	"go.uber.org/fx/fxevent"
)

// fxLogger is an event logger that logs events to Zerolog.
type fxLogger struct {
	*zerolog.Logger
}

// InitFxLogger returns the logger instance for Zerolog.
func InitFxLogger(logger *zerolog.Logger) fxevent.Logger {
	return fxLogger{Logger: logger}
}

type moduleName string

func (m moduleName) MarshalZerologObject(event *zerolog.Event) {
	if m != "" {
		event.Str("name", string(m))
	}
}

// outcome starts an error event carrying the root cause chain of err, or an event at
// the given level when err is nil.
func (l fxLogger) outcome(err error, level zerolog.Level) *zerolog.Event {
	if err != nil {
		return l.Error().Err(dig.RootCause(err))
	}
	return l.WithLevel(level)
}

// LogEvent logs the given event to the provided Zerolog.
func (l fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		l.Trace().Str("callee", e.FunctionName).Str("caller", e.CallerName).Msg("OnStart hook executing")
	case *fxevent.OnStartExecuted:
		l.outcome(e.Err, zerolog.TraceLevel).
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Dur("runtime", e.Runtime).
			Msg("OnStart hook executed")
	case *fxevent.OnStopExecuting:
		l.Trace().Str("callee", e.FunctionName).Str("caller", e.CallerName).Msg("OnStop hook executing")
	case *fxevent.OnStopExecuted:
		l.outcome(e.Err, zerolog.TraceLevel).
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Dur("runtime", e.Runtime).
			Msg("OnStop hook executed")
	case *fxevent.Supplied:
		l.outcome(e.Err, zerolog.DebugLevel).
			Str("type", e.TypeName).
			EmbedObject(moduleName(e.ModuleName)).
			Msg("Supplied")
	case *fxevent.Provided:
		l.outcome(e.Err, zerolog.DebugLevel).
			Str("constructor", e.ConstructorName).
			Strs("types", e.OutputTypeNames).
			EmbedObject(moduleName(e.ModuleName)).
			Bool("private", e.Private).
			Msg("Provided")
	case *fxevent.Replaced:
		l.outcome(e.Err, zerolog.DebugLevel).
			Strs("types", e.OutputTypeNames).
			EmbedObject(moduleName(e.ModuleName)).
			Msg("Replaced")
	case *fxevent.Decorated:
		l.outcome(e.Err, zerolog.DebugLevel).
			Str("decorator", e.DecoratorName).
			Strs("types", e.OutputTypeNames).
			EmbedObject(moduleName(e.ModuleName)).
			Msg("Decorated")
	case *fxevent.Run:
		l.outcome(e.Err, zerolog.TraceLevel).
			Str("name", e.Name).
			Str("kind", e.Kind).
			EmbedObject(moduleName(e.ModuleName)).
			Dur("runtime", e.Runtime).
			Msg("Run")
	case *fxevent.Invoking:
		// Do not log stack as it will make logs hard to read.
		l.Debug().Str("function", e.FunctionName).EmbedObject(moduleName(e.ModuleName)).Msg("Invoking")
	case *fxevent.Invoked:
		if e.Err != nil {
			l.outcome(e.Err, zerolog.ErrorLevel).
				Str("function", e.FunctionName).
				EmbedObject(moduleName(e.ModuleName)).
				Str("stack", e.Trace).
				Msg("Invoke failed")
		}
	case *fxevent.Stopping:
		l.Info().Stringer("signal", e.Signal).Msg("Received signal")
	case *fxevent.Stopped:
		if e.Err != nil {
			l.outcome(e.Err, zerolog.ErrorLevel).Msg("Stop failed")
		}
	case *fxevent.RollingBack:
		l.Error().Err(e.StartErr).Msg("Start failed, rolling back")
	case *fxevent.RolledBack:
		if e.Err != nil {
			l.outcome(e.Err, zerolog.ErrorLevel).Msg("Rollback failed")
		}
	case *fxevent.Started:
		l.outcome(e.Err, zerolog.InfoLevel).Msg("Started")
	case *fxevent.LoggerInitialized:
		l.outcome(e.Err, zerolog.InfoLevel).Str("function", e.ConstructorName).Msg("Initialized logger")
	}
}
