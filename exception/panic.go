package exception

const panicMessage = "panicked"

// Panic panics with an Exception. An Exception is used as is; any other value becomes
// the cause of a new ChainedError whose stack starts at the caller of Panic.
func Panic(value any) {
	if e, ok := value.(Exception); ok {
		panic(e)
	}
	panic(wrapRecovered(value, 1))
}

// Recover converts the value returned by the built-in recover into an Exception. It
// returns nil if nothing was recovered.
//
//	defer func() {
//		if recovered := exception.Recover(recover()); recovered != nil {
//			logger.Error().Err(recovered).Msg("Recovered from panic")
//		}
//	}()
func Recover(recovered any) Exception {
	if recovered == nil {
		return nil
	}
	if e, ok := recovered.(Exception); ok {
		return e
	}
	return wrapRecovered(recovered, 1)
}

func wrapRecovered(value any, skip int) Exception {
	e := &ChainedError{}
	e.init(chainedErrorType, panicMessage, Options{Cause: value}, skip+1)
	return e
}
