package exception

const argumentErrorType = "ArgumentError"

// ArgumentError is raised when a function argument is invalid or missing.
type ArgumentError struct {
	ChainedError
	argumentName *string
}

// NewArgumentError creates an ArgumentError. The optional argumentName identifies the
// offending parameter; only the first one is used.
func NewArgumentError(message string, argumentName ...string) *ArgumentError {
	return newArgumentError(message, argumentName, 1)
}

func newArgumentError(message string, argumentName []string, skip int) *ArgumentError {
	e := &ArgumentError{}
	if len(argumentName) > 0 {
		name := argumentName[0]
		e.argumentName = &name
	}
	e.init(argumentErrorType, message, Options{}, skip+1)
	return e
}

// GetArgumentName returns the name of the offending argument, if one was given.
func (e *ArgumentError) GetArgumentName() (string, bool) {
	if e.argumentName == nil {
		return "", false
	}
	return *e.argumentName, true
}
