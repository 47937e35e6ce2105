package exception

const version = "1.0.0"

// Version returns the semantic version of this library.
func Version() string {
	return version
}
