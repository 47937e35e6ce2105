//go:build no_native_cause

package exception

const nativeCauseDisabled = true
