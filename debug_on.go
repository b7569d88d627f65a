//go:build ofldebug

package oflib

// panic on a length disagreement instead of returning an error
const debugChecks = true
