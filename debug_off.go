//go:build !ofldebug

package oflib

const debugChecks = false
