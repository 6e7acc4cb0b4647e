// Package clock provides a tiny time abstraction.
//
// Production code depends on the Clocker interface instead of calling
// time.Now() directly, so expiry and retention rules can be tested against a
// Frozen clock.
package clock
