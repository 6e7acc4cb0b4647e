// Package otp generates the numeric codes sent to users as one-time passcodes.
//
// The randomness source is injected so tests can make issuance deterministic.
package otp
