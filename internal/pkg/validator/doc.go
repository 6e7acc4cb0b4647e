// Package validator provides a small validation abstraction for request and
// domain structs.
//
// Business code depends on a one-method Validate interface so validation can be
// shared and tested consistently. The go-playground/validator v10
// implementation lives in this package and reports every failing rule per
// field.
package validator
