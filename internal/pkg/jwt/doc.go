// Package jwt issues and verifies the HS512 access tokens handed out by the
// identity login endpoint, and carries verified claims through a context.
package jwt
