// Package hash provides helpers for hashing and verifying secrets.
//
// Passwords go through a slow, salted hasher (bcrypt or argon2id) selected by
// configuration. Short-lived secrets such as one-time codes use a keyed
// HMAC-SHA256 digest, which is deterministic and cheap to compare.
package hash
