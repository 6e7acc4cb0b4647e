// Package mail sends email messages.
//
// Use cases depend on the Mail interface; SMTP delivers for real and Log only
// writes the envelope to the logger, for local runs without a mail server.
package mail
