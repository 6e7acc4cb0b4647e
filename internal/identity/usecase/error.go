package usecase

const (
	msgEmailRegistered    = "Email already registered"
	msgInvalidCredentials = "invalid email or password"
	msgAuthRequired       = "authentication required"
	msgAccountPending     = "Account not verified. Please verify the OTP sent to your email."
	msgAccountBanned      = "account is banned"
	msgAccountUnknown     = "account status is unrecognized"
)
