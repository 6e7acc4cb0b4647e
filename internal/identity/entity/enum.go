package entity

import (
	"errors"
)

var (
	ErrUserStatusUnknown = errors.New("identity: user status is unknown")
	ErrUserStatusPending = errors.New("identity: user status is pending verification")
	ErrUserStatusBanned  = errors.New("identity: user status is banned")
)

type UserStatus int16

const (
	// UserStatusUnknown is mean status is not known / not set.
	UserStatusUnknown UserStatus = 0

	// UserStatusPending mean user signed up but has not verified an OTP yet.
	UserStatusPending UserStatus = 1

	// UserStatusActive mean user is verified and allowed to use the app.
	UserStatusActive UserStatus = 2

	// UserStatusBanned mean user is blocked from using the app (policy/abuse/etc).
	UserStatusBanned UserStatus = 3
)

func (us UserStatus) String() string {
	switch us {
	case UserStatusActive:
		return "Active"
	case UserStatusBanned:
		return "Banned"
	case UserStatusPending:
		return "Pending"
	default:
		return "Unknown"
	}
}

func (us UserStatus) Ensure() UserStatus {
	switch us {
	case UserStatusPending, UserStatusActive, UserStatusBanned:
		return us
	default:
		return UserStatusUnknown
	}
}

// Err maps a status that may not sign in to its sentinel error.
func (us UserStatus) Err() error {
	switch us.Ensure() {
	case UserStatusActive:
		return nil
	case UserStatusPending:
		return ErrUserStatusPending
	case UserStatusBanned:
		return ErrUserStatusBanned
	default:
		return ErrUserStatusUnknown
	}
}
