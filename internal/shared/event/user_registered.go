package event

const UserRegisteredDestination string = "identity.user_registered"
const UserRegisteredConsumerOTP string = "identity.user_registered.otp"

// UserRegisteredMessage is published after signup for an account that still
// needs its email verified.
type UserRegisteredMessage struct {
	UserID int64  `json:"user_id,string"`
	Email  string `json:"email"`
}
