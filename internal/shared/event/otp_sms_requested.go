package event

import "time"

const OTPSMSRequestedDestination string = "otp.sms_requested"

// OTPSMSRequestedMessage asks an SMS gateway consumer to text a code.
type OTPSMSRequestedMessage struct {
	UserID    int64     `json:"user_id,string"`
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}
