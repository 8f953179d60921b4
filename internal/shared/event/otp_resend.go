package event

const OTPResendDestination string = "otp_resend_requested"
const OTPResendConsumerDelivery string = "otp_resend_requested_delivery"

type OTPResendMessage struct {
	SessionID   string `json:"session_id"`
	Round       int    `json:"round"`
	Destination string `json:"destination"`
	RequestedAt int64  `json:"requested_at"`
}
