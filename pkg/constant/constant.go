package constant

import "time"

// OTP policy.
const (
	OtpLength = 6
	OtpWindow = 15 * time.Minute
)

// DefaultBcryptCost is used when BCRYPT_SALT_ROUNDS is not set.
const DefaultBcryptCost = 12

// Fiber context locals keys set by the access guard.
const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
	CtxToken    = "token"
)

// Response messages.
const (
	MsgVerifyOtpSent   = "OTP sent for verification, please check your email"
	MsgEmailVerified   = "Email verified successfully"
	MsgOtpVerified     = "Otp verified successfully"
	MsgLoginSuccessful = "Login successful"
	MsgEmailSent       = "Email sent successfully"
	MsgPasswordUpdated = "Password updated successfully"
	MsgTokenRefreshed  = "Access token refreshed successfully"
)
