package message

const (
	InvalidUser       = "Invalid email/password."
	InvalidInput      = "Invalid input."
	ServerError       = "An unexpected error occurred."
	Unavailable       = "Request cancelled or timed out."
	TooManyRequests   = "Too many requests. Please try again later."
	FmtErrStatusCode  = "rec.Code = %d, want: %d"
	RegisterSuccess   = "Your account was created. We sent a confirmation link to your email."
	UserExists        = "An account with that email already exists."
	ConfirmSuccess    = "Your account was confirmed. You can now login."
	ConfirmFailed     = "We could not confirm your account. Please try again."
	ResetSent         = "A password reset link was sent to your email."
	ResetTokenValid   = "Enter your new password."
	ResetTokenInvalid = "The password reset link is invalid. Please request a new one."
	ResetSuccess      = "Password reset successful. You can now login."
	NoAccountForEmail = "There is no account with that email."
	LoggedIn          = "Logged in."
	NotVerified       = "Please confirm your email before logging in."
	Unauthorized      = "You are not logged in."
)
