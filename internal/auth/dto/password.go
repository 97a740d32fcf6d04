package dto

type OtpInput struct {
	Otp string `json:"otp"`
}

func (in *OtpInput) Validate() error {
	fields := map[string]string{}
	if in.Otp == "" {
		fields["otp"] = "is required"
	}
	return fieldErrors(fields)
}

type ForgotPasswordInput struct {
	Email string `json:"email"`
}

func (in *ForgotPasswordInput) Validate() error {
	fields := map[string]string{}
	validateEmail(fields, in.Email)
	return fieldErrors(fields)
}

type ForgotPasswordOutput struct {
	Token string `json:"token"`
}

type UpdatePasswordInput struct {
	NewPassword string `json:"newPassword"`
}

func (in *UpdatePasswordInput) Validate() error {
	fields := map[string]string{}
	validatePassword(fields, "newPassword", in.NewPassword)
	return fieldErrors(fields)
}
