package dto

import "github.com/Ibrahim4Grace/spot/internal/auth/domain"

type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func (in *RegisterInput) Validate() error {
	fields := map[string]string{}
	if in.FirstName == "" {
		fields["first_name"] = "is required"
	}
	if in.LastName == "" {
		fields["last_name"] = "is required"
	}
	validateEmail(fields, in.Email)
	validatePassword(fields, "password", in.Password)
	if in.Role != "" && !domain.Role(in.Role).Valid() {
		fields["role"] = "must be one of admin, user, borrower, guarantor, investor, officer"
	}
	return fieldErrors(fields)
}

// RegisterOutput carries the public user fields plus the email-verification
// token the client needs for the verify-otp step.
type RegisterOutput struct {
	User  UserOutput `json:"user"`
	Token string     `json:"token"`
}
