package dto

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *LoginInput) Validate() error {
	fields := map[string]string{}
	validateEmail(fields, in.Email)
	if in.Password == "" {
		fields["password"] = "is required"
	}
	return fieldErrors(fields)
}

type LoginOutput struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	User         UserOutput `json:"user"`
}
