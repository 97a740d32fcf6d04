package dto

type RefreshInput struct {
	RefreshToken string `json:"refresh_token"`
}

func (in *RefreshInput) Validate() error {
	fields := map[string]string{}
	if in.RefreshToken == "" {
		fields["refresh_token"] = "is required"
	}
	return fieldErrors(fields)
}

type RefreshOutput struct {
	AccessToken string `json:"access_token"`
}
