package dto

import "github.com/Yun12-yu/smart-taxis/pkg/validator"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func ValidateRegister(v *validator.Validator, r *RegisterRequest) {
	v.Check(validator.NotBlank(r.Username), "username", "must be provided")
	v.Check(validator.MinChars(r.Username, 3), "username", "must be at least 3 characters")
	v.Check(validator.MaxChars(r.Username, 50), "username", "must not be more than 50 characters")
	v.Check(validator.NotBlank(r.Email), "email", "must be provided")
	v.Check(validator.Matches(r.Email, validator.EmailRX), "email", "must be a valid email address")
	v.Check(validator.NotBlank(r.Password), "password", "must be provided")
	v.Check(validator.MinChars(r.Password, 8), "password", "must be at least 8 characters")
	v.Check(validator.MaxChars(r.Password, 72), "password", "must not be more than 72 characters")
}

// LoginRequest accepts either the username or the email in the login field.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func ValidateLogin(v *validator.Validator, r *LoginRequest) {
	v.Check(validator.NotBlank(r.Login), "login", "must be provided")
	v.Check(validator.NotBlank(r.Password), "password", "must be provided")
}
