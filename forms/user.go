package forms

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// UserForm represents the base form structure for user-related forms
type UserForm struct{}

// LoginForm contains the fields required for account login
type LoginForm struct {
	Username string `form:"username" json:"username" binding:"required,min=3,max=30"`
	Password string `form:"password" json:"password" binding:"required,min=3,max=50"`
}

// RegisterForm contains the fields required for account registration.
// Usernames are restricted to letters and digits, matching the original
// no-spaces-or-special-characters rule.
type RegisterForm struct {
	Username string `form:"username" json:"username" binding:"required,alphanum,min=3,max=30"`
	Password string `form:"password" json:"password" binding:"required,min=3,max=50"`
	Email    string `form:"email" json:"email" binding:"required,email"`
}

// Username validates and returns appropriate error messages for username field validation
func (f UserForm) Username(tag string) (message string) {
	switch tag {
	case "required":
		return "Please enter your username"
	case "alphanum":
		return "Invalid username! Don't use space or special characters!"
	case "min", "max":
		return "Your username should be between 3 and 30 characters"
	default:
		return "Something went wrong, please try again later"
	}
}

// Password validates and returns appropriate error messages for password field validation
func (f UserForm) Password(tag string) (message string) {
	switch tag {
	case "required":
		return "Please enter your password"
	case "min", "max":
		return "Your password should be between 3 and 50 characters"
	default:
		return "Something went wrong, please try again later"
	}
}

// Email validates and returns appropriate error messages for email field validation
func (f UserForm) Email(tag string) (message string) {
	switch tag {
	case "required":
		return "Please enter your email"
	case "min", "max", "email":
		return "Please enter a valid email"
	default:
		return "Something went wrong, please try again later"
	}
}

// Login validates the login form and returns appropriate error messages
func (f UserForm) Login(err error) string {
	return f.message(err)
}

// Register validates the registration form and returns appropriate error messages
func (f UserForm) Register(err error) string {
	return f.message(err)
}

func (f UserForm) message(err error) string {
	switch err.(type) {
	case validator.ValidationErrors:
		if _, ok := err.(*json.UnmarshalTypeError); ok {
			return "Something went wrong, please try again later"
		}

		for _, err := range err.(validator.ValidationErrors) {
			switch err.Field() {
			case "Username":
				return f.Username(err.Tag())
			case "Password":
				return f.Password(err.Tag())
			case "Email":
				return f.Email(err.Tag())
			}
		}

	default:
		return "Invalid request"
	}

	return "Something went wrong, please try again later"
}
