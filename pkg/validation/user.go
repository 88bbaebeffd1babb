package validation

import (
	"strings"

	"github.com/oksasatya/workspace-hub/internal/domain/entity"
)

// CreateUserInput is the registration payload after type coercion.
type CreateUserInput struct {
	Name            string `json:"name" validate:"required,min=2,max=50,personname"`
	Email           string `json:"email" validate:"required,email,max=100"`
	Phone           string `json:"phone" validate:"omitempty,phonedigits"`
	Password        string `json:"password" validate:"required,min=8,max=100,strongpwd"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	TermsAccepted   bool   `json:"termsAccepted" validate:"eq=true"`
}

var createUserMessages = map[string]string{
	"name.required":            "name is required",
	"name.min":                 "name must have at least 2 characters",
	"name.max":                 "name must have at most 50 characters",
	"name.personname":          "name must contain only letters and spaces",
	"email.required":           "email is required",
	"email.email":              "invalid email format",
	"email.max":                "email must have at most 100 characters",
	"phone.phonedigits":        "phone must contain 10 or 11 digits",
	"password.required":        "password is required",
	"password.min":             "password must have at least 8 characters",
	"password.max":             "password must have at most 100 characters",
	"password.strongpwd":       "password must contain at least: 1 lowercase letter, 1 uppercase letter, 1 number and 1 special character (" + PasswordSpecials + ")",
	"confirmPassword.required": "password confirmation is required",
	"confirmPassword.eqfield":  "passwords do not match",
	"termsAccepted.eq":         "you must accept the terms of use",
}

// ValidateCreateUser checks an untyped registration record. It returns the
// normalized user, or a field -> message map holding the first failure of
// every invalid field. It performs no I/O.
func ValidateCreateUser(input map[string]any) (entity.NewUser, map[string]string) {
	errs := map[string]string{}
	in := CreateUserInput{
		Name:            stringField(input, "name", errs),
		Email:           stringField(input, "email", errs),
		Phone:           stringField(input, "phone", errs),
		Password:        stringField(input, "password", errs),
		ConfirmPassword: stringField(input, "confirmPassword", errs),
	}
	// anything but a literal boolean true fails the eq=true rule
	if v, ok := input["termsAccepted"].(bool); ok {
		in.TermsAccepted = v
	}

	for field, msg := range StructWith(in, createUserMessages) {
		if _, seen := errs[field]; !seen {
			errs[field] = msg
		}
	}
	if len(errs) > 0 {
		return entity.NewUser{}, errs
	}

	return entity.NewUser{
		Name:     in.Name,
		Email:    strings.ToLower(in.Email),
		Phone:    in.Phone,
		Password: in.Password,
	}, nil
}

// stringField reads key from input. Missing and null values read as "";
// other non-string values are reported on the field.
func stringField(input map[string]any, key string, errs map[string]string) string {
	raw, ok := input[key]
	if !ok || raw == nil {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		errs[key] = key + " must be a string"
		return ""
	}
	return s
}

// UpdateUserInput is the partial update payload. Nil fields are not changed.
type UpdateUserInput struct {
	Name            *string        `json:"name" validate:"omitempty,min=2,max=255"`
	Email           *string        `json:"email" validate:"omitempty,email,max=320"`
	Password        *string        `json:"password" validate:"omitempty,min=8,max=100,mixedpwd"`
	IsActive        *bool          `json:"isActive"`
	ProfileMetadata map[string]any `json:"profileMetadata"`
}

var updateUserMessages = map[string]string{
	"name.min":          "name must have at least 2 characters",
	"name.max":          "name must have at most 255 characters",
	"email.email":       "invalid email",
	"email.max":         "email must have at most 320 characters",
	"password.min":      "password must have at least 8 characters",
	"password.mixedpwd": "password must contain at least one lowercase letter, one uppercase letter and one number",
}

// ValidateUpdateUser checks a partial update and lowercases a provided email.
func ValidateUpdateUser(in *UpdateUserInput) map[string]string {
	if errs := StructWith(in, updateUserMessages); errs != nil {
		return errs
	}
	if in.Email != nil {
		lower := strings.ToLower(*in.Email)
		in.Email = &lower
	}
	return nil
}

// ValidatePhone applies the registration phone rule to a single value.
func ValidatePhone(phone string) (string, bool) {
	if phone == "" || phoneDigitsRe.MatchString(phone) {
		return "", true
	}
	return createUserMessages["phone.phonedigits"], false
}
