package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() map[string]any {
	return map[string]any{
		"name":            "João Silva",
		"email":           "Joao.Teste@Example.com",
		"phone":           "11999887766",
		"password":        "MinhaSenh@123",
		"confirmPassword": "MinhaSenh@123",
		"termsAccepted":   true,
	}
}

func with(key string, value any) map[string]any {
	in := validInput()
	if value == nil {
		delete(in, key)
		return in
	}
	in[key] = value
	return in
}

func TestValidateCreateUserNormalizes(t *testing.T) {
	u, errs := ValidateCreateUser(validInput())
	require.Nil(t, errs)
	assert.Equal(t, "João Silva", u.Name)
	assert.Equal(t, "joao.teste@example.com", u.Email)
	assert.Equal(t, "11999887766", u.Phone)
	assert.Equal(t, "MinhaSenh@123", u.Password)
}

func TestValidateCreateUserTermsMustBeTrue(t *testing.T) {
	for _, v := range []any{false, "true", 1, "yes"} {
		_, errs := ValidateCreateUser(with("termsAccepted", v))
		require.NotNil(t, errs, "value %v", v)
		assert.Equal(t, "you must accept the terms of use", errs["termsAccepted"])
	}

	in := validInput()
	delete(in, "termsAccepted")
	_, errs := ValidateCreateUser(in)
	assert.Contains(t, errs, "termsAccepted")
}

func TestValidateCreateUserTermsReportedAlongsideOtherErrors(t *testing.T) {
	_, errs := ValidateCreateUser(map[string]any{"termsAccepted": false})
	assert.Equal(t, "you must accept the terms of use", errs["termsAccepted"])
	for _, f := range []string{"name", "email", "password", "confirmPassword"} {
		assert.Contains(t, errs, f)
	}
	assert.NotContains(t, errs, "phone")
}

func TestValidateCreateUserPasswordMismatch(t *testing.T) {
	_, errs := ValidateCreateUser(with("confirmPassword", "MinhaSenh@124"))
	require.Len(t, errs, 1)
	assert.Equal(t, "passwords do not match", errs["confirmPassword"])

	// mismatch is still attributed to the confirmation when the password itself is weak
	in := with("password", "weak")
	in["confirmPassword"] = "other"
	_, errs = ValidateCreateUser(in)
	assert.Equal(t, "passwords do not match", errs["confirmPassword"])
	assert.Contains(t, errs, "password")
}

func TestValidateCreateUserName(t *testing.T) {
	cases := map[string]string{
		"J":         "name must have at least 2 characters",
		"R2D2":      "name must contain only letters and spaces",
		"Ana-Maria": "name must contain only letters and spaces",
		"Abcdefghij Abcdefghij Abcdefghij Abcdefghij Abcdefghij": "name must have at most 50 characters",
	}
	for name, want := range cases {
		_, errs := ValidateCreateUser(with("name", name))
		assert.Equal(t, want, errs["name"], name)
	}

	_, errs := ValidateCreateUser(with("name", "Zoë Ångström"))
	assert.Nil(t, errs)

	_, errs = ValidateCreateUser(with("name", 42))
	assert.Equal(t, "name must be a string", errs["name"])
}

func TestValidateCreateUserEmail(t *testing.T) {
	_, errs := ValidateCreateUser(with("email", "not-an-email"))
	assert.Equal(t, "invalid email format", errs["email"])

	domain := strings.Repeat("abcdefghij.", 9) + "com"
	_, errs = ValidateCreateUser(with("email", "user@"+domain))
	assert.Equal(t, "email must have at most 100 characters", errs["email"])
}

func TestValidateCreateUserPhone(t *testing.T) {
	for _, ok := range []string{"", "1199988776", "11999887766"} {
		_, errs := ValidateCreateUser(with("phone", ok))
		assert.Nil(t, errs, ok)
	}
	for _, bad := range []string{"(11) 99999-9999", "119998877", "119998877665", "11 99988776"} {
		_, errs := ValidateCreateUser(with("phone", bad))
		assert.Equal(t, "phone must contain 10 or 11 digits", errs["phone"], bad)
	}
	_, errs := ValidateCreateUser(with("phone", nil))
	assert.Nil(t, errs)
}

func TestValidateCreateUserPasswordRules(t *testing.T) {
	bad := []string{
		"Short1@",       // too short
		"alllower1@",    // no uppercase
		"ALLUPPER1@",    // no lowercase
		"NoDigits@@",    // no digit
		"NoSpecial123",  // no special
		"Hash#Only1abc", // special outside the fixed set
	}
	for _, pw := range bad {
		in := with("password", pw)
		in["confirmPassword"] = pw
		_, errs := ValidateCreateUser(in)
		assert.Contains(t, errs, "password", pw)
		assert.NotContains(t, errs, "confirmPassword", pw)
	}
}

func TestValidateUpdateUser(t *testing.T) {
	short := "A"
	weak := "alllowercase"
	in := &UpdateUserInput{Name: &short, Password: &weak}
	errs := ValidateUpdateUser(in)
	assert.Equal(t, "name must have at least 2 characters", errs["name"])
	assert.Equal(t, "password must contain at least one lowercase letter, one uppercase letter and one number", errs["password"])

	email := "Someone@Example.COM"
	in = &UpdateUserInput{Email: &email}
	require.Nil(t, ValidateUpdateUser(in))
	assert.Equal(t, "someone@example.com", *in.Email)

	assert.Nil(t, ValidateUpdateUser(&UpdateUserInput{}))
}

func TestValidatePhone(t *testing.T) {
	_, ok := ValidatePhone("")
	assert.True(t, ok)
	msg, ok := ValidatePhone("123")
	assert.False(t, ok)
	assert.NotEmpty(t, msg)
}
