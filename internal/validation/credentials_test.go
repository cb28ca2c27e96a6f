package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usermodel "github.com/Varun5711/taskflow/internal/models/user"
)

func validRegister() *usermodel.RegisterRequest {
	return &usermodel.RegisterRequest{
		Name:     "Jo Lee",
		Email:    "Jo@Ex.com ",
		Password: "Abcdef1",
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestValidateRegister_Valid(t *testing.T) {
	req := validRegister()

	require.NoError(t, ValidateRegister(req))
	assert.Equal(t, "jo@ex.com", req.Email)
	assert.Equal(t, "Jo Lee", req.Name)
}

func TestValidateRegister_TrimsName(t *testing.T) {
	req := validRegister()
	req.Name = "   Jo   "

	require.NoError(t, ValidateRegister(req))
	assert.Equal(t, "Jo", req.Name)
}

func TestValidateRegister_NameLength(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty", "", msgNameRequired},
		{"whitespace only", "   ", msgNameRequired},
		{"one char", "J", msgNameTooShort},
		{"fifty one chars", strings.Repeat("a", 51), msgNameTooLong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegister()
			req.Name = tc.input

			fields := fieldsOf(t, ValidateRegister(req))
			assert.Equal(t, tc.wantMsg, fields["name"])
		})
	}
}

func TestValidateRegister_NameBoundaries(t *testing.T) {
	for _, name := range []string{"Jo", strings.Repeat("a", 50), "Zoë"} {
		req := validRegister()
		req.Name = name
		assert.NoError(t, ValidateRegister(req), "name %q", name)
	}
}

func TestValidateRegister_Email(t *testing.T) {
	for _, email := range []string{"", "not-an-email", "a@", "@b.com"} {
		req := validRegister()
		req.Email = email

		fields := fieldsOf(t, ValidateRegister(req))
		assert.Contains(t, fields, "email", "email %q", email)
	}
}

func TestValidateRegister_Password(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{"empty", "", msgPasswordRequired},
		{"too short", "Ab1", msgPasswordTooShort},
		{"too long", "Ab1" + strings.Repeat("x", 98), msgPasswordTooLong},
		{"no uppercase", "abcdef1", msgPasswordWeak},
		{"no lowercase", "ABCDEF1", msgPasswordWeak},
		{"no digit", "Abcdefg", msgPasswordWeak},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegister()
			req.Password = tc.password

			fields := fieldsOf(t, ValidateRegister(req))
			assert.Equal(t, tc.wantMsg, fields["password"])
		})
	}
}

func TestValidateRegister_PasswordBoundaries(t *testing.T) {
	for _, pw := range []string{"Abcde1", "Ab1" + strings.Repeat("x", 97)} {
		req := validRegister()
		req.Password = pw
		assert.NoError(t, ValidateRegister(req), "len %d", len(pw))
	}
}

func TestValidationError_MessageOrder(t *testing.T) {
	req := &usermodel.RegisterRequest{Name: "", Email: "bad", Password: "weak"}

	err := ValidateRegister(req)
	require.Error(t, err)
	assert.Equal(t, msgNameRequired, err.Error())
	assert.Len(t, fieldsOf(t, err), 3)
}

func TestValidateLogin(t *testing.T) {
	req := &usermodel.LoginRequest{Email: "  JO@EX.COM", Password: "anything"}
	require.NoError(t, ValidateLogin(req))
	assert.Equal(t, "jo@ex.com", req.Email)

	fields := fieldsOf(t, ValidateLogin(&usermodel.LoginRequest{Email: "jo@ex.com"}))
	assert.Equal(t, msgPasswordRequired, fields["password"])

	fields = fieldsOf(t, ValidateLogin(&usermodel.LoginRequest{Email: "nope", Password: "x"}))
	assert.Equal(t, msgEmailInvalid, fields["email"])
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jo@ex.com", NormalizeEmail(" Jo@Ex.COM\t"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestValidateLogin_EmailFormat(t *testing.T) {
	fields := fieldsOf(t, ValidateLogin(&usermodel.LoginRequest{Email: "jo@ex", Password: "x"}))
	assert.Equal(t, msgEmailInvalid, fields["email"])

	assert.NoError(t, ValidateLogin(&usermodel.LoginRequest{Email: "a@b.c", Password: "x"}))
}
