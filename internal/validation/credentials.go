package validation

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	usermodel "github.com/Varun5711/taskflow/internal/models/user"
)

const (
	MinNameLength     = 2
	MaxNameLength     = 50
	MinPasswordLength = 6
	MaxPasswordLength = 100
)

const (
	msgNameRequired     = "Name is required"
	msgNameTooShort     = "Name must be at least 2 characters"
	msgNameTooLong      = "Name must be less than 50 characters"
	msgEmailRequired    = "Email is required"
	msgEmailInvalid     = "Invalid email format"
	msgPasswordRequired = "Password is required"
	msgPasswordTooShort = "Password must be at least 6 characters"
	msgPasswordTooLong  = "Password must be less than 100 characters"
	msgPasswordWeak     = "Password must contain at least one uppercase letter, one lowercase letter, and one number"
)

// fieldOrder decides which message ValidationError.Error reports first.
var fieldOrder = []string{"name", "email", "password"}

// ValidationError carries one message per offending request field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for _, f := range fieldOrder {
		if msg, ok := e.Fields[f]; ok {
			return msg
		}
	}
	for _, msg := range e.Fields {
		return msg
	}
	return "validation failed"
}

// NormalizeEmail is the canonical form under which emails are stored and
// looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegister normalizes req in place and checks it.
func ValidateRegister(req *usermodel.RegisterRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = NormalizeEmail(req.Email)

	return toValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required.Error(msgNameRequired),
			validation.RuneLength(MinNameLength, 0).Error(msgNameTooShort),
			validation.RuneLength(0, MaxNameLength).Error(msgNameTooLong),
		),
		validation.Field(&req.Email, emailRules()...),
		validation.Field(&req.Password,
			validation.Required.Error(msgPasswordRequired),
			validation.RuneLength(MinPasswordLength, 0).Error(msgPasswordTooShort),
			validation.RuneLength(0, MaxPasswordLength).Error(msgPasswordTooLong),
			validation.By(passwordComplexity),
		),
	))
}

// ValidateLogin normalizes req in place and checks it. Password strength is
// not re-checked on login.
func ValidateLogin(req *usermodel.LoginRequest) error {
	req.Email = NormalizeEmail(req.Email)

	return toValidationError(validation.ValidateStruct(req,
		validation.Field(&req.Email, emailRules()...),
		validation.Field(&req.Password, validation.Required.Error(msgPasswordRequired)),
	))
}

func emailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error(msgEmailRequired),
		is.Email.Error(msgEmailInvalid),
	}
}

func passwordComplexity(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return errors.New(msgPasswordWeak)
	}
	return nil
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}

	fields := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		if fieldErr != nil {
			fields[field] = fieldErr.Error()
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
