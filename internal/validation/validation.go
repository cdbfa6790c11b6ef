package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"gitlab.com/dirk.krummacker/peoplehub/internal/model"
)

// EmailPattern is the accepted format of a contact's email address.
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PhonePattern accepts French phone numbers in national (0X) or international (+33, 0033) form,
// with optional separators.
var PhonePattern = regexp.MustCompile(`^(?:(?:\+|00)33[\s.-]{0,3}(?:\(0\)[\s.-]{0,3})?|0)[1-9](?:(?:[\s.-]?\d{2}){4}|\d{2}(?:[\s.-]?\d{3}){2})$`)

// validate is shared by all checks in this package. It is safe for concurrent use.
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("contactemail", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	_ = validate.RegisterValidation("frphone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	_ = validate.RegisterValidation("contacttag", func(fl validator.FieldLevel) bool {
		return model.Tag(fl.Field().String()).Valid()
	})
}

// ValidEmail returns true if the email address has the form name@domain.tld.
func ValidEmail(email string) bool {
	return EmailPattern.MatchString(email)
}

// ValidPhone returns true for the empty string and for French phone numbers.
func ValidPhone(phone string) bool {
	return phone == "" || PhonePattern.MatchString(phone)
}

// Struct validates a struct according to its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// Var validates a single value against a tag expression such as "contactemail".
func Var(value any, tag string) error {
	return validate.Var(value, tag)
}
