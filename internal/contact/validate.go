package contact

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailPattern is the format check applied to non-empty email fields.
var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// Inline messages shown next to invalid fields.
const (
	MsgFirstNameRequired = "First name is required"
	MsgLastNameRequired  = "Last name is required"
	MsgInvalidEmail      = "Invalid email address"
)

// ValidationErrors maps a field key (see Fields) to its inline message.
type ValidationErrors map[string]string

// Error lists the messages in field order.
func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return fieldIndex(keys[i]) < fieldIndex(keys[j]) })
	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = k + ": " + v[k]
	}
	return "contact: " + strings.Join(msgs, "; ")
}

func fieldIndex(key string) int {
	for i, f := range Fields {
		if f == key {
			return i
		}
	}
	return len(Fields)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("contactemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the trimmed record: first and last name are required and
// non-empty email fields must look like an address. It returns nil when the
// record may be encoded.
func Validate(r Record) ValidationErrors {
	err := validate.Struct(Normalize(r))
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{"": err.Error()}
	}

	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = message(fe.Field(), fe.Tag())
	}
	return out
}

func message(field, tag string) string {
	switch {
	case field == FieldFirstName && tag == "required":
		return MsgFirstNameRequired
	case field == FieldLastName && tag == "required":
		return MsgLastNameRequired
	case tag == "contactemail":
		return MsgInvalidEmail
	}
	return "Invalid value"
}
