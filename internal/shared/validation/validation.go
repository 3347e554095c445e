package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	fullNamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	mobilePattern   = regexp.MustCompile(`^\d{10}$`)
)

const (
	TagFullName = "fullname"
	TagMobile   = "mobile"
)

// Messages for the custom tags. Shared with the service layer so handler
// binding and service validation report the same text.
const (
	MsgRequired = "This field is required."
	MsgBlank    = "This field may not be blank."
	MsgEmail    = "Enter a valid email address."
	MsgFullName = "Full name can only contain letters and spaces (no numbers or special characters)."
	MsgMobile   = "Mobile number must be exactly 10 digits."
)

// New returns a validator with json tag names and the custom tags registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	Register(v)
	return v
}

// Register installs the json tag name func and custom tags on v. Dipanggil
// juga untuk engine bawaan gin di apperror.Init.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation(TagFullName, func(fl validator.FieldLevel) bool {
		return fullNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation(TagMobile, func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	})
}

// Message renders a validator.FieldError the way API clients see it.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return MsgEmail
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	case "uuid", "uuid4":
		return "Must be a valid UUID."
	case TagFullName:
		return MsgFullName
	case TagMobile:
		return MsgMobile
	default:
		return "Invalid value."
	}
}
