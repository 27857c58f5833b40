package validator

import (
	"regexp"

	"github.com/Pawan0019/Hotel-Room-Booking/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var (
	validate *val.Validate

	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,18}[0-9]$`)
)

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		return fl.Field().IsZero()
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("phone", func(fl val.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// ValidateStruct runs the struct's validate tags and reports the first violation as an
// InvalidInput failure naming the offending field.
// https://github.com/go-playground/validator
func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)
	if err != nil {
		field, msg := message(err)

		return failure.InvalidInput(field, msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)
	if err != nil {
		_, msg := message(err)

		return failure.InvalidInput("", msg) //nolint:wrapcheck
	}

	return nil
}
