package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)
	RegisterCustomValidations(validate)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// Validate is ValidateStruct with the first failing field reported as an
// e.ValidationError named after its JSON key.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return e.NewValidation(fe.Field(), "failed "+fe.Tag()+" rule")
	}
	return e.NewValidation("body", err.Error())
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}
