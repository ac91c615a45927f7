package validator

import (
	"math"

	"github.com/go-playground/validator/v10"
)

func RegisterCustomValidations(validate *validator.Validate) {
	_ = validate.RegisterValidation("lat", validateLat)
	_ = validate.RegisterValidation("lng", validateLng)
}

func validateLat(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return !math.IsNaN(lat) && lat >= -90.0 && lat <= 90.0
}

func validateLng(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return !math.IsNaN(lng) && lng >= -180.0 && lng <= 180.0
}
