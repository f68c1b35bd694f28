package utils

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// The coordinate range rules are registered on gin's binding engine so the
// request DTOs can enforce WGS-84 bounds with `binding:"latitude_wgs84"` tags
// during ShouldBindJSON.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("latitude_wgs84", validateLatitude)
		v.RegisterValidation("longitude_wgs84", validateLongitude)
	}
}

// ValidationErrors flattens validator errors into a field→message map for
// API responses.
func ValidationErrors(err error) map[string]string {
	details := make(map[string]string)
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = "failed on '" + fieldErr.Tag() + "' validation"
		}
	}
	return details
}

func validateLatitude(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90 && lat <= 90
}

func validateLongitude(fl validator.FieldLevel) bool {
	lon := fl.Field().Float()
	return lon >= -180 && lon <= 180
}
