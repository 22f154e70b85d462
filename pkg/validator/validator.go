package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse detalle de un campo que no pasó la validación.
type ErrorResponse struct {
	FailedField string `json:"failed_field"`
	Tag         string `json:"tag"`
	Value       string `json:"value,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var locationLabel = regexp.MustCompile(`^[A-Za-z]{1,2}-\d{2}-\d{2}$`)

func init() {
	// location_label: formato de etiqueta pasillo-bahía-altura (ej. A-01-02).
	_ = validate.RegisterValidation("location_label", func(fl validator.FieldLevel) bool {
		return locationLabel.MatchString(fl.Field().String())
	})
}

// ValidateStruct valida los tags `validate` del struct; nil si todo está bien.
func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "", Tag: "invalid", Value: err.Error()}}
		}
		for _, err := range verrs {
			errors = append(errors, &ErrorResponse{
				FailedField: err.StructNamespace(),
				Tag:         err.Tag(),
				Value:       err.Param(),
			})
		}
	}
	return errors
}
