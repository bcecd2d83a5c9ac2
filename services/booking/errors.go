package booking

import "fmt"

// ValidationError is returned when a booking submission fails the
// pre-flight field checks. MissingFields is populated only for the
// missing-fields variant.
type ValidationError struct {
	Code          string
	Message       string
	MissingFields map[string]bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewMissingFieldsError(missing map[string]bool) error {
	return &ValidationError{
		Code:          "missingFields",
		Message:       "Todos los campos son obligatorios",
		MissingFields: missing,
	}
}

func NewInvalidEmailError() error {
	return &ValidationError{
		Code:    "invalidEmailFormat",
		Message: "El formato del email no es válido",
	}
}

func NewInvalidPhoneError() error {
	return &ValidationError{
		Code:    "invalidPhoneFormat",
		Message: "El formato del teléfono debe ser +56 9XXXXXXXX",
	}
}
