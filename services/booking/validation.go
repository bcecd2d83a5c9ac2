package booking

import (
	"regexp"
	"strings"

	"diarquia/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Chilean mobile: optional +, country code 56, mobile prefix 9,
	// then exactly eight digits. Matched after stripping whitespace.
	phonePattern = regexp.MustCompile(`^\+?56\s?9\d{8}$`)
)

// ValidateBookingRequest checks a submission before any external call
// is made. The missing-fields check short-circuits the format checks.
// It has no side effects and returns nil when the request is valid.
func ValidateBookingRequest(req models.BookingRequest) error {
	missing := map[string]bool{
		"name":    req.Name == "",
		"email":   req.Email == "",
		"phone":   req.Phone == "",
		"service": req.Service == "",
		"date":    req.Date == "",
		"time":    req.Time == "",
	}
	for _, isMissing := range missing {
		if isMissing {
			return NewMissingFieldsError(missing)
		}
	}

	if !emailPattern.MatchString(req.Email) {
		return NewInvalidEmailError()
	}

	phone := strings.Join(strings.Fields(req.Phone), "")
	if !phonePattern.MatchString(phone) {
		return NewInvalidPhoneError()
	}

	return nil
}
