package calendar

import "fmt"

// Error is a calendar-provider failure, partitioned by Code so callers
// can distinguish credential, permission and not-found cases.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("google calendar: %s", e.Message)
}

func newError(code, msg string) error {
	return &Error{Code: code, Message: msg}
}
