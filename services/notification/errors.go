package notification

import "fmt"

// Error is a messaging-provider failure, partitioned by Code so callers
// can distinguish credential, permission, not-found and transport cases.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("whatsapp: %s", e.Message)
}

func newError(code, msg string) error {
	return &Error{Code: code, Message: msg}
}
