package errors

import "fmt"

type TwitterAPIError struct {
	Code    int
	Message string
}

func NewTwitterAPIError(code int, message string) *TwitterAPIError {
	return &TwitterAPIError{
		Code:    code,
		Message: message,
	}
}

func (tae *TwitterAPIError) Error() string {
	return fmt.Sprintf("API returned error %d: %s", tae.Code, tae.Message)
}
