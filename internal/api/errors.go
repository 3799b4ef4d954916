package api

import "fmt"

// RequestError is returned for any non-2xx API response. Message carries
// the backend's "message" field when the body had one.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: request failed (status %d)", e.Status)
}

// AuthError is returned when login or registration is rejected.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// EmptyResultError is returned when question generation succeeded but
// produced no questions. Recoverable: the caller stays on the selection
// step and may retry.
type EmptyResultError struct {
	Message string
}

func (e *EmptyResultError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "no questions generated"
}

// InvalidPayloadError is returned when a response body fails schema
// validation.
type InvalidPayloadError struct {
	Err error
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("api: invalid response payload: %v", e.Err)
}

func (e *InvalidPayloadError) Unwrap() error {
	return e.Err
}
