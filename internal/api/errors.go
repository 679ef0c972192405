package api

import "fmt"

// ConnectivityError indicates the request never produced an application
// response: not connected, connection lost, or timed out. Retryable
// without touching credentials.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("connectivity: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// AuthorizationError indicates the backend rejected the credential
// (401/403, at the HTTP layer or signaled in the error payload). The
// session token is no longer usable.
type AuthorizationError struct {
	StatusCode int
	Err        error
}

func (e *AuthorizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authorization rejected (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("authorization rejected (status %d)", e.StatusCode)
}

func (e *AuthorizationError) Unwrap() error { return e.Err }

// ApplicationError is an explicit success:false response from the
// backend. Message and Code come straight from the error payload.
type ApplicationError struct {
	Message string
	Code    string
}

func (e *ApplicationError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %s: %s", e.Code, e.Message)
	}
	return "backend error: " + e.Message
}

// DecodingError indicates the response body did not match the expected
// contract. Never treated as proof of an invalid session.
type DecodingError struct {
	Body []byte
	Err  error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }
