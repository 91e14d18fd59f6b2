package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrAuthExpired        = errors.New("authentication expired")
	ErrAuthRetryExhausted = errors.New("re-authentication retries exhausted")
	ErrLoginIncomplete    = errors.New("login did not establish a session")
	ErrLoginFailed        = errors.New("login failed")
	ErrUnexpectedResponse = errors.New("unexpected response")
	ErrTransport          = errors.New("transport error")
	ErrProtocol           = errors.New("server reported an error")
	ErrSecretNotFound     = errors.New("secret not found")
)

// AuthExpiredCode is the ErrorCode the server sends when the session cookie
// is no longer accepted.
const AuthExpiredCode = "4000"

type TransportError struct {
	StatusCode int
	Status     string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("server returned %s", e.Status)
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

type ProtocolError struct {
	Code    string
	Message string
}

func (e *ProtocolError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (code %s)", e.Message, e.Code)
}

func (e *ProtocolError) Is(target error) bool {
	return target == ErrProtocol
}
