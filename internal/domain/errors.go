package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Transport error codes produced locally (the remote side supplies its own).
const (
	ErrCodeTimeout       = "request_timeout"
	ErrCodeCancelled     = "request_cancelled"
	ErrCodeUnavailable   = "service_unavailable"
	ErrCodeInvalidResult = "invalid_response"
	ErrCodeUnknown       = "unknown_error"
)

var (
	ErrZoneNotFound       = errors.New("shipping zone not found")
	ErrNoDraft            = errors.New("no shipping zone is being edited")
	ErrInvalidSetupChoice = errors.New("invalid setup choice")
	ErrInvalidSite        = errors.New("invalid site id")
	ErrZoneNameRequired   = errors.New("shipping zone name is required")
	ErrZoneProtected      = errors.New("the rest of the world zone cannot be deleted")
)

// TransportError is a failed gateway call.
type TransportError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AsTransportError maps any error onto a TransportError so it can be stored
// in a failure action.
func AsTransportError(err error) *TransportError {
	if err == nil {
		return nil
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &TransportError{Code: ErrCodeTimeout, Message: err.Error(), Status: http.StatusGatewayTimeout}
	case errors.Is(err, context.Canceled):
		return &TransportError{Code: ErrCodeCancelled, Message: err.Error()}
	}
	return &TransportError{Code: ErrCodeUnknown, Message: err.Error()}
}
