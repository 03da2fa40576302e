package utils

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"storeconsole-backend/internal/domain"
)

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// WriteTransportError reports a failed gateway call as 502, or 503/504 when
// the gateway itself gave up.
func WriteTransportError(w http.ResponseWriter, te *domain.TransportError) {
	status := http.StatusBadGateway
	switch te.Code {
	case domain.ErrCodeUnavailable:
		status = http.StatusServiceUnavailable
	case domain.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}
	WriteJSON(w, status, map[string]interface{}{
		"error":          te.Message,
		"code":           te.Code,
		"upstreamStatus": te.Status,
	})
}

// WriteUsecaseError maps usecase errors onto HTTP statuses.
func WriteUsecaseError(w http.ResponseWriter, err error) {
	var te *domain.TransportError
	switch {
	case errors.As(err, &te):
		WriteTransportError(w, te)
	case errors.Is(err, domain.ErrZoneNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNoDraft):
		WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrZoneProtected):
		WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidSite),
		errors.Is(err, domain.ErrInvalidSetupChoice),
		errors.Is(err, domain.ErrZoneNameRequired):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// DecodeJSON reads a request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// DecodeOptionalJSON decodes the body into v, leaving v untouched when the
// body is empty or only whitespace. It does not trust Content-Length, which
// is -1 for chunked requests.
func DecodeOptionalJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}
