package client

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

const (
	// MessageTransport is shown when the server could not be reached at all.
	MessageTransport = "Não foi possível conectar ao servidor. Verifique sua conexão e tente novamente."
	// MessageServerFallback is shown when the server rejected a request
	// without saying why.
	MessageServerFallback = "Algo deu errado. Tente novamente mais tarde."
)

// ValidationError lists the fields rejected before any request was sent,
// keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e.Fields[key]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for one field, or "".
func (e *ValidationError) Field(name string) string {
	return e.Fields[name]
}

// TransportError means no HTTP response was received.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError is a 4xx/5xx answer. Message is the server's own text and may
// be empty.
type ServerError struct {
	Status  int
	Code    string
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Unauthorized reports whether the error means the session token is no
// longer accepted. A rejected password is not such an error.
func (e *ServerError) Unauthorized() bool {
	if e.Code == "invalid_credentials" {
		return false
	}
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// UserMessage turns any error from this package into the text to show.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	var terr *TransportError
	if errors.As(err, &terr) {
		return MessageTransport
	}
	var serr *ServerError
	if errors.As(err, &serr) && strings.TrimSpace(serr.Message) != "" {
		return serr.Message
	}
	return MessageServerFallback
}
