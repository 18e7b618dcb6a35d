package fetch

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/SJellen/fetch-rewards/internal/domain"
)

// maxMessageBytes tope del mensaje del servidor. El corte respeta los límites de runa.
const maxMessageBytes = 512

// StatusError respuesta no-2xx del catálogo. Message viene del cuerpo {"message": "..."}
// o, si no es JSON, del texto plano recortado.
type StatusError struct {
	StatusCode int
	Message    string
}

func newStatusError(status int, body []byte) *StatusError {
	var payload struct {
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.Message
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if len(msg) > maxMessageBytes {
		n := maxMessageBytes
		for n > 0 && !utf8.RuneStart(msg[n]) {
			n--
		}
		msg = msg[:n]
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &StatusError{StatusCode: status, Message: msg}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap un 401 se traduce a domain.ErrUnauthorized.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return domain.ErrUnauthorized
	}
	return nil
}

// RequestError error final de una petición lógica, tras agotar reintentos o por cancelación.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Attempts   int
	RequestID  string
	Err        error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("fetch: %s %s falló tras %d intento(s): %v", e.Method, e.URL, e.Attempts, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Message mensaje del servidor si la última respuesta fue no-2xx; si no, el texto del error.
func (e *RequestError) Message() string {
	var se *StatusError
	if errors.As(e.Err, &se) {
		return se.Message
	}
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
