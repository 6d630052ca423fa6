package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoMessages      = errors.New("no chat messages found")
	ErrInvalidInput    = errors.New("invalid input format")
	ErrInvalidJSONText = errors.New("invalid JSON text input")
	ErrInvalidMessage  = errors.New("each message must have sender and message")
	ErrInvalidLimit    = errors.New("limit must be a positive integer")
)

// Client-facing wording of the upload errors.
var publicMessages = map[error]string{
	ErrNoMessages:      "No chat messages found",
	ErrInvalidInput:    "Invalid input format",
	ErrInvalidJSONText: "Invalid JSON text input",
	ErrInvalidMessage:  "Each message must have sender and message",
}

type ErrorResponse struct {
	Error   string `json:"error" description:"Error message"`
	Code    int    `json:"code" description:"HTTP status code"`
	Details string `json:"details,omitempty" description:"Additional error details"`
}

// HandleError writes err as an ErrorResponse with the given status.
func HandleError(resp *restful.Response, err error, status int) {
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	}

	body := ErrorResponse{
		Error:   PublicMessage(err),
		Code:    status,
		Details: http.StatusText(status),
	}
	if writeErr := resp.WriteHeaderAndEntity(status, body); writeErr != nil {
		log.Error().Err(writeErr).Msg("failed to write error response")
	}
}

// PublicMessage returns the text written to clients for err. Upload errors
// keep their capitalised wording, any wrapping context is preserved.
func PublicMessage(err error) string {
	msg := err.Error()
	for sentinel, public := range publicMessages {
		if errors.Is(err, sentinel) && strings.HasPrefix(msg, sentinel.Error()) {
			return public + strings.TrimPrefix(msg, sentinel.Error())
		}
	}
	return msg
}
