package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/thanhminhmr/go-exception/exception"

	"github.com/rs/zerolog"
)

type ServerResponse interface {
	Render(writer http.ResponseWriter) error
}

// ServerErrorResponse answers with the structured cause chain of Cause.
type ServerErrorResponse struct {
	Status int
	Cause  error
}

// ErrorResponse answers err with the status StatusOf picks for it.
func ErrorResponse(err error) ServerErrorResponse {
	return ServerErrorResponse{Status: StatusOf(err), Cause: err}
}

// StatusOf returns 400 Bad Request when an *exception.ArgumentError is anywhere in the
// chain of err, and 500 Internal Server Error otherwise.
func StatusOf(err error) int {
	var argumentError *exception.ArgumentError
	if errors.As(err, &argumentError) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (e ServerErrorResponse) Render(writer http.ResponseWriter) error {
	header := writer.Header()
	header.Set("Content-Type", "application/json; charset=utf-8")
	header.Set("X-Content-Type-Options", "nosniff")
	writer.WriteHeader(e.Status)
	return json.NewEncoder(writer).Encode(exception.ToStructured(e.Cause))
}

func (e ServerErrorResponse) Error() string {
	return e.Cause.Error()
}

func (e ServerErrorResponse) Unwrap() error {
	return e.Cause
}

func (e ServerErrorResponse) MarshalZerologObject(event *zerolog.Event) {
	event.AnErr("cause", e.Cause).Int("status", e.Status)
}

type ServerJsonResponse struct {
	Status   int
	Response any
}

func (r ServerJsonResponse) Render(writer http.ResponseWriter) error {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(r.Status)
	return json.NewEncoder(writer).Encode(r.Response)
}
