package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	pkgerrors "github.com/matzehuels/valvepath/pkg/errors"
	"github.com/matzehuels/valvepath/pkg/observability"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// StatusFor maps an error to the HTTP status the server responds with.
func StatusFor(err error) int {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return http.StatusRequestEntityTooLarge
	}
	switch pkgerrors.GetCode(err) {
	case pkgerrors.ErrCodeInvalidFormat, pkgerrors.ErrCodeMissingEntry, pkgerrors.ErrCodeNoCandidates:
		return http.StatusUnprocessableEntity
	case pkgerrors.ErrCodeInvalidInput, pkgerrors.ErrCodeInvalidValve:
		return http.StatusBadRequest
	case pkgerrors.ErrCodeNotFound:
		return http.StatusNotFound
	}
	if errors.Is(err, context.Canceled) {
		return statusClientClosed
	}
	return http.StatusInternalServerError
}

// statusClientClosed is the nginx convention for a request the client abandoned.
const statusClientClosed = 499

func codeFor(err error) string {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return "TOO_LARGE"
	}
	if code := pkgerrors.GetCode(err); code != "" {
		return string(code)
	}
	return string(pkgerrors.ErrCodeInternal)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := codeFor(err)
	observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), code)

	msg := pkgerrors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", GetRequestID(r.Context()), "err", err)
		msg = "internal error"
	}
	writeError(w, status, code, msg)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
