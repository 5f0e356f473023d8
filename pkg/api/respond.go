package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/bulletins/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status and body. Errors without a code are
// reported as internal errors without leaking their text.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
		msg = "internal error"
	}
	writeJSON(w, errors.HTTPStatus(code), errorBody{Code: code, Message: msg})
}

// fail writes err and logs it when it is a server-side failure.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.HTTPStatus(errors.GetCode(err)) >= 500 {
		s.logger.Error("request error", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeError(w, err)
}

// decode reads a JSON request body into v. Coded errors raised while
// decoding (such as unknown field types) keep their code.
func decode(r *http.Request, v any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "request body is required")
	}
	if err := json.Unmarshal(body, v); err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

// readBody returns the raw request body, which may be empty.
func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(body) > maxBodyBytes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", maxBodyBytes)
	}
	return body, nil
}

// versionParam parses {n}; "current" and "0" select the current version.
func versionParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "n")
	if raw == "current" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid version number %q", raw)
	}
	return n, nil
}
