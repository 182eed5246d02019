package server

import (
	"encoding/json"
	"net/http"
)

// Response describes an HTTP response before it is written: status code,
// extra headers and a JSON-serializable body. Endpoints construct responses
// only through the builders below so every endpoint produces a structurally
// uniform result.
type Response struct {
	Status int
	Header http.Header
	Body   any
}

// errorBody is the wire shape for failures. NeedsAuth tells the page to show
// the sign-in prompt.
type errorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	NeedsAuth bool   `json:"needsAuth,omitempty"`
}

// NewResponse creates a response descriptor with optional extra headers
// (used for Cache-Control and Set-Cookie).
func NewResponse(status int, body any, headers map[string]string) Response {
	header := http.Header{}
	for key, value := range headers {
		header.Set(key, value)
	}
	return Response{Status: status, Header: header, Body: body}
}

// AuthError is the canonical response when no session cookie is present.
func AuthError() Response {
	return NewResponse(http.StatusUnauthorized, errorBody{
		Error:     "Not authenticated",
		NeedsAuth: true,
	}, nil)
}

// TokenExpired is the canonical response when the upstream rejects the
// bearer token. The wire payload is deliberately interchangeable with
// [AuthError]: the remediation is identical either way.
func TokenExpired() Response {
	return NewResponse(http.StatusUnauthorized, errorBody{
		Error:     "Token expired or invalid",
		NeedsAuth: true,
	}, nil)
}

// ServerError shapes an operator-facing 500 with the failure detail embedded.
func ServerError(message string, err error) Response {
	body := errorBody{Error: message}
	if err != nil {
		body.Message = err.Error()
	}
	return NewResponse(http.StatusInternalServerError, body, nil)
}

// MethodNotAllowed rejects requests with an unsupported HTTP method.
func MethodNotAllowed() Response {
	return NewResponse(http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"}, nil)
}

// Write serializes the response body as JSON onto w, applying the extra
// headers before the status line.
func (resp Response) Write(w http.ResponseWriter) error {
	for key, values := range resp.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)

	return json.NewEncoder(w).Encode(resp.Body)
}
