// Package response holds the JSON envelopes shared by every HTTP handler.
package response

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a minimal success body.
type MessageResponse struct {
	Message string `json:"message"`
}
