// Package api defines the JSON request and response bodies shared by the HTTP handlers.
package api

// ErrorResponse is returned on every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a signed bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}
