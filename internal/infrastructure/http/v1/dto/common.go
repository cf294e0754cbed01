// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthResponse is returned by health probes.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
