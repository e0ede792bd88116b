package client

import "fmt"

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// APIError is returned for any non-200 response.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("API %d: %s: %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("API %d: %s", e.StatusCode, e.Message)
}
