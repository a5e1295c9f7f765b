// Package common provides shared utilities for fincatch
package common

import "fmt"

// APIError represents an upstream provider error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d at %s: %s", e.StatusCode, e.Endpoint, e.Message)
}
