package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrMissingCode      = fmt.Errorf("missing authorization code")

	// Upstream API errors
	ErrAPIRequest    = fmt.Errorf("API request failed")
	ErrGroupNotFound = fmt.Errorf("group not found")
)
