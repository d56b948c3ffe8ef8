package api

import "fmt"

// RequestError is a transport-level failure: the request produced no HTTP
// response at all. Timeout marks requests aborted by their deadline;
// everything else (DNS, connection refused) sets Network.
type RequestError struct {
	Timeout bool
	Network bool
	Err     error
}

func (e *RequestError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("request timed out: %v", e.Err)
	}
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// APIError is a received non-2xx response. Message carries the server's
// error payload when one was returned.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}
