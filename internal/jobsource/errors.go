package jobsource

import "fmt"

// FetchError represents a failure of the primary job-list request. It is
// retryable and surfaced to the user.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// PageError represents a failure of one of the best-effort pagination
// requests. It is logged and ignored, never surfaced or retried.
type PageError struct {
	Page  int
	Cause error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d not available: %v", e.Page, e.Cause)
}

func (e *PageError) Unwrap() error {
	return e.Cause
}
