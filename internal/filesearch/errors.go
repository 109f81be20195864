// errors.go - Typed failures of the remote FileSearch protocol
package filesearch

import "fmt"

// ProtocolError means the upstream service violated the expected response
// shape (a missing header or field). It indicates API drift and is never
// retried.
type ProtocolError struct {
	Phase   string
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error during %s: %s", e.Phase, e.Message)
}

// TransportError is a non-2xx HTTP response at any phase, surfaced with
// the raw response body as diagnostic detail.
type TransportError struct {
	Phase      string
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed with status %d: %s", e.Phase, e.StatusCode, e.Body)
}

// TimeoutError means the indexing poll loop exhausted its attempt cap.
type TimeoutError struct {
	OperationName string
	Attempts      int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("operation %s did not complete after %d polls", e.OperationName, e.Attempts)
}

// OperationFailedError means the upstream explicitly reported that
// indexing failed, carrying its message.
type OperationFailedError struct {
	OperationName string
	Message       string
}

func (e *OperationFailedError) Error() string {
	return fmt.Sprintf("operation %s failed: %s", e.OperationName, e.Message)
}
