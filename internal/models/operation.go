package models

// OperationState represents the lifecycle of a remote indexing operation.
type OperationState string

const (
	OperationPending OperationState = "pending"
	OperationDone    OperationState = "done"
	OperationFailed  OperationState = "failed"
)

// UploadOperation is a snapshot of one asynchronous indexing operation,
// produced per poll. Done and Failed are terminal states.
type UploadOperation struct {
	OperationName string         `json:"operationName"`
	StoreRef      string         `json:"storeRef"`
	State         OperationState `json:"state"`
	ErrorDetail   string         `json:"errorDetail,omitempty"`
}
