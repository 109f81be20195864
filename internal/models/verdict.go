package models

// ValidationVerdict is the result of content-based file validation.
// It is produced once per candidate file and consumed by the ingestion
// layer to short-circuit uploads of unacceptable files.
type ValidationVerdict struct {
	IsValid              bool   `json:"isValid"`
	Extension            string `json:"extension"`
	DetectedMimeType     string `json:"detectedMimeType,omitempty"`
	IsPotentiallySpoofed bool   `json:"isPotentiallySpoofed"`
	ErrorMessage         string `json:"errorMessage,omitempty"`
}
