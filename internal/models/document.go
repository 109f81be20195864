package models

import "time"

// DocumentRecord describes a file already indexed in a remote store.
// The remote service owns this data; it is mirrored here only as a
// read-through listing and never cached across calls.
type DocumentRecord struct {
	Name        string     `json:"name"`        // resource name, e.g. "fileSearchStores/x/documents/y"
	DisplayName string     `json:"displayName"` // original filename
	MimeType    string     `json:"mimeType"`
	UploadDate  *time.Time `json:"uploadDate,omitempty"`
	Status      string     `json:"status"`
}
