package models

import "time"

// StoreRecord describes a remote FileSearch store.
type StoreRecord struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"displayName"`
	CreateTime  *time.Time `json:"createTime,omitempty"`
	UpdateTime  *time.Time `json:"updateTime,omitempty"`
}
