package models

import "time"

// FileInfo represents metadata about an uploaded schema document.
type FileInfo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Digest     string    `json:"digest"` // hex SHA-256 of the content
	UploadedAt time.Time `json:"uploadedAt"`
	Status     string    `json:"status"` // "uploaded", "processed", "error"
}
