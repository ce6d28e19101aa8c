package model

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Processing status values for a Document.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Document represents one analyzed upload in the history list.
// This is a pure domain model with no persistence-specific dependencies or tags.
// It can be used across layers (HTTP, service, repository) without coupling.
type Document struct {
	ID               string    `json:"id"`
	Filename         string    `json:"filename"`
	ContentType      string    `json:"content_type"`
	Size             int64     `json:"file_size"`
	SizeLabel        string    `json:"file_size_label"`
	UploadedAt       time.Time `json:"upload_date"`
	ProcessingStatus string    `json:"processing_status"`
	ErrorMessage     string    `json:"error_message,omitempty"`
	Insights         Insights  `json:"insights"`
}

// HumanSize renders a byte count the way the history list displays it, e.g. "1.2 MB".
func HumanSize(n int64) string {
	return humanize.Bytes(uint64(n))
}
