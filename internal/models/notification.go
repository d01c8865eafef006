package models

import "time"

type Notification struct {
	ID            int64             `json:"id"`
	RecipientID   int64             `json:"recipient_id"`
	RecipientRole string            `json:"recipient_role"`
	Type          string            `json:"type"`
	Title         string            `json:"title"`
	Message       string            `json:"message"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}
