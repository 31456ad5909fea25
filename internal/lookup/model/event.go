package model

import (
	"time"

	"github.com/google/uuid"
)

// DecodeEvent carries one barcode read delivered by a scanner source.
type DecodeEvent struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"`
	Source     string    `json:"source"`
	ReceivedAt time.Time `json:"received_at"`
}

// NewDecodeEvent stamps a decoded code with an id and the current time.
func NewDecodeEvent(source, code string) DecodeEvent {
	return DecodeEvent{
		ID:         uuid.NewString(),
		Code:       code,
		Source:     source,
		ReceivedAt: time.Now().UTC(),
	}
}
