package models

import (
	"time"

	"gorm.io/datatypes"
)

// SyncFields are the idempotency fields carried by every record a terminal
// generates while offline. GlobalID is the sole identity key: the terminal
// mints it once per logical event and the server keeps exactly one row per
// value no matter how many times the event is replayed.
type SyncFields struct {
	GlobalID        string         `gorm:"type:uuid;uniqueIndex;not null" json:"global_id"`
	TerminalID      string         `gorm:"type:uuid" json:"terminal_id"`
	LocalOpSeq      int64          `gorm:"default:0" json:"local_op_seq"`
	CreatedLocalUTC *time.Time     `json:"created_local_utc"`
	DeviceEventRaw  datatypes.JSON `gorm:"type:jsonb" json:"device_event_raw,omitempty"`
}
