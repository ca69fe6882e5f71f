package models

import "time"

// ScaleTamperLog records a suspicious weighing event detected by the
// terminal's scale monitor. The event itself is write-once; review state
// (WasReviewed, ReviewNotes, ReviewedAt, ReviewedByID) may be refreshed when
// the same global_id is replayed after a supervisor reviews it locally.
type ScaleTamperLog struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	TenantID       uint       `gorm:"not null;index:idx_tamper_logs_scope" json:"tenantId"`
	BranchID       uint       `gorm:"not null;index:idx_tamper_logs_scope" json:"branchId"`
	ShiftID        *uint      `gorm:"index" json:"shiftId"`
	EmployeeID     uint       `gorm:"not null;index" json:"employeeId"`
	OccurredAt     *time.Time `json:"occurredAt"`
	EventType      string     `gorm:"type:varchar(100)" json:"eventType"`
	WeightDetected float64    `gorm:"type:numeric(12,3);default:0" json:"weightDetected"`
	Details        string     `gorm:"type:text" json:"details"`
	Severity       string     `gorm:"type:varchar(20);default:'medium'" json:"severity"`
	SuspicionLevel string     `gorm:"type:varchar(20)" json:"suspicionLevel"`
	ScenarioCode   string     `gorm:"type:varchar(50)" json:"scenarioCode"`
	RiskScore      float64    `gorm:"default:0" json:"riskScore"`
	WasReviewed    bool       `gorm:"default:false;index" json:"wasReviewed"`
	ReviewNotes    *string    `gorm:"type:text" json:"reviewNotes,omitempty"`
	ReviewedAt     *time.Time `json:"reviewedAt"`
	ReviewedByID   *uint      `json:"reviewedById"`
	SyncFields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (ScaleTamperLog) TableName() string {
	return "scale_tamper_logs"
}

// Disconnection statuses reported by terminals.
const (
	ScaleDisconnectionOngoing  = "ongoing"
	ScaleDisconnectionResolved = "resolved"
)

// ScaleDisconnectionLog records a scale going offline at a terminal. The
// reconnection fields arrive on a later replay of the same global_id once
// the scale comes back, so they are mutable.
type ScaleDisconnectionLog struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	TenantID        uint       `gorm:"not null;index:idx_disconnection_logs_scope" json:"tenantId"`
	BranchID        uint       `gorm:"not null;index:idx_disconnection_logs_scope" json:"branchId"`
	ShiftID         *uint      `gorm:"index" json:"shiftId"`
	EmployeeID      uint       `gorm:"not null" json:"employeeId"`
	DisconnectedAt  time.Time  `gorm:"not null" json:"disconnectedAt"`
	ReconnectedAt   *time.Time `json:"reconnectedAt"`
	DurationMinutes *float64   `json:"durationMinutes"`
	Status          string     `gorm:"type:varchar(20);not null" json:"status"`
	Reason          string     `gorm:"type:varchar(255)" json:"reason"`
	Notes           string     `gorm:"type:text" json:"notes"`
	SyncFields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (ScaleDisconnectionLog) TableName() string {
	return "scale_disconnection_logs"
}
