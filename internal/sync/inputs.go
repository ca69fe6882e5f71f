package sync

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/sya-pos/possyncgo/internal/models"
)

// InputSyncFields are the four idempotency fields plus the optional raw
// device payload, as they arrive on the wire.
type InputSyncFields struct {
	GlobalID        string          `json:"global_id"`
	TerminalID      string          `json:"terminal_id"`
	LocalOpSeq      int64           `json:"local_op_seq"`
	CreatedLocalUTC *time.Time      `json:"created_local_utc"`
	DeviceEventRaw  json.RawMessage `json:"device_event_raw,omitempty"`
}

// validate enforces the fields every syncable record must carry before the
// gate will even attempt an insert.
func (f *InputSyncFields) validate() *Error {
	if f.GlobalID == "" {
		return NewValidationError("global_id is required")
	}
	if _, err := uuid.Parse(f.GlobalID); err != nil {
		return NewValidationError("global_id must be a valid UUID")
	}
	if f.TerminalID == "" {
		return NewValidationError("terminal_id is required")
	}
	if _, err := uuid.Parse(f.TerminalID); err != nil {
		return NewValidationError("terminal_id must be a valid UUID")
	}
	return nil
}

// toModel converts the wire fields into the persisted form.
func (f *InputSyncFields) toModel() models.SyncFields {
	return models.SyncFields{
		GlobalID:        f.GlobalID,
		TerminalID:      f.TerminalID,
		LocalOpSeq:      f.LocalOpSeq,
		CreatedLocalUTC: f.CreatedLocalUTC,
		DeviceEventRaw:  datatypes.JSON(f.DeviceEventRaw),
	}
}

// ShiftInput opens or closes a cash-register session.
type ShiftInput struct {
	TenantID           uint       `json:"tenant_id"`
	BranchID           uint       `json:"branch_id"`
	EmployeeGlobalID   string     `json:"employee_global_id"`
	StartTime          *time.Time `json:"start_time"`
	EndTime            *time.Time `json:"end_time"`
	InitialAmount      float64    `json:"initial_amount"`
	FinalAmount        *float64   `json:"final_amount"`
	ExpectedAmount     *float64   `json:"expected_amount"`
	Difference         *float64   `json:"difference"`
	TransactionCounter int        `json:"transaction_counter"`
	IsOpen             *bool      `json:"is_open"`
	InputSyncFields
}

// SaleItemInput is one ticket line inside a SaleInput.
type SaleItemInput struct {
	GlobalID       string  `json:"global_id"`
	ProductCode    string  `json:"product_code"`
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	ListPrice      float64 `json:"list_price"`
	UnitPrice      float64 `json:"unit_price"`
	LineTotal      float64 `json:"line_total"`
	DiscountAmount float64 `json:"discount_amount"`
}

// SaleInput is one ticket with its lines.
type SaleInput struct {
	TenantID         uint            `json:"tenant_id"`
	BranchID         uint            `json:"branch_id"`
	EmployeeGlobalID string          `json:"employee_global_id"`
	ShiftGlobalID    string          `json:"shift_global_id"`
	CustomerGlobalID string          `json:"customer_global_id"`
	TicketNumber     int             `json:"ticket_number"`
	Subtotal         float64         `json:"subtotal"`
	TotalDiscounts   float64         `json:"total_discounts"`
	Total            *float64        `json:"total"`
	AmountPaid       float64         `json:"amount_paid"`
	CashAmount       float64         `json:"cash_amount"`
	CardAmount       float64         `json:"card_amount"`
	CreditAmount     float64         `json:"credit_amount"`
	SaleStateID      int             `json:"sale_state_id"`
	SoldAt           *time.Time      `json:"sold_at"`
	SettledAt        *time.Time      `json:"settled_at"`
	Notes            string          `json:"notes"`
	Items            []SaleItemInput `json:"items"`
	InputSyncFields
}

// ExpenseInput is one outgoing payment.
type ExpenseInput struct {
	TenantID         uint       `json:"tenant_id"`
	BranchID         uint       `json:"branch_id"`
	EmployeeGlobalID string     `json:"employee_global_id"`
	ShiftGlobalID    string     `json:"shift_global_id"`
	CategoryID       *uint      `json:"category_id"`
	PaymentTypeID    *uint      `json:"payment_type_id"`
	Description      string     `json:"description"`
	Amount           *float64   `json:"amount"`
	ExpenseDate      *time.Time `json:"expense_date"`
	InputSyncFields
}

// CashMovementInput is a deposit into or withdrawal from the drawer.
type CashMovementInput struct {
	TenantID         uint       `json:"tenant_id"`
	BranchID         uint       `json:"branch_id"`
	EmployeeGlobalID string     `json:"employee_global_id"`
	ShiftGlobalID    string     `json:"shift_global_id"`
	Direction        string     `json:"direction"`
	MovementType     string     `json:"movement_type"`
	Amount           *float64   `json:"amount"`
	Description      string     `json:"description"`
	MovedAt          *time.Time `json:"moved_at"`
	InputSyncFields
}

// TamperLogInput is one suspicious-weighing event from the scale monitor.
type TamperLogInput struct {
	TenantID           uint       `json:"tenant_id"`
	BranchID           uint       `json:"branch_id"`
	EmployeeGlobalID   string     `json:"employee_global_id"`
	ShiftGlobalID      string     `json:"shift_global_id"`
	OccurredAt         *time.Time `json:"occurred_at"`
	EventType          string     `json:"event_type"`
	WeightDetected     float64    `json:"weight_detected"`
	Details            string     `json:"details"`
	Severity           string     `json:"severity"`
	SuspicionLevel     string     `json:"suspicion_level"`
	ScenarioCode       string     `json:"scenario_code"`
	RiskScore          float64    `json:"risk_score"`
	WasReviewed        bool       `json:"was_reviewed"`
	ReviewNotes        *string    `json:"review_notes"`
	ReviewedAt         *time.Time `json:"reviewed_at"`
	ReviewedByGlobalID string     `json:"reviewed_by_global_id"`
	InputSyncFields
}

// DisconnectionLogInput is one scale-offline event.
type DisconnectionLogInput struct {
	TenantID         uint       `json:"tenant_id"`
	BranchID         uint       `json:"branch_id"`
	EmployeeGlobalID string     `json:"employee_global_id"`
	ShiftGlobalID    string     `json:"shift_global_id"`
	DisconnectedAt   *time.Time `json:"disconnected_at"`
	ReconnectedAt    *time.Time `json:"reconnected_at"`
	DurationMinutes  *float64   `json:"duration_minutes"`
	Status           string     `json:"status"`
	Reason           string     `json:"reason"`
	Notes            string     `json:"notes"`
	InputSyncFields
}
