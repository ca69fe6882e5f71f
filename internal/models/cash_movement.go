package models

import "time"

// Cash movement directions.
const (
	CashMovementDeposit    = "deposit"
	CashMovementWithdrawal = "withdrawal"
)

// CashMovement is money put into or taken out of the drawer outside a sale.
// Amount, direction and timing are write-once; only the description may be
// refreshed on replay.
type CashMovement struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TenantID     uint      `gorm:"not null;index:idx_cash_movements_scope" json:"tenantId"`
	BranchID     uint      `gorm:"not null;index:idx_cash_movements_scope" json:"branchId"`
	ShiftID      *uint     `gorm:"index" json:"shiftId"`
	EmployeeID   *uint     `json:"employeeId"`
	Direction    string    `gorm:"type:varchar(20);not null" json:"direction"`
	MovementType string    `gorm:"type:varchar(50);default:'manual'" json:"movementType"`
	Amount       float64   `gorm:"type:numeric(12,2);not null" json:"amount"`
	Description  string    `gorm:"type:varchar(500)" json:"description"`
	MovedAt      time.Time `gorm:"not null" json:"movedAt"`
	SyncFields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (CashMovement) TableName() string {
	return "cash_movements"
}
