package models

import "time"

// Expense is an outgoing payment registered at the terminal. Amount and
// expense date are write-once; replays may refresh the description and
// payment type.
type Expense struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TenantID      uint       `gorm:"not null;index:idx_expenses_scope" json:"tenantId"`
	BranchID      uint       `gorm:"not null;index:idx_expenses_scope" json:"branchId"`
	EmployeeID    *uint      `json:"employeeId"`
	ShiftID       *uint      `gorm:"index" json:"shiftId"`
	CategoryID    *uint      `json:"categoryId"`
	PaymentTypeID *uint      `json:"paymentTypeId"`
	Description   string     `gorm:"type:varchar(500)" json:"description"`
	Amount        float64    `gorm:"type:numeric(12,2);not null" json:"amount"`
	ExpenseDate   time.Time  `gorm:"not null" json:"expenseDate"`
	SyncedAt      *time.Time `json:"syncedAt"`
	SyncFields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (Expense) TableName() string {
	return "expenses"
}
