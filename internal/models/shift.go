package models

import "time"

// Shift is a cash-register session. It is both a syncable record itself and
// the parent other records (sales, expenses, cash movements) resolve against.
//
// Mutable on replay: the close-out fields (EndTime, FinalAmount,
// ExpectedAmount, Difference, IsOpen, TransactionCounter). The open-time
// fields are fixed by the first accepted insert.
type Shift struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	TenantID           uint       `gorm:"not null;index:idx_shifts_scope" json:"tenantId"`
	BranchID           uint       `gorm:"not null;index:idx_shifts_scope" json:"branchId"`
	EmployeeID         uint       `gorm:"not null;index" json:"employeeId"`
	StartTime          time.Time  `gorm:"not null" json:"startTime"`
	EndTime            *time.Time `json:"endTime"`
	InitialAmount      float64    `gorm:"type:numeric(12,2);default:0" json:"initialAmount"`
	FinalAmount        *float64   `gorm:"type:numeric(12,2)" json:"finalAmount"`
	ExpectedAmount     *float64   `gorm:"type:numeric(12,2)" json:"expectedAmount"`
	Difference         *float64   `gorm:"type:numeric(12,2)" json:"difference"`
	TransactionCounter int        `gorm:"default:0" json:"transactionCounter"`
	IsOpen             bool       `gorm:"default:true" json:"isOpen"`
	SyncFields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (Shift) TableName() string {
	return "shifts"
}
