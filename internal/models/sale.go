package models

import "time"

// Sale statuses. Terminals send their local state id; the ingestion layer
// maps it to one of these. Only completed and liquidated sales count toward
// a cash cut.
const (
	SaleStatusDraft      = "draft"
	SaleStatusAssigned   = "assigned"
	SaleStatusCompleted  = "completed"
	SaleStatusCancelled  = "cancelled"
	SaleStatusLiquidated = "liquidated"
)

// Sale is one ticket. Amounts and the parent shift/employee are fixed by the
// first accepted insert; replays may only refresh Status, AmountPaid,
// SettledAt and Notes (credit settlement happens after the original sale).
type Sale struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	TenantID       uint       `gorm:"not null;index:idx_sales_scope" json:"tenantId"`
	BranchID       uint       `gorm:"not null;index:idx_sales_scope" json:"branchId"`
	EmployeeID     uint       `gorm:"not null" json:"employeeId"`
	ShiftID        uint       `gorm:"not null;index" json:"shiftId"`
	CustomerID     *uint      `json:"customerId"`
	TicketNumber   int        `gorm:"not null" json:"ticketNumber"`
	Subtotal       float64    `gorm:"type:numeric(12,2);default:0" json:"subtotal"`
	TotalDiscounts float64    `gorm:"type:numeric(12,2);default:0" json:"totalDiscounts"`
	Total          float64    `gorm:"type:numeric(12,2);not null" json:"total"`
	AmountPaid     float64    `gorm:"type:numeric(12,2);default:0" json:"amountPaid"`
	CashAmount     float64    `gorm:"type:numeric(12,2);default:0" json:"cashAmount"`
	CardAmount     float64    `gorm:"type:numeric(12,2);default:0" json:"cardAmount"`
	CreditAmount   float64    `gorm:"type:numeric(12,2);default:0" json:"creditAmount"`
	Status         string     `gorm:"type:varchar(20);default:'completed';index" json:"status"`
	SoldAt         *time.Time `json:"soldAt"`
	SettledAt      *time.Time `json:"settledAt"`
	Notes          string     `gorm:"type:text" json:"notes"`
	SyncFields
	Items     []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TableName specifies the table name
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is one ticket line. Lines carry their own global_id so a replayed
// sale never duplicates them, but their contents are write-once.
type SaleItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SaleID         uint      `gorm:"not null;index" json:"saleId"`
	GlobalID       string    `gorm:"type:uuid;uniqueIndex;not null" json:"global_id"`
	ProductCode    string    `gorm:"type:varchar(100)" json:"productCode"`
	Description    string    `gorm:"type:varchar(255)" json:"description"`
	Quantity       float64   `gorm:"type:numeric(12,3);default:0" json:"quantity"`
	ListPrice      float64   `gorm:"type:numeric(12,2);default:0" json:"listPrice"`
	UnitPrice      float64   `gorm:"type:numeric(12,2);default:0" json:"unitPrice"`
	LineTotal      float64   `gorm:"type:numeric(12,2);default:0" json:"lineTotal"`
	DiscountAmount float64   `gorm:"type:numeric(12,2);default:0" json:"discountAmount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (SaleItem) TableName() string {
	return "sale_items"
}
