package models

import (
	"strings"
	"time"
)

// Employee is a terminal operator. Terminals reference employees by
// global_id because they may never have seen the server row id.
type Employee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TenantID     uint      `gorm:"not null;uniqueIndex:idx_employees_tenant_global" json:"tenantId"`
	GlobalID     string    `gorm:"type:uuid;uniqueIndex:idx_employees_tenant_global" json:"global_id"`
	Username     string    `gorm:"type:varchar(100)" json:"username"`
	FirstName    string    `gorm:"type:varchar(100)" json:"firstName"`
	LastName     string    `gorm:"type:varchar(100)" json:"lastName"`
	Email        string    `gorm:"type:varchar(255)" json:"email"`
	Password     string    `gorm:"type:varchar(255)" json:"-"`
	Role         string    `gorm:"type:varchar(50);default:'cashier'" json:"role"`
	MainBranchID *uint     `json:"mainBranchId"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (Employee) TableName() string {
	return "employees"
}

// DisplayName returns the human-readable name used in relay notifications.
func (e *Employee) DisplayName() string {
	name := strings.TrimSpace(e.FirstName + " " + e.LastName)
	if name == "" {
		return e.Username
	}
	return name
}

// Customer is an optional parent for credit sales.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"not null;uniqueIndex:idx_customers_tenant_global" json:"tenantId"`
	GlobalID  string    `gorm:"type:uuid;uniqueIndex:idx_customers_tenant_global" json:"global_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (Customer) TableName() string {
	return "customers"
}
