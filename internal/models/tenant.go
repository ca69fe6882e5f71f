package models

import "time"

// Tenant is one subscribed business. All sync resolution is scoped by tenant.
type Tenant struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BusinessName string    `gorm:"type:varchar(255);not null" json:"businessName"`
	TenantCode   string    `gorm:"type:varchar(50);uniqueIndex" json:"tenantCode"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (Tenant) TableName() string {
	return "tenants"
}

// Branch is one retail location of a tenant. Branch IDs also key the
// realtime relay rooms.
type Branch struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TenantID   uint      `gorm:"not null;index" json:"tenantId"`
	BranchCode string    `gorm:"type:varchar(50)" json:"branchCode"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Address    string    `gorm:"type:varchar(500)" json:"address"`
	Timezone   string    `gorm:"type:varchar(64);default:'America/Mexico_City'" json:"timezone"`
	IsActive   bool      `gorm:"default:true" json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName specifies the table name
func (Branch) TableName() string {
	return "branches"
}
