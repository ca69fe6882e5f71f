package sync

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sya-pos/possyncgo/internal/database"
)

// RefKind names a parent entity a terminal may reference by global_id.
type RefKind string

const (
	RefEmployee RefKind = "employee"
	RefShift    RefKind = "shift"
	RefCustomer RefKind = "customer"
)

// Resolver maps terminal-supplied global ids to server row ids. Resolution
// is always scoped by tenant: a global_id from another tenant never matches.
type Resolver struct {
	db *database.DB
}

// NewResolver creates a resolver backed by the given database.
func NewResolver(db *database.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve looks up the server id of a previously synced parent entity.
// An unknown reference is reported as found=false, not as an error: the
// parent may simply not have been synced yet.
func (r *Resolver) Resolve(ctx context.Context, kind RefKind, tenantID uint, globalID string) (uint, bool, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, false, err
	}

	var row struct{ ID uint }
	result := r.db.WithContext(ctx).
		Table(table).
		Select("id").
		Where("global_id = ? AND tenant_id = ?", globalID, tenantID).
		Take(&row)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("resolve %s %s: %w", kind, globalID, result.Error)
	}
	return row.ID, true, nil
}

func tableFor(kind RefKind) (string, error) {
	switch kind {
	case RefEmployee:
		return "employees", nil
	case RefShift:
		return "shifts", nil
	case RefCustomer:
		return "customers", nil
	default:
		return "", fmt.Errorf("unknown reference kind %q", kind)
	}
}
