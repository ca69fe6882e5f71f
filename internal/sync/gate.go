package sync

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Kind names a syncable record kind. Each kind declares its own
// mutable-on-replay column whitelist; everything else is write-once.
type Kind string

const (
	KindShift            Kind = "shift"
	KindSale             Kind = "sale"
	KindSaleItem         Kind = "sale_item"
	KindExpense          Kind = "expense"
	KindCashMovement     Kind = "cash_movement"
	KindTamperLog        Kind = "tamper_log"
	KindDisconnectionLog Kind = "disconnection_log"
)

// mutableOnReplay lists, per kind, the columns a replayed global_id may
// overwrite. Amounts, quantities, original event timestamps and parent
// references are never listed: the first committed insert fixes them for
// good. Kinds absent from this map are fully write-once.
var mutableOnReplay = map[Kind][]string{
	KindShift: {
		"end_time", "final_amount", "expected_amount", "difference",
		"is_open", "transaction_counter",
	},
	KindSale: {
		"status", "amount_paid", "settled_at", "notes",
	},
	KindExpense: {
		"description", "payment_type_id",
	},
	KindCashMovement: {
		"description",
	},
	KindTamperLog: {
		"was_reviewed", "review_notes", "reviewed_at", "reviewed_by_id",
	},
	KindDisconnectionLog: {
		"reconnected_at", "duration_minutes", "status", "notes",
	},
}

// MutableColumns returns the replay whitelist for a kind. The returned slice
// is a copy; callers may append to it.
func MutableColumns(kind Kind) []string {
	cols := mutableOnReplay[kind]
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

// upsertByGlobalID performs the insert-or-merge at the heart of the
// idempotency gate as one atomic statement: insert the record, and on a
// global_id conflict overwrite only the kind's mutable columns. The
// database's unique constraint serializes concurrent attempts, so no
// application lock is needed. RETURNING refreshes the record with the
// authoritative row either way.
//
// updated_at is always assigned on conflict, so a merged row's updated_at
// moves past its created_at while a fresh insert stamps both from the same
// clock read. That difference is what wasInserted reads.
func upsertByGlobalID(tx *gorm.DB, kind Kind, record interface{}) error {
	assignments := append(MutableColumns(kind), "updated_at")

	return tx.Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "global_id"}},
			DoUpdates: clause.AssignmentColumns(assignments),
		},
		clause.Returning{},
	).Create(record).Error
}

// wasInserted reports whether the row that came back from upsertByGlobalID
// was created by that statement rather than merged into an existing row.
func wasInserted(createdAt, updatedAt time.Time) bool {
	return createdAt.Equal(updatedAt)
}
