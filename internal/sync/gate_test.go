package sync

import (
	"testing"

	"github.com/sya-pos/possyncgo/internal/models"
)

func TestMutableColumnsReturnsCopy(t *testing.T) {
	first := MutableColumns(KindShift)
	if len(first) == 0 {
		t.Fatal("Shift whitelist should not be empty")
	}

	// Mutating the returned slice must not leak into the next call
	first[0] = "tampered"
	_ = append(first, "extra")

	second := MutableColumns(KindShift)
	if second[0] == "tampered" {
		t.Error("MutableColumns should return a copy, not the shared slice")
	}
}

func TestMutableColumnsWriteOnceKinds(t *testing.T) {
	if cols := MutableColumns(KindSaleItem); len(cols) != 0 {
		t.Errorf("Sale items should be fully write-once, got whitelist %v", cols)
	}
}

func TestMutableColumnsNeverListAmounts(t *testing.T) {
	// Amounts and parent references are fixed by the first insert; if one of
	// these ever shows up in a whitelist a replay could rewrite money.
	forbidden := map[string]bool{
		"total": true, "subtotal": true, "amount": true,
		"initial_amount": true, "cash_amount": true, "card_amount": true,
		"credit_amount": true, "employee_id": true, "shift_id": true,
		"tenant_id": true, "branch_id": true, "global_id": true,
	}
	kinds := []Kind{
		KindShift, KindSale, KindSaleItem, KindExpense,
		KindCashMovement, KindTamperLog, KindDisconnectionLog,
	}
	for _, kind := range kinds {
		for _, col := range MutableColumns(kind) {
			if forbidden[col] {
				t.Errorf("Kind %s must not allow replay writes to %q", kind, col)
			}
		}
	}
}

func TestSaleStatusMapping(t *testing.T) {
	cases := []struct {
		stateID int
		want    string
	}{
		{1, models.SaleStatusDraft},
		{2, models.SaleStatusAssigned},
		{3, models.SaleStatusCompleted},
		{4, models.SaleStatusCancelled},
		{5, models.SaleStatusLiquidated},
		{0, models.SaleStatusCompleted},
		{99, models.SaleStatusCompleted},
	}
	for _, c := range cases {
		if got := saleStatus(c.stateID); got != c.want {
			t.Errorf("saleStatus(%d) = %q, want %q", c.stateID, got, c.want)
		}
	}
}
