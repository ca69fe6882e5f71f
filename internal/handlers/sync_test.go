package handlers

import (
	"strings"
	"testing"

	"github.com/sya-pos/possyncgo/internal/sync"
)

func TestDecodeRecordsSingleObject(t *testing.T) {
	body := strings.NewReader(`{"tenant_id": 1, "branch_id": 2, "ticket_number": 42}`)

	items, err := decodeRecords[sync.SaleInput](body)
	if err != nil {
		t.Fatalf("Failed to decode single object: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].TicketNumber != 42 {
		t.Errorf("Expected ticket 42, got %d", items[0].TicketNumber)
	}
}

func TestDecodeRecordsArray(t *testing.T) {
	body := strings.NewReader(`[{"ticket_number": 1}, {"ticket_number": 2}, {"ticket_number": 3}]`)

	items, err := decodeRecords[sync.SaleInput](body)
	if err != nil {
		t.Fatalf("Failed to decode array: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	if items[2].TicketNumber != 3 {
		t.Errorf("Expected ticket 3 in last slot, got %d", items[2].TicketNumber)
	}
}

func TestDecodeRecordsLeadingWhitespace(t *testing.T) {
	body := strings.NewReader("\n\t [{\"ticket_number\": 7}]")

	items, err := decodeRecords[sync.SaleInput](body)
	if err != nil {
		t.Fatalf("Whitespace before the array should be tolerated: %v", err)
	}
	if len(items) != 1 || items[0].TicketNumber != 7 {
		t.Errorf("Unexpected decode result: %+v", items)
	}
}

func TestDecodeRecordsRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"whitespace only", "   \n"},
		{"truncated array", `[{"ticket_number": 1}`},
		{"wrong shape", `"just a string"`},
	}
	for _, c := range cases {
		if _, err := decodeRecords[sync.SaleInput](strings.NewReader(c.body)); err == nil {
			t.Errorf("%s: expected an error", c.name)
		}
	}
}
