package sync

import (
	"testing"

	"github.com/google/uuid"
)

func TestInputSyncFieldsValidate(t *testing.T) {
	valid := InputSyncFields{
		GlobalID:   uuid.NewString(),
		TerminalID: uuid.NewString(),
	}
	if err := valid.validate(); err != nil {
		t.Fatalf("Valid fields should pass validation, got: %v", err)
	}

	cases := []struct {
		name   string
		fields InputSyncFields
	}{
		{"missing global_id", InputSyncFields{TerminalID: uuid.NewString()}},
		{"malformed global_id", InputSyncFields{GlobalID: "ticket-42", TerminalID: uuid.NewString()}},
		{"missing terminal_id", InputSyncFields{GlobalID: uuid.NewString()}},
		{"malformed terminal_id", InputSyncFields{GlobalID: uuid.NewString(), TerminalID: "till-1"}},
	}
	for _, c := range cases {
		err := c.fields.validate()
		if err == nil {
			t.Errorf("%s: expected validation error", c.name)
			continue
		}
		if err.Code != CodeValidation {
			t.Errorf("%s: expected code %s, got %s", c.name, CodeValidation, err.Code)
		}
		if err.Retryable {
			t.Errorf("%s: validation errors must not be retryable", c.name)
		}
	}
}

func TestUnresolvedReferenceErrorIsRetryable(t *testing.T) {
	err := NewUnresolvedReferenceError(RefShift, uuid.NewString())
	if err.Code != CodeUnresolvedReference {
		t.Errorf("Expected code %s, got %s", CodeUnresolvedReference, err.Code)
	}
	if !err.Retryable {
		t.Error("Unresolved references must be retryable: the parent may sync later")
	}
}

func TestStorageErrorHidesDetail(t *testing.T) {
	err := NewStorageError()
	if err.Code != CodeStorage {
		t.Errorf("Expected code %s, got %s", CodeStorage, err.Code)
	}
	if !err.Retryable {
		t.Error("Storage errors must be retryable: idempotency makes retries safe")
	}
}
