package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sya-pos/possyncgo/internal/sync"
)

// SyncHandler exposes one ingestion endpoint per record kind. Every
// endpoint accepts a single JSON object or an array and answers with the
// per-item batch result; partial failures are data in the response, never
// an HTTP error.
type SyncHandler struct {
	svc *sync.Service
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(svc *sync.Service) *SyncHandler {
	return &SyncHandler{svc: svc}
}

// RegisterRoutes registers sync routes
func (sh *SyncHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/shifts", sh.syncShifts).Methods("POST")
	r.HandleFunc("/sales", sh.syncSales).Methods("POST")
	r.HandleFunc("/expenses", sh.syncExpenses).Methods("POST")
	r.HandleFunc("/cash-movements", sh.syncCashMovements).Methods("POST")
	r.HandleFunc("/tamper-logs", sh.syncTamperLogs).Methods("POST")
	r.HandleFunc("/scale-disconnections", sh.syncDisconnectionLogs).Methods("POST")
}

func (sh *SyncHandler) syncShifts(w http.ResponseWriter, r *http.Request) {
	items, err := decodeRecords[sync.ShiftInput](r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, sh.svc.SyncShifts(r.Context(), items))
}

func (sh *SyncHandler) syncSales(w http.ResponseWriter, r *http.Request) {
	items, err := decodeRecords[sync.SaleInput](r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, sh.svc.SyncSales(r.Context(), items))
}

func (sh *SyncHandler) syncExpenses(w http.ResponseWriter, r *http.Request) {
	items, err := decodeRecords[sync.ExpenseInput](r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, sh.svc.SyncExpenses(r.Context(), items))
}

func (sh *SyncHandler) syncCashMovements(w http.ResponseWriter, r *http.Request) {
	items, err := decodeRecords[sync.CashMovementInput](r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, sh.svc.SyncCashMovements(r.Context(), items))
}

func (sh *SyncHandler) syncTamperLogs(w http.ResponseWriter, r *http.Request) {
	items, err := decodeRecords[sync.TamperLogInput](r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, sh.svc.SyncTamperLogs(r.Context(), items))
}

func (sh *SyncHandler) syncDisconnectionLogs(w http.ResponseWriter, r *http.Request) {
	items, err := decodeRecords[sync.DisconnectionLogInput](r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, sh.svc.SyncDisconnectionLogs(r.Context(), items))
}

// decodeRecords normalizes a request body that may be a single JSON object
// or an array of them into a slice.
func decodeRecords[T any](r io.Reader) ([]T, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimLeft(body, " \t\r\n")
	if len(body) == 0 {
		return nil, errors.New("empty request body")
	}

	if body[0] == '[' {
		var items []T
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, err
	}
	return []T{item}, nil
}
