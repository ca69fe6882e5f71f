package sync

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/sya-pos/possyncgo/internal/database"
	"github.com/sya-pos/possyncgo/internal/metrics"
	"github.com/sya-pos/possyncgo/internal/middleware"
	"github.com/sya-pos/possyncgo/internal/models"
)

// EventPublisher is the slice of the realtime relay the sync layer needs:
// best-effort fan-out of one event to a branch room. Implementations must
// never block the caller.
type EventPublisher interface {
	PublishToBranch(branchID uint, event string, payload map[string]interface{})
}

// ItemResult is the per-item outcome of a sync batch. A duplicate global_id
// is a success carrying the existing server id, never an error.
type ItemResult struct {
	GlobalID  string  `json:"global_id"`
	ServerID  *uint   `json:"server_id"`
	Error     *string `json:"error"`
	Retryable bool    `json:"retryable,omitempty"`
}

// BatchResult summarizes one ingestion call. Replaying the same batch yields
// the same accepted count and the same server ids.
type BatchResult struct {
	Accepted int          `json:"accepted"`
	Total    int          `json:"total"`
	Results  []ItemResult `json:"results"`
}

// Service is the sync ingestion endpoint: one method per record kind, each
// resolving references, applying the idempotency gate and accumulating
// per-item outcomes. One item's failure never aborts its siblings.
type Service struct {
	db        *database.DB
	resolver  *Resolver
	publisher EventPublisher
}

// NewService creates the ingestion service. publisher may be nil when no
// relay is attached (e.g. in tools); side-channel publishes are skipped.
func NewService(db *database.DB, resolver *Resolver, publisher EventPublisher) *Service {
	return &Service{db: db, resolver: resolver, publisher: publisher}
}

func okResult(globalID string, serverID uint) ItemResult {
	id := serverID
	return ItemResult{GlobalID: globalID, ServerID: &id}
}

func errResult(globalID string, err *Error) ItemResult {
	code := err.Code
	return ItemResult{GlobalID: globalID, Error: &code, Retryable: err.Retryable}
}

func (s *Service) run(kind Kind, n int, each func(i int) ItemResult) BatchResult {
	res := BatchResult{Total: n, Results: make([]ItemResult, 0, n)}
	for i := 0; i < n; i++ {
		item := each(i)
		if item.Error == nil {
			res.Accepted++
			metrics.RecordsIngested.WithLabelValues(string(kind), "accepted").Inc()
		} else {
			metrics.RecordsIngested.WithLabelValues(string(kind), "rejected").Inc()
		}
		res.Results = append(res.Results, item)
	}
	metrics.IngestBatchSize.Observe(float64(n))
	return res
}

// resolveMandatory maps a missing parent to a retryable unresolved-reference
// error, per the policy for kinds whose parent is required.
func (s *Service) resolveMandatory(ctx context.Context, kind RefKind, tenantID uint, globalID string) (uint, *Error) {
	if globalID == "" {
		return 0, NewValidationError("%s_global_id is required", kind)
	}
	id, found, err := s.resolver.Resolve(ctx, kind, tenantID, globalID)
	if err != nil {
		log.Printf("[Sync] ❌ Resolver error (%s): %v", kind, err)
		return 0, NewStorageError()
	}
	if !found {
		return 0, NewUnresolvedReferenceError(kind, globalID)
	}
	return id, nil
}

// resolveOptional returns nil when the reference is absent or not yet
// synced; optional parents never block ingestion.
func (s *Service) resolveOptional(ctx context.Context, kind RefKind, tenantID uint, globalID string) (*uint, *Error) {
	if globalID == "" {
		return nil, nil
	}
	id, found, err := s.resolver.Resolve(ctx, kind, tenantID, globalID)
	if err != nil {
		log.Printf("[Sync] ❌ Resolver error (%s): %v", kind, err)
		return nil, NewStorageError()
	}
	if !found {
		log.Printf("[Sync] ⚠️ Optional %s not found: %s", kind, globalID)
		return nil, nil
	}
	return &id, nil
}

// SyncShifts ingests shift open/close records. The open-time fields are
// fixed by the first insert; close-out fields merge on replay.
func (s *Service) SyncShifts(ctx context.Context, items []ShiftInput) BatchResult {
	return s.run(KindShift, len(items), func(i int) ItemResult {
		in := items[i]
		if err := s.validateScope(ctx, in.TenantID, in.BranchID, &in.InputSyncFields); err != nil {
			return errResult(in.GlobalID, err)
		}
		if in.StartTime == nil {
			return errResult(in.GlobalID, NewValidationError("start_time is required"))
		}

		employeeID, serr := s.resolveMandatory(ctx, RefEmployee, in.TenantID, in.EmployeeGlobalID)
		if serr != nil {
			return errResult(in.GlobalID, serr)
		}

		isOpen := true
		if in.IsOpen != nil {
			isOpen = *in.IsOpen
		}
		shift := models.Shift{
			TenantID:           in.TenantID,
			BranchID:           in.BranchID,
			EmployeeID:         employeeID,
			StartTime:          in.StartTime.UTC(),
			EndTime:            in.EndTime,
			InitialAmount:      in.InitialAmount,
			FinalAmount:        in.FinalAmount,
			ExpectedAmount:     in.ExpectedAmount,
			Difference:         in.Difference,
			TransactionCounter: in.TransactionCounter,
			IsOpen:             isOpen,
			SyncFields:         in.toModel(),
		}
		if err := upsertByGlobalID(s.db.WithContext(ctx), KindShift, &shift); err != nil {
			log.Printf("[Sync/Shifts] ❌ Upsert failed for %s: %v", in.GlobalID, err)
			return errResult(in.GlobalID, NewStorageError())
		}
		if wasInserted(shift.CreatedAt, shift.UpdatedAt) {
			log.Printf("[Sync/Shifts] ✅ Shift synced: ID %d - employee %d - branch %d", shift.ID, employeeID, in.BranchID)
		}
		return okResult(in.GlobalID, shift.ID)
	})
}

// SyncSales ingests tickets with their lines. Sale and lines commit in one
// transaction per item; amounts and parents are write-once.
func (s *Service) SyncSales(ctx context.Context, items []SaleInput) BatchResult {
	return s.run(KindSale, len(items), func(i int) ItemResult {
		in := items[i]
		if err := s.validateScope(ctx, in.TenantID, in.BranchID, &in.InputSyncFields); err != nil {
			return errResult(in.GlobalID, err)
		}
		if in.TicketNumber <= 0 {
			return errResult(in.GlobalID, NewValidationError("ticket_number is required"))
		}
		if in.Total == nil {
			return errResult(in.GlobalID, NewValidationError("total is required"))
		}
		for _, item := range in.Items {
			if item.GlobalID == "" {
				return errResult(in.GlobalID, NewValidationError("sale item global_id is required"))
			}
		}

		employeeID, serr := s.resolveMandatory(ctx, RefEmployee, in.TenantID, in.EmployeeGlobalID)
		if serr != nil {
			return errResult(in.GlobalID, serr)
		}
		shiftID, serr := s.resolveMandatory(ctx, RefShift, in.TenantID, in.ShiftGlobalID)
		if serr != nil {
			return errResult(in.GlobalID, serr)
		}
		customerID, serr := s.resolveOptional(ctx, RefCustomer, in.TenantID, in.CustomerGlobalID)
		if serr != nil {
			return errResult(in.GlobalID, serr)
		}

		sale := models.Sale{
			TenantID:       in.TenantID,
			BranchID:       in.BranchID,
			EmployeeID:     employeeID,
			ShiftID:        shiftID,
			CustomerID:     customerID,
			TicketNumber:   in.TicketNumber,
			Subtotal:       in.Subtotal,
			TotalDiscounts: in.TotalDiscounts,
			Total:          *in.Total,
			AmountPaid:     in.AmountPaid,
			CashAmount:     in.CashAmount,
			CardAmount:     in.CardAmount,
			CreditAmount:   in.CreditAmount,
			Status:         saleStatus(in.SaleStateID),
			SoldAt:         in.SoldAt,
			SettledAt:      in.SettledAt,
			Notes:          in.Notes,
			SyncFields:     in.toModel(),
		}

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := upsertByGlobalID(tx, KindSale, &sale); err != nil {
				return err
			}
			for _, li := range in.Items {
				item := models.SaleItem{
					SaleID:         sale.ID,
					GlobalID:       li.GlobalID,
					ProductCode:    li.ProductCode,
					Description:    li.Description,
					Quantity:       li.Quantity,
					ListPrice:      li.ListPrice,
					UnitPrice:      li.UnitPrice,
					LineTotal:      li.LineTotal,
					DiscountAmount: li.DiscountAmount,
				}
				if err := upsertByGlobalID(tx, KindSaleItem, &item); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("[Sync/Sales] ❌ Upsert failed for ticket #%d (%s): %v", in.TicketNumber, in.GlobalID, err)
			return errResult(in.GlobalID, NewStorageError())
		}
		if wasInserted(sale.CreatedAt, sale.UpdatedAt) {
			log.Printf("[Sync/Sales] ✅ Sale synced: ID %d - ticket #%d - $%.2f", sale.ID, in.TicketNumber, sale.Total)
		}
		return okResult(in.GlobalID, sale.ID)
	})
}

// SyncExpenses ingests outgoing payments.
func (s *Service) SyncExpenses(ctx context.Context, items []ExpenseInput) BatchResult {
	return s.run(KindExpense, len(items), func(i int) ItemResult {
		in := items[i]
		if err := s.validateScope(ctx, in.TenantID, in.BranchID, &in.InputSyncFields); err != nil {
			return errResult(in.GlobalID, err)
		}
		if in.Amount == nil || *in.Amount <= 0 {
			return errResult(in.GlobalID, NewValidationError("amount must be a positive number"))
		}

		employeeID, serr := s.resolveOptional(ctx, RefEmployee, in.TenantID, in.EmployeeGlobalID)
		if serr != nil {
			return errResult(in.GlobalID, serr)
		}
		shiftID, serr := s.resolveOptional(ctx, RefShift, in.TenantID, in.ShiftGlobalID)
		if serr != nil {
			return errResult(in.GlobalID, serr)
		}

		expenseDate := time.Now().UTC()
		if in.ExpenseDate != nil {
			expenseDate = in.ExpenseDate.UTC()
		} else if in.CreatedLocalUTC != nil {
			expenseDate = in.CreatedLocalUTC.UTC()
		}
		now := time.Now().UTC()

		expense := models.Expense{
			TenantID:      in.TenantID,
			BranchID:      in.BranchID,
			EmployeeID:    employeeID,
			ShiftID:       shiftID,
			CategoryID:    in.CategoryID,
			PaymentTypeID: in.PaymentTypeID,
			Description:   in.Description,
			Amount:        *in.Amount,
			ExpenseDate:   expenseDate,
			SyncedAt:      &now,
			SyncFields:    in.toModel(),
		}
		if err := upsertByGlobalID(s.db.WithContext(ctx), KindExpense, &expense); err != nil {
			log.Printf("[Sync/Expenses] ❌ Upsert failed for %s: %v", in.GlobalID, err)
			return errResult(in.GlobalID, NewStorageError())
		}
		return okResult(in.GlobalID, expense.ID)
	})
}

// SyncCashMovements ingests drawer deposits and withdrawals.
func (s *Service) SyncCashMovements(ctx context.Context, items []CashMovementInput) BatchResult {
	return s.run(KindCashMovement, len(items), func(i int) ItemResult {
		in := items[i]
		if err := s.validateScope(ctx, in.TenantID, in.BranchID, &in.InputSyncFields); err != nil {
			return errResult(in.GlobalID, err)
		}
		if in.Direction != models.CashMovementDeposit && in.Direction != models.CashMovementWithdrawal {
			return errResult(in.GlobalID, NewValidationError("direction must be %q or %q",
				models.CashMovementDeposit, models.CashMovementWithdrawal))
		}
		if in.Amount == nil || *in.Amount <= 0 {
			return errResult(in.GlobalID, NewValidationError("amount must be a positive number"))
		}

		employeeID, serr := s.resolveOptional(ctx, RefEmployee, in.TenantID, in.EmployeeGlobalID)
		if serr != nil {
			return errResult(in.GlobalID, serr)
		}
		shiftID, serr := s.resolveOptional(ctx, RefShift, in.TenantID, in.ShiftGlobalID)
		if serr != nil {
			return errResult(in.GlobalID, serr)
		}

		movedAt := time.Now().UTC()
		if in.MovedAt != nil {
			movedAt = in.MovedAt.UTC()
		}
		movementType := in.MovementType
		if movementType == "" {
			movementType = "manual"
		}

		movement := models.CashMovement{
			TenantID:     in.TenantID,
			BranchID:     in.BranchID,
			ShiftID:      shiftID,
			EmployeeID:   employeeID,
			Direction:    in.Direction,
			MovementType: movementType,
			Amount:       *in.Amount,
			Description:  in.Description,
			MovedAt:      movedAt,
			SyncFields:   in.toModel(),
		}
		if err := upsertByGlobalID(s.db.WithContext(ctx), KindCashMovement, &movement); err != nil {
			log.Printf("[Sync/CashMovements] ❌ Upsert failed for %s: %v", in.GlobalID, err)
			return errResult(in.GlobalID, NewStorageError())
		}
		return okResult(in.GlobalID, movement.ID)
	})
}

// SyncTamperLogs ingests suspicious-weighing events. A first-time insert
// also publishes a scale_alert to the owning branch room so watching mobile
// clients see it immediately; that publish is best-effort and never fails
// the ingestion.
func (s *Service) SyncTamperLogs(ctx context.Context, items []TamperLogInput) BatchResult {
	return s.run(KindTamperLog, len(items), func(i int) ItemResult {
		in := items[i]
		if err := s.validateScope(ctx, in.TenantID, in.BranchID, &in.InputSyncFields); err != nil {
			return errResult(in.GlobalID, err)
		}

		employeeID, serr := s.resolveMandatory(ctx, RefEmployee, in.TenantID, in.EmployeeGlobalID)
		if serr != nil {
			return errResult(in.GlobalID, serr)
		}
		shiftID, serr := s.resolveOptional(ctx, RefShift, in.TenantID, in.ShiftGlobalID)
		if serr != nil {
			return errResult(in.GlobalID, serr)
		}
		var reviewedByID *uint
		if in.ReviewedByGlobalID != "" {
			reviewedByID, serr = s.resolveOptional(ctx, RefEmployee, in.TenantID, in.ReviewedByGlobalID)
			if serr != nil {
				return errResult(in.GlobalID, serr)
			}
		}

		severity := in.Severity
		if severity == "" {
			severity = "medium"
		}

		logRec := models.ScaleTamperLog{
			TenantID:       in.TenantID,
			BranchID:       in.BranchID,
			ShiftID:        shiftID,
			EmployeeID:     employeeID,
			OccurredAt:     in.OccurredAt,
			EventType:      in.EventType,
			WeightDetected: in.WeightDetected,
			Details:        in.Details,
			Severity:       severity,
			SuspicionLevel: in.SuspicionLevel,
			ScenarioCode:   in.ScenarioCode,
			RiskScore:      in.RiskScore,
			WasReviewed:    in.WasReviewed,
			ReviewNotes:    in.ReviewNotes,
			ReviewedAt:     in.ReviewedAt,
			ReviewedByID:   reviewedByID,
			SyncFields:     in.toModel(),
		}
		if err := upsertByGlobalID(s.db.WithContext(ctx), KindTamperLog, &logRec); err != nil {
			log.Printf("[Sync/TamperLogs] ❌ Upsert failed for %s: %v", in.GlobalID, err)
			return errResult(in.GlobalID, NewStorageError())
		}

		if wasInserted(logRec.CreatedAt, logRec.UpdatedAt) {
			log.Printf("[Sync/TamperLogs] ✅ Tamper log synced: ID %d - %s (%s)", logRec.ID, in.EventType, severity)
			s.publishTamperAlert(ctx, &logRec)
		}
		return okResult(in.GlobalID, logRec.ID)
	})
}

// SyncDisconnectionLogs ingests scale-offline events. A log often syncs
// twice: once while the outage is ongoing and again with reconnection data.
func (s *Service) SyncDisconnectionLogs(ctx context.Context, items []DisconnectionLogInput) BatchResult {
	return s.run(KindDisconnectionLog, len(items), func(i int) ItemResult {
		in := items[i]
		if err := s.validateScope(ctx, in.TenantID, in.BranchID, &in.InputSyncFields); err != nil {
			return errResult(in.GlobalID, err)
		}
		if in.DisconnectedAt == nil {
			return errResult(in.GlobalID, NewValidationError("disconnected_at is required"))
		}
		if in.Status == "" {
			return errResult(in.GlobalID, NewValidationError("status is required"))
		}

		employeeID, serr := s.resolveMandatory(ctx, RefEmployee, in.TenantID, in.EmployeeGlobalID)
		if serr != nil {
			return errResult(in.GlobalID, serr)
		}
		// A disconnection can legitimately happen outside any shift.
		shiftID, serr := s.resolveOptional(ctx, RefShift, in.TenantID, in.ShiftGlobalID)
		if serr != nil {
			return errResult(in.GlobalID, serr)
		}

		logRec := models.ScaleDisconnectionLog{
			TenantID:        in.TenantID,
			BranchID:        in.BranchID,
			ShiftID:         shiftID,
			EmployeeID:      employeeID,
			DisconnectedAt:  in.DisconnectedAt.UTC(),
			ReconnectedAt:   in.ReconnectedAt,
			DurationMinutes: in.DurationMinutes,
			Status:          in.Status,
			Reason:          in.Reason,
			Notes:           in.Notes,
			SyncFields:      in.toModel(),
		}
		if err := upsertByGlobalID(s.db.WithContext(ctx), KindDisconnectionLog, &logRec); err != nil {
			log.Printf("[Sync/ScaleDisconnections] ❌ Upsert failed for %s: %v", in.GlobalID, err)
			return errResult(in.GlobalID, NewStorageError())
		}
		return okResult(in.GlobalID, logRec.ID)
	})
}

// validateScope checks the fields shared by every kind: tenant and branch
// scope plus the idempotency fields. When the request carries a device
// token, the item's tenant must match the token's.
func (s *Service) validateScope(ctx context.Context, tenantID, branchID uint, f *InputSyncFields) *Error {
	if tenantID == 0 {
		return NewValidationError("tenant_id is required")
	}
	if branchID == 0 {
		return NewValidationError("branch_id is required")
	}
	if tokenTenant, ok := middleware.TenantFromContext(ctx); ok && tokenTenant != tenantID {
		return NewValidationError("tenant_id does not match the device token")
	}
	return f.validate()
}

// publishTamperAlert denormalizes the employee display name and fans the
// alert out to the branch room. Name resolution failure only degrades the
// name.
func (s *Service) publishTamperAlert(ctx context.Context, rec *models.ScaleTamperLog) {
	if s.publisher == nil {
		return
	}

	employeeName := "Unknown employee"
	var emp models.Employee
	if err := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", rec.EmployeeID, rec.TenantID).
		Take(&emp).Error; err != nil {
		log.Printf("[Sync/TamperLogs] ⚠️ Could not resolve employee name for alert: %v", err)
	} else {
		employeeName = emp.DisplayName()
	}

	occurredAt := time.Now().UTC()
	if rec.OccurredAt != nil {
		occurredAt = rec.OccurredAt.UTC()
	}

	s.publisher.PublishToBranch(rec.BranchID, "scale_alert", map[string]interface{}{
		"branchId":       rec.BranchID,
		"alertId":        rec.ID,
		"severity":       rec.Severity,
		"eventType":      rec.EventType,
		"weightDetected": rec.WeightDetected,
		"details":        rec.Details,
		"timestamp":      occurredAt.Format(time.RFC3339),
		"employeeName":   employeeName,
		"source":         "sync",
	})
	log.Printf("[Sync/TamperLogs] 📡 scale_alert published to branch %d (%s)", rec.BranchID, employeeName)
}

// saleStatus maps the terminal's local sale-state id to the server status.
// Only completed and liquidated sales count toward a cash cut.
func saleStatus(stateID int) string {
	switch stateID {
	case 1:
		return models.SaleStatusDraft
	case 2:
		return models.SaleStatusAssigned
	case 4:
		return models.SaleStatusCancelled
	case 5:
		return models.SaleStatusLiquidated
	default:
		return models.SaleStatusCompleted
	}
}
