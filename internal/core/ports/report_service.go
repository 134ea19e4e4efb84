package ports

import (
	"context"
	"time"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
)

// EventInput describes the staffing event a session was worked at.
type EventInput struct {
	Name     string
	Location string
	StartsAt time.Time
	EndsAt   time.Time
}

// SubmitReportInput carries all data needed to file a work session.
type SubmitReportInput struct {
	AccountID      string
	EmployeeName   string
	Event          EventInput
	StartTime      time.Time
	EndTime        time.Time
	HourlyRate     float64
	Notes          string
	IdempotencyKey string
}

type ReportService interface {
	Submit(ctx context.Context, input SubmitReportInput) (*domain.WorkSession, error)
	List(ctx context.Context) ([]domain.WorkSession, error)
	// Decide applies an approve/reject transition and records it in the
	// audit trail.
	Decide(ctx context.Context, id string, status domain.SessionStatus, actor string) (*domain.WorkSession, error)
}

// AuditService persists a single review event taken off the queue.
type AuditService interface {
	Process(ctx context.Context, event domain.SessionEvent) error
}

// AuditSink accepts review events for asynchronous persistence.
type AuditSink interface {
	Enqueue(event domain.SessionEvent)
}
