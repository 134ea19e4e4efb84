package ports

import (
	"context"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
)

// ReportRepository persists submitted work sessions.
type ReportRepository interface {
	Create(ctx context.Context, session *domain.WorkSession) (*domain.WorkSession, error)
	FindByID(ctx context.Context, id string) (*domain.WorkSession, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.WorkSession, error)
	List(ctx context.Context) ([]domain.WorkSession, error)
	UpdateStatus(ctx context.Context, id string, status domain.SessionStatus) error
}

// AuditRepository appends review decisions to the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.SessionEvent) error
}
