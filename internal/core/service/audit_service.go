package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
	"github.com/evento-nomina/payroll-system/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that appends review events to
// the audit trail.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Process(ctx context.Context, event domain.SessionEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("audit event: %w", err)
	}
	s.log.Debug().
		Str("session_id", event.SessionID).
		Str("status", string(event.Status)).
		Msg("audit event recorded")
	return nil
}
