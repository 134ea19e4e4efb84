package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
	"github.com/evento-nomina/payroll-system/internal/core/ports"
)

type reportService struct {
	repo  ports.ReportRepository
	audit ports.AuditSink
	log   zerolog.Logger
}

// NewReportService returns a ReportService implementation.
func NewReportService(repo ports.ReportRepository, audit ports.AuditSink, log zerolog.Logger) ports.ReportService {
	return &reportService{repo: repo, audit: audit, log: log}
}

// Submit files a new work session. If an idempotency key is provided and
// already seen, the previously created session is returned without side
// effects.
func (s *reportService) Submit(ctx context.Context, input ports.SubmitReportInput) (*domain.WorkSession, error) {
	if !input.EndTime.After(input.StartTime) {
		return nil, domain.ErrInvalidTimeRange
	}

	if input.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		if err == nil && existing != nil {
			s.log.Info().Str("idempotency_key", input.IdempotencyKey).Str("session_id", existing.ID).Msg("idempotent replay")
			return existing, nil
		}
	}

	session := &domain.WorkSession{
		AccountID:    input.AccountID,
		EmployeeName: input.EmployeeName,
		Event: domain.Event{
			Name:     input.Event.Name,
			Location: input.Event.Location,
			StartsAt: input.Event.StartsAt,
			EndsAt:   input.Event.EndsAt,
		},
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		TotalHours:     input.EndTime.Sub(input.StartTime).Hours(),
		HourlyRate:     input.HourlyRate,
		Status:         domain.SessionActive,
		Notes:          input.Notes,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, session)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create work session")
		return nil, err
	}

	s.log.Info().Str("session_id", created.ID).Str("account_id", input.AccountID).Msg("work session submitted")
	return created, nil
}

func (s *reportService) List(ctx context.Context) ([]domain.WorkSession, error) {
	return s.repo.List(ctx)
}

// Decide applies an approve/reject transition. The state machine only
// permits decisions on active sessions; approved and rejected are
// terminal.
func (s *reportService) Decide(ctx context.Context, id string, status domain.SessionStatus, actor string) (*domain.WorkSession, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !session.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, session.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("decide report: %w", err)
	}
	session.Status = status

	s.audit.Enqueue(domain.SessionEvent{
		SessionID: id,
		Status:    status,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
	})

	s.log.Info().Str("session_id", id).Str("status", string(status)).Str("actor", actor).Msg("work session decided")
	return session, nil
}
