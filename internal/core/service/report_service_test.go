package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
	"github.com/evento-nomina/payroll-system/internal/core/ports"
)

type stubReportRepo struct {
	sessions map[string]*domain.WorkSession
	nextID   int
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{sessions: make(map[string]*domain.WorkSession)}
}

func (r *stubReportRepo) Create(_ context.Context, session *domain.WorkSession) (*domain.WorkSession, error) {
	r.nextID++
	s := *session
	s.ID = fmt.Sprintf("ws_%d", r.nextID)
	r.sessions[s.ID] = &s
	out := s
	return &out, nil
}

func (r *stubReportRepo) FindByID(_ context.Context, id string) (*domain.WorkSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	out := *s
	return &out, nil
}

func (r *stubReportRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.WorkSession, error) {
	for _, s := range r.sessions {
		if s.IdempotencyKey == key {
			out := *s
			return &out, nil
		}
	}
	return nil, domain.ErrReportNotFound
}

func (r *stubReportRepo) List(_ context.Context) ([]domain.WorkSession, error) {
	out := make([]domain.WorkSession, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubReportRepo) UpdateStatus(_ context.Context, id string, status domain.SessionStatus) error {
	s, ok := r.sessions[id]
	if !ok {
		return domain.ErrReportNotFound
	}
	s.Status = status
	return nil
}

type recordingSink struct {
	events []domain.SessionEvent
}

func (s *recordingSink) Enqueue(event domain.SessionEvent) {
	s.events = append(s.events, event)
}

func submitInput() ports.SubmitReportInput {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return ports.SubmitReportInput{
		AccountID:    "acc_1",
		EmployeeName: "Alice",
		Event: ports.EventInput{
			Name:     "Summer Gala",
			Location: "Civic Hall",
			StartsAt: start,
			EndsAt:   start.Add(10 * time.Hour),
		},
		StartTime:  start,
		EndTime:    start.Add(7*time.Hour + 30*time.Minute),
		HourlyRate: 18.50,
	}
}

func TestReportService_Submit(t *testing.T) {
	repo := newStubReportRepo()
	sink := &recordingSink{}
	svc := NewReportService(repo, sink, zerolog.Nop())

	session, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if session.Status != domain.SessionActive {
		t.Fatalf("expected active status, got %s", session.Status)
	}
	if session.TotalHours != 7.5 {
		t.Fatalf("expected 7.5 hours, got %v", session.TotalHours)
	}
}

func TestReportService_Submit_InvalidTimeRange(t *testing.T) {
	svc := NewReportService(newStubReportRepo(), &recordingSink{}, zerolog.Nop())

	input := submitInput()
	input.EndTime = input.StartTime
	if _, err := svc.Submit(context.Background(), input); !errors.Is(err, domain.ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
}

func TestReportService_Submit_IdempotentReplay(t *testing.T) {
	repo := newStubReportRepo()
	svc := NewReportService(repo, &recordingSink{}, zerolog.Nop())

	input := submitInput()
	input.IdempotencyKey = "key-123"

	first, err := svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("replay submit: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("replay created a new session: %s vs %s", first.ID, second.ID)
	}
	if len(repo.sessions) != 1 {
		t.Fatalf("expected a single stored session, got %d", len(repo.sessions))
	}
}

func TestReportService_Decide(t *testing.T) {
	repo := newStubReportRepo()
	sink := &recordingSink{}
	svc := NewReportService(repo, sink, zerolog.Nop())

	session, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	decided, err := svc.Decide(context.Background(), session.ID, domain.SessionApproved, "admin_1")
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != domain.SessionApproved {
		t.Fatalf("expected approved, got %s", decided.Status)
	}
	if len(sink.events) != 1 || sink.events[0].SessionID != session.ID || sink.events[0].Actor != "admin_1" {
		t.Fatalf("audit event not enqueued: %+v", sink.events)
	}
}

func TestReportService_Decide_TerminalState(t *testing.T) {
	repo := newStubReportRepo()
	svc := NewReportService(repo, &recordingSink{}, zerolog.Nop())

	session, err := svc.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Decide(context.Background(), session.ID, domain.SessionRejected, "admin_1"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := svc.Decide(context.Background(), session.ID, domain.SessionApproved, "admin_1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestReportService_Decide_NotFound(t *testing.T) {
	svc := NewReportService(newStubReportRepo(), &recordingSink{}, zerolog.Nop())

	if _, err := svc.Decide(context.Background(), "missing", domain.SessionApproved, "admin_1"); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}
