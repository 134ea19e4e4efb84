package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/evento-nomina/payroll-system/internal/api/metrics"
	"github.com/evento-nomina/payroll-system/internal/core/domain"
	"github.com/evento-nomina/payroll-system/internal/core/ports"
)

// HeaderIdempotencyKey deduplicates report submissions retried by
// flaky clients.
const HeaderIdempotencyKey = "Idempotency-Key"

// ReportHandler exposes the work-session report lifecycle over HTTP.
type ReportHandler struct {
	reports  ports.ReportService
	accounts ports.AccountRepository
	log      zerolog.Logger
}

func NewReportHandler(reports ports.ReportService, accounts ports.AccountRepository, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, accounts: accounts, log: log}
}

// Submit files a new work session for the authenticated employee.
func (h *ReportHandler) Submit(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req submitReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// The display name comes from the stored profile, not from the
	// request, so a client cannot file sessions under another name.
	_, profile, err := h.accounts.FindByID(c.Request().Context(), identity.AccountID)
	if err != nil {
		return err
	}

	session, err := h.reports.Submit(c.Request().Context(), ports.SubmitReportInput{
		AccountID:    identity.AccountID,
		EmployeeName: profile.FullName,
		Event: ports.EventInput{
			Name:     req.Event.Name,
			Location: req.Event.Location,
			StartsAt: req.Event.StartsAt,
			EndsAt:   req.Event.EndsAt,
		},
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		HourlyRate:     req.HourlyRate,
		Notes:          req.Notes,
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return err
	}

	metrics.ReportsSubmittedTotal.Inc()
	h.log.Info().
		Str("session_id", session.ID).
		Str("account_id", identity.AccountID).
		Msg("work session submitted")

	return c.JSON(http.StatusCreated, session)
}

// List returns all work sessions, newest first.
func (h *ReportHandler) List(c echo.Context) error {
	sessions, err := h.reports.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessions)
}

// Approve marks a pending session approved.
func (h *ReportHandler) Approve(c echo.Context) error {
	return h.decide(c, domain.SessionApproved)
}

// Reject marks a pending session rejected.
func (h *ReportHandler) Reject(c echo.Context) error {
	return h.decide(c, domain.SessionRejected)
}

func (h *ReportHandler) decide(c echo.Context, status domain.SessionStatus) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	session, err := h.reports.Decide(c.Request().Context(), c.Param("id"), status, identity.AccountID)
	if err != nil {
		return err
	}

	metrics.ReportsDecidedTotal.WithLabelValues(string(status)).Inc()
	return c.JSON(http.StatusOK, session)
}

// Export streams every work session as a CSV payroll sheet.
func (h *ReportHandler) Export(c echo.Context) error {
	sessions, err := h.reports.List(c.Request().Context())
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="payroll-%s.csv"`, time.Now().Format("2006-01-02")))
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	header := []string{"session_id", "employee", "event", "location", "start_time", "end_time", "total_hours", "hourly_rate", "amount", "status"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range sessions {
		record := []string{
			s.ID,
			s.EmployeeName,
			s.Event.Name,
			s.Event.Location,
			s.StartTime.Format(time.RFC3339),
			s.EndTime.Format(time.RFC3339),
			strconv.FormatFloat(s.TotalHours, 'f', 2, 64),
			strconv.FormatFloat(s.HourlyRate, 'f', 2, 64),
			strconv.FormatFloat(s.TotalHours*s.HourlyRate, 'f', 2, 64),
			string(s.Status),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
