package domain

import "time"

// SessionStatus represents the review state of a submitted work session.
type SessionStatus string

const (
	SessionActive   SessionStatus = "active"
	SessionApproved SessionStatus = "approved"
	SessionRejected SessionStatus = "rejected"
)

// validTransitions defines the allowed review state machine. Approved
// and rejected are terminal.
var validTransitions = map[SessionStatus][]SessionStatus{
	SessionActive: {SessionApproved, SessionRejected},
}

// CanTransitionTo reports whether moving from the current status to next is valid.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Event is the staffing event a work session was performed at.
type Event struct {
	Name     string    `json:"name" bson:"name"`
	Location string    `json:"location" bson:"location"`
	StartsAt time.Time `json:"starts_at" bson:"starts_at"`
	EndsAt   time.Time `json:"ends_at" bson:"ends_at"`
}

// WorkSession is a single reported stretch of work at an event.
type WorkSession struct {
	ID             string        `json:"id" bson:"_id,omitempty"`
	AccountID      string        `json:"account_id" bson:"account_id"`
	EmployeeName   string        `json:"employee_name" bson:"employee_name"`
	Event          Event         `json:"event" bson:"event"`
	StartTime      time.Time     `json:"start_time" bson:"start_time"`
	EndTime        time.Time     `json:"end_time" bson:"end_time"`
	TotalHours     float64       `json:"total_hours" bson:"total_hours"`
	HourlyRate     float64       `json:"hourly_rate" bson:"hourly_rate"`
	Status         SessionStatus `json:"status" bson:"status"`
	Notes          string        `json:"notes,omitempty" bson:"notes,omitempty"`
	IdempotencyKey string        `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at"`
}

// SessionEvent records a review decision for the audit trail.
type SessionEvent struct {
	SessionID string
	Status    SessionStatus
	Actor     string // account id of the reviewer
	Timestamp time.Time
}
