package handler

import "time"

type eventRequest struct {
	Name     string    `json:"name" validate:"required"`
	Location string    `json:"location" validate:"required"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
}

type submitReportRequest struct {
	Event      eventRequest `json:"event" validate:"required"`
	StartTime  time.Time    `json:"start_time" validate:"required"`
	EndTime    time.Time    `json:"end_time" validate:"required"`
	HourlyRate float64      `json:"hourly_rate" validate:"required,gt=0"`
	Notes      string       `json:"notes"`
}
