package ports

import (
	"context"
	"time"
)

const (
	EventAppointmentCreated   = "appointment.created"
	EventAppointmentCancelled = "appointment.cancelled"
)

// AppointmentEvent is the payload written to the outbox when an appointment
// is booked or cancelled. Downstream services (reminders, reporting) consume
// it from the queue.
type AppointmentEvent struct {
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`
	DoctorID      string `json:"doctor_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Reason        string `json:"reason,omitempty"`
}

// EventPublisher delivers an outbox row to the message broker. The relay is
// the only caller; the API process never publishes directly.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload []byte) error
}

// Cache is the small read-through cache used by the dashboard projections.
// A miss is (value="", ok=false, err=nil); infrastructure failures come back
// as errors and callers degrade to direct reads.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// TokenBlacklist checks whether a bearer token has been revoked by the
// identity service (logout, discharge).
type TokenBlacklist interface {
	IsBlacklisted(ctx context.Context, tokenHash string) (bool, error)
}
