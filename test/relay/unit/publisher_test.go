// Package unit contains unit tests for the outbox relay. The relay bridges
// the PostgreSQL outbox table and RabbitMQ; these tests cover the publisher
// contract and the relay's probe logic without either dependency.
package unit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/adapters/outbox"
	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/core/ports"
	"github.com/AchilleasB/baby-kliniek/clinic-service/test/mocks"
)

func TestMockPublisher_Publish(t *testing.T) {
	publisher := mocks.NewMockEventPublisher()

	payload, _ := json.Marshal(ports.AppointmentEvent{
		AppointmentID: "appt-1",
		PatientID:     "patient-1",
		DoctorID:      "doctor-1",
		Date:          "2026-09-01",
		Time:          "09:00",
	})

	ctx := context.Background()
	if err := publisher.Publish(ctx, ports.EventAppointmentCreated, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(publisher.PublishedTypes) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.PublishedTypes))
	}
	if publisher.PublishedTypes[0] != ports.EventAppointmentCreated {
		t.Errorf("expected type %q, got %q", ports.EventAppointmentCreated, publisher.PublishedTypes[0])
	}

	var event ports.AppointmentEvent
	if err := json.Unmarshal(publisher.PublishedPayloads[0], &event); err != nil {
		t.Fatalf("payload not preserved: %v", err)
	}
	if event.AppointmentID != "appt-1" {
		t.Errorf("expected appointment appt-1, got %q", event.AppointmentID)
	}
}

func TestMockPublisher_ErrorInjection(t *testing.T) {
	publisher := mocks.NewMockEventPublisher()
	publisher.PublishError = errors.New("broker unavailable")

	err := publisher.Publish(context.Background(), ports.EventAppointmentCancelled, []byte(`{}`))
	if err == nil {
		t.Fatal("expected injected error")
	}
	if publisher.PublishCallCount != 1 {
		t.Errorf("expected call to be tracked, got %d", publisher.PublishCallCount)
	}
	if len(publisher.PublishedTypes) != 0 {
		t.Errorf("failed publish must not be recorded as delivered, got %d", len(publisher.PublishedTypes))
	}
}

func TestMockPublisher_ConcurrentPublish(t *testing.T) {
	publisher := mocks.NewMockEventPublisher()

	ctx := context.Background()
	const numGoroutines = 100

	done := make(chan bool, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			_ = publisher.Publish(ctx, ports.EventAppointmentCreated, []byte(`{}`))
			done <- true
		}()
	}

	for i := 0; i < numGoroutines; i++ {
		<-done
	}

	if publisher.PublishCallCount != numGoroutines {
		t.Errorf("expected %d calls, got %d", numGoroutines, publisher.PublishCallCount)
	}
}

// A freshly constructed relay is live and ready: the breaker is closed and
// nothing has gone stale yet.
func TestRelay_InitialProbeState(t *testing.T) {
	relay := outbox.NewRelay(nil, "", mocks.NewMockEventPublisher())

	if !relay.IsHealthy() {
		t.Error("expected new relay to report healthy")
	}
	if !relay.IsReady() {
		t.Error("expected new relay to report ready")
	}
}
