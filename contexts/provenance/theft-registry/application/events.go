package application

import (
	"context"
	"time"

	"provenance/contexts/provenance/theft-registry/ports"
	contractsv1 "provenance/contracts/gen/events/v1"
)

const SourceService = "theft-registry"

func NewEvent(
	ctx context.Context,
	ids ports.IDGenerator,
	eventType string,
	serialID string,
	occurredAt time.Time,
	data any,
) (contractsv1.Envelope, error) {
	eventID, err := ids.NewID(ctx)
	if err != nil {
		return contractsv1.Envelope{}, err
	}
	return contractsv1.NewEnvelope(eventID, eventType, SourceService, "serial_id", serialID, occurredAt, data)
}

func Now(clock ports.Clock) time.Time {
	if clock != nil {
		return clock.Now().UTC()
	}
	return time.Now().UTC()
}
