package application

import (
	"context"
	"time"

	"provenance/contexts/commerce/resale-marketplace/ports"
	contractsv1 "provenance/contracts/gen/events/v1"
)

const SourceService = "resale-marketplace"

func NewEvent(
	ctx context.Context,
	ids ports.IDGenerator,
	eventType string,
	partitionKeyPath string,
	partitionKey string,
	occurredAt time.Time,
	data any,
) (contractsv1.Envelope, error) {
	eventID, err := ids.NewID(ctx)
	if err != nil {
		return contractsv1.Envelope{}, err
	}
	return contractsv1.NewEnvelope(eventID, eventType, SourceService, partitionKeyPath, partitionKey, occurredAt, data)
}

func Now(clock ports.Clock) time.Time {
	if clock != nil {
		return clock.Now().UTC()
	}
	return time.Now().UTC()
}

// Policy holds the purchase rules that are configurable per deployment.
type Policy struct {
	// RecheckStolenAtPurchase rejects purchases of assets flagged after
	// listing.
	RecheckStolenAtPurchase bool
	// EnforceDesignatedBuyer restricts purchases to a listing's designated
	// buyer when one is set.
	EnforceDesignatedBuyer bool
}
