package postgresadapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"provenance/contexts/provenance/asset-registry/domain/entities"
	domainerrors "provenance/contexts/provenance/asset-registry/domain/errors"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
	"provenance/internal/platform/db"
)

func envelope(t *testing.T, id string, eventType string) contractsv1.Envelope {
	t.Helper()
	event, err := contractsv1.NewEnvelope(id, eventType, "test", "serial_id", "RLX-1", time.Now(), map[string]string{})
	if err != nil {
		t.Fatalf("envelope: %v", err)
	}
	return event
}

func TestRepositoryOnSQLite(t *testing.T) {
	conn, err := db.ConnectSQLite(":memory:")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	repo := NewRepository(conn.DB, nil)
	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	settings, err := repo.GetSettings(ctx)
	if err != nil || !ledger.IsZero(settings.MarketplaceOperator) || settings.LastTokenID != 0 {
		t.Fatalf("expected empty settings, got %+v %v", settings, err)
	}

	first, _ := repo.AllocateTokenID(ctx)
	second, _ := repo.AllocateTokenID(ctx)
	if first != 1 || second != 2 {
		t.Fatalf("expected sequential ids, got %d %d", first, second)
	}

	minter, _ := ledger.ParsePrincipal("0x00000000000000000000000000000000000000b1")
	owner, _ := ledger.ParsePrincipal("0x00000000000000000000000000000000000000c1")
	operator, _ := ledger.ParsePrincipal("0x00000000000000000000000000000000000000d1")

	asset, err := entities.NewAsset("RLX-1", first, minter, owner, "ipfs://x", time.Now())
	if err != nil {
		t.Fatalf("asset: %v", err)
	}
	if err := repo.CreateAssetWithOutbox(ctx, asset, envelope(t, "evt-1", contractsv1.EventTypeTokenMinted)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.CreateAssetWithOutbox(ctx, asset, envelope(t, "evt-2", contractsv1.EventTypeTokenMinted)); !errors.Is(err, domainerrors.ErrSerialAlreadyMinted) {
		t.Fatalf("expected duplicate serial, got %v", err)
	}

	if err := repo.SaveMarketplaceOperatorWithOutbox(ctx, operator, envelope(t, "evt-3", contractsv1.EventTypeMarketplaceOperatorSet)); err != nil {
		t.Fatalf("save operator: %v", err)
	}
	settings, _ = repo.GetSettings(ctx)
	if settings.MarketplaceOperator != operator || settings.LastTokenID != 2 {
		t.Fatalf("operator save must keep the token counter, got %+v", settings)
	}

	asset.ApprovedOperator = operator
	if err := repo.UpdateAsset(ctx, asset); err != nil {
		t.Fatalf("update: %v", err)
	}
	stored, err := repo.GetAsset(ctx, "RLX-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.ApprovedOperator != operator || stored.Minter != minter || stored.TokenID != 1 {
		t.Fatalf("unexpected stored asset %+v", stored)
	}

	if err := repo.DeleteAssetWithOutbox(ctx, "RLX-1", envelope(t, "evt-4", contractsv1.EventTypeTokenDestroyed)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetAsset(ctx, "RLX-1"); !errors.Is(err, domainerrors.ErrTokenNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	pending, _ := repo.Outbox().ListPending(ctx, 10)
	if len(pending) != 3 {
		t.Fatalf("expected three outbox rows, got %d", len(pending))
	}
}
