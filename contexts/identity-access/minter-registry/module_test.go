package minterregistry_test

import (
	"context"
	"errors"
	"testing"

	minterregistry "provenance/contexts/identity-access/minter-registry"
	"provenance/contexts/identity-access/minter-registry/application/commands"
	domainerrors "provenance/contexts/identity-access/minter-registry/domain/errors"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
)

var (
	owner    = mustPrincipal("0x00000000000000000000000000000000000000a1")
	rolex    = mustPrincipal("0x00000000000000000000000000000000000000b1")
	stranger = mustPrincipal("0x00000000000000000000000000000000000000c1")
)

func mustPrincipal(raw string) ledger.Principal {
	p, err := ledger.ParsePrincipal(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func addRolex(module minterregistry.Module) error {
	_, err := module.AddMinter(context.Background(), commands.AddMinterCommand{
		Caller:     owner,
		Address:    rolex,
		Brand:      "Rolex",
		Location:   "Geneva",
		RoyaltyBps: 500,
	})
	return err
}

func TestAddMinterRegistersProfileAndEmitsEvent(t *testing.T) {
	module := minterregistry.NewInMemoryModule(owner, nil)
	ctx := context.Background()

	if err := addRolex(module); err != nil {
		t.Fatalf("add minter: %v", err)
	}

	isMinter, err := module.IsMinter(ctx, rolex)
	if err != nil || !isMinter {
		t.Fatalf("expected registered minter, got %v %v", isMinter, err)
	}
	rate, _ := module.GetRoyaltyPercentage(ctx, rolex)
	if rate != 500 {
		t.Fatalf("expected 500 bps, got %d", rate)
	}
	brand, _ := module.GetBrand(ctx, rolex)
	location, _ := module.GetLocation(ctx, rolex)
	if brand != "Rolex" || location != "Geneva" {
		t.Fatalf("unexpected labels %q %q", brand, location)
	}

	messages := module.Store.Outbox().Messages()
	if len(messages) != 1 || messages[0].EventType != contractsv1.EventTypeMinterAdded {
		t.Fatalf("expected one MinterAdded event, got %+v", messages)
	}
	envelope, err := messages[0].Envelope()
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.PartitionKey != rolex.Hex() || envelope.SourceService != "minter-registry" {
		t.Fatalf("unexpected envelope %+v", envelope)
	}
}

func TestAddMinterRejectsEachInvalidInputDistinctly(t *testing.T) {
	module := minterregistry.NewInMemoryModule(owner, nil)
	if err := addRolex(module); err != nil {
		t.Fatalf("seed minter: %v", err)
	}

	cases := []struct {
		name string
		cmd  commands.AddMinterCommand
		want error
	}{
		{"not owner", commands.AddMinterCommand{Caller: stranger, Address: stranger, Brand: "b", Location: "l"}, domainerrors.ErrNotRegistryOwner},
		{"royalty above 100%", commands.AddMinterCommand{Caller: owner, Address: stranger, Brand: "b", Location: "l", RoyaltyBps: 10001}, domainerrors.ErrRoyaltyTooHigh},
		{"empty brand", commands.AddMinterCommand{Caller: owner, Address: stranger, Brand: " ", Location: "l"}, domainerrors.ErrEmptyBrand},
		{"empty location", commands.AddMinterCommand{Caller: owner, Address: stranger, Brand: "b"}, domainerrors.ErrEmptyLocation},
		{"blank location", commands.AddMinterCommand{Caller: owner, Address: stranger, Brand: "b", Location: "\t\n"}, domainerrors.ErrEmptyLocation},
		{"zero address", commands.AddMinterCommand{Caller: owner, Brand: "b", Location: "l"}, domainerrors.ErrZeroMinter},
		{"duplicate", commands.AddMinterCommand{Caller: owner, Address: rolex, Brand: "b", Location: "l"}, domainerrors.ErrMinterExists},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := module.AddMinter(context.Background(), tc.cmd)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if !errors.Is(domainerrors.ErrRoyaltyTooHigh, ledger.ErrValidation) {
		t.Fatalf("royalty fault must be a validation error")
	}
	if !errors.Is(domainerrors.ErrNotRegistryOwner, ledger.ErrAuthorization) {
		t.Fatalf("owner fault must be an authorization error")
	}
	if len(module.Store.Outbox().Messages()) != 1 {
		t.Fatalf("failed registrations must not emit events")
	}
}

func TestAddMinterAcceptsFullRoyalty(t *testing.T) {
	module := minterregistry.NewInMemoryModule(owner, nil)
	_, err := module.AddMinter(context.Background(), commands.AddMinterCommand{
		Caller: owner, Address: rolex, Brand: "Rolex", Location: "Geneva", RoyaltyBps: 10000,
	})
	if err != nil {
		t.Fatalf("10000 bps is within bounds: %v", err)
	}
}

func TestAddMinterStoresTrimmedLabels(t *testing.T) {
	module := minterregistry.NewInMemoryModule(owner, nil)
	ctx := context.Background()
	_, err := module.AddMinter(ctx, commands.AddMinterCommand{
		Caller: owner, Address: rolex, Brand: "  Rolex ", Location: "\tGeneva", RoyaltyBps: 500,
	})
	if err != nil {
		t.Fatalf("add minter: %v", err)
	}
	brand, _ := module.GetBrand(ctx, rolex)
	location, _ := module.GetLocation(ctx, rolex)
	if brand != "Rolex" || location != "Geneva" {
		t.Fatalf("expected trimmed labels, got %q %q", brand, location)
	}
}

func TestRemoveMinter(t *testing.T) {
	module := minterregistry.NewInMemoryModule(owner, nil)
	ctx := context.Background()
	if err := addRolex(module); err != nil {
		t.Fatalf("seed minter: %v", err)
	}

	if err := module.RemoveMinter(ctx, stranger, rolex); !errors.Is(err, domainerrors.ErrNotRegistryOwner) {
		t.Fatalf("expected owner check, got %v", err)
	}
	if err := module.RemoveMinter(ctx, owner, rolex); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := module.RemoveMinter(ctx, owner, rolex); !errors.Is(err, domainerrors.ErrMinterNotFound) {
		t.Fatalf("expected not found on second remove, got %v", err)
	}

	isMinter, _ := module.IsMinter(ctx, rolex)
	rate, _ := module.GetRoyaltyPercentage(ctx, rolex)
	brand, _ := module.GetBrand(ctx, rolex)
	if isMinter || rate != 0 || brand != "" {
		t.Fatalf("removed minter must read as unregistered, got %v %d %q", isMinter, rate, brand)
	}
	if _, err := module.Queries.GetMinter.Execute(ctx, rolex); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected not found for full profile read, got %v", err)
	}

	messages := module.Store.Outbox().Messages()
	if len(messages) != 2 || messages[1].EventType != contractsv1.EventTypeMinterRemoved {
		t.Fatalf("expected MinterAdded then MinterRemoved, got %+v", messages)
	}
}

func TestZeroOwnerCannotAdminister(t *testing.T) {
	module := minterregistry.NewInMemoryModule(ledger.ZeroPrincipal, nil)
	_, err := module.AddMinter(context.Background(), commands.AddMinterCommand{
		Caller: ledger.ZeroPrincipal, Address: rolex, Brand: "b", Location: "l",
	})
	if !errors.Is(err, domainerrors.ErrNotRegistryOwner) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}
