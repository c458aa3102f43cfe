package httpadapter

import (
	"context"
	"log/slog"

	application "provenance/contexts/identity-access/minter-registry/application"
	"provenance/contexts/identity-access/minter-registry/application/commands"
	"provenance/contexts/identity-access/minter-registry/application/queries"
	"provenance/contexts/identity-access/minter-registry/domain/entities"
	httptransport "provenance/contexts/identity-access/minter-registry/transport/http"
	ledger "provenance/contracts/ledger/v1"
)

// Handler maps HTTP DTOs to application commands/queries.
type Handler struct {
	AddMinter    commands.AddMinterUseCase
	RemoveMinter commands.RemoveMinterUseCase
	LookupMinter queries.LookupMinterUseCase
	Logger       *slog.Logger
}

func (h Handler) AddMinterHandler(
	ctx context.Context,
	callerID string,
	request httptransport.AddMinterRequest,
) (httptransport.MinterResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Debug("http add minter received",
		"event", "minter_http_add_received",
		"module", "identity-access/minter-registry",
		"layer", "transport",
		"caller", callerID,
		"minter", request.Address,
	)

	caller, err := ledger.ParsePrincipal(callerID)
	if err != nil {
		return httptransport.MinterResponse{}, err
	}
	address, err := ledger.ParseOptionalPrincipal(request.Address)
	if err != nil {
		return httptransport.MinterResponse{}, err
	}

	profile, err := h.AddMinter.Execute(ctx, commands.AddMinterCommand{
		Caller:     caller,
		Address:    address,
		Brand:      request.Brand,
		Location:   request.Location,
		RoyaltyBps: ledger.BasisPoints(request.RoyaltyBps),
	})
	if err != nil {
		return httptransport.MinterResponse{}, err
	}
	return toMinterResponse(profile), nil
}

func (h Handler) RemoveMinterHandler(ctx context.Context, callerID string, addressRaw string) error {
	caller, err := ledger.ParsePrincipal(callerID)
	if err != nil {
		return err
	}
	address, err := ledger.ParsePrincipal(addressRaw)
	if err != nil {
		return err
	}
	return h.RemoveMinter.Execute(ctx, commands.RemoveMinterCommand{
		Caller:  caller,
		Address: address,
	})
}

func (h Handler) GetMinterHandler(ctx context.Context, addressRaw string) (httptransport.MinterResponse, error) {
	address, err := ledger.ParsePrincipal(addressRaw)
	if err != nil {
		return httptransport.MinterResponse{}, err
	}
	lookup, err := h.LookupMinter.Execute(ctx, address)
	if err != nil {
		return httptransport.MinterResponse{}, err
	}
	return httptransport.MinterResponse{
		Address:    lookup.Address.Hex(),
		IsMinter:   lookup.Registered,
		Brand:      lookup.Brand,
		Location:   lookup.Location,
		RoyaltyBps: uint32(lookup.RoyaltyBps),
	}, nil
}

func toMinterResponse(profile entities.MinterProfile) httptransport.MinterResponse {
	addedAt := profile.AddedAt
	return httptransport.MinterResponse{
		Address:    profile.Address.Hex(),
		IsMinter:   true,
		Brand:      profile.Brand,
		Location:   profile.Location,
		RoyaltyBps: uint32(profile.RoyaltyBps),
		AddedAt:    &addedAt,
	}
}
