package bootstrap

import (
	"context"

	marketports "provenance/contexts/commerce/resale-marketplace/ports"
	minterregistry "provenance/contexts/identity-access/minter-registry"
	assetregistry "provenance/contexts/provenance/asset-registry"
	theftregistry "provenance/contexts/provenance/theft-registry"
	ledger "provenance/contracts/ledger/v1"
)

// Bridges adapt one context's module to the port another context declares.
// They are the only place contexts meet.

type minterDirectory struct {
	minters minterregistry.Module
}

func (b minterDirectory) IsMinter(ctx context.Context, principal ledger.Principal) (bool, error) {
	return b.minters.IsMinter(ctx, principal)
}

type royaltySchedule struct {
	minters minterregistry.Module
}

func (b royaltySchedule) RoyaltyRate(ctx context.Context, minter ledger.Principal) (ledger.BasisPoints, error) {
	return b.minters.GetRoyaltyPercentage(ctx, minter)
}

type assetOwnership struct {
	assets assetregistry.Module
}

func (b assetOwnership) OwnerOf(ctx context.Context, serialID string) (ledger.Principal, error) {
	return b.assets.OwnerOfToken(ctx, serialID)
}

type assetLedger struct {
	assets assetregistry.Module
}

func (b assetLedger) GetAsset(ctx context.Context, serialID string) (marketports.AssetView, error) {
	asset, err := b.assets.GetAsset(ctx, serialID)
	if err != nil {
		return marketports.AssetView{}, err
	}
	return marketports.AssetView{
		SerialID:         asset.SerialID,
		TokenID:          asset.TokenID,
		Minter:           asset.Minter,
		Owner:            asset.Owner,
		ApprovedOperator: asset.ApprovedOperator,
	}, nil
}

func (b assetLedger) Transfer(ctx context.Context, operator ledger.Principal, serialID string, newOwner ledger.Principal) error {
	_, err := b.assets.Transfer(ctx, operator, serialID, newOwner)
	return err
}

type theftLookup struct {
	theft theftregistry.Module
}

func (b theftLookup) IsStolen(ctx context.Context, serialID string) (bool, error) {
	return b.theft.IsStolen(ctx, serialID)
}

var (
	_ marketports.AssetLedger     = assetLedger{}
	_ marketports.TheftLookup     = theftLookup{}
	_ marketports.RoyaltySchedule = royaltySchedule{}
)
