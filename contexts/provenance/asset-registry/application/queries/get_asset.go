package queries

import (
	"context"
	"strings"

	"provenance/contexts/provenance/asset-registry/domain/entities"
	"provenance/contexts/provenance/asset-registry/ports"
	ledger "provenance/contracts/ledger/v1"
)

// GetAssetUseCase is the existence-checked read behind ownerOfToken,
// minterOfToken, getTokenFromSerialID and getApproved.
type GetAssetUseCase struct {
	Repository ports.Repository
	Transactor ports.Transactor
}

func (u GetAssetUseCase) Execute(ctx context.Context, serialID string) (entities.Asset, error) {
	serialID = strings.TrimSpace(serialID)
	var asset entities.Asset
	err := u.Transactor.View(ctx, func(ctx context.Context) error {
		found, err := u.Repository.GetAsset(ctx, serialID)
		if err != nil {
			return err
		}
		asset = found
		return nil
	})
	return asset, err
}

type GetMarketplaceUseCase struct {
	Repository ports.Repository
	Transactor ports.Transactor
}

func (u GetMarketplaceUseCase) Execute(ctx context.Context) (ledger.Principal, error) {
	var operator ledger.Principal
	err := u.Transactor.View(ctx, func(ctx context.Context) error {
		settings, err := u.Repository.GetSettings(ctx)
		if err != nil {
			return err
		}
		operator = settings.MarketplaceOperator
		return nil
	})
	return operator, err
}
