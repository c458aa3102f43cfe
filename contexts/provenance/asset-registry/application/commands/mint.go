package commands

import (
	"context"
	"errors"
	"log/slog"

	application "provenance/contexts/provenance/asset-registry/application"
	"provenance/contexts/provenance/asset-registry/domain/entities"
	domainerrors "provenance/contexts/provenance/asset-registry/domain/errors"
	"provenance/contexts/provenance/asset-registry/ports"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
)

type MintCommand struct {
	Caller      ledger.Principal
	To          ledger.Principal
	SerialID    string
	MetadataURI string
}

type MintUseCase struct {
	Repository  ports.Repository
	Minters     ports.MinterDirectory
	Transactor  ports.Transactor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u MintUseCase) Execute(ctx context.Context, cmd MintCommand) (entities.Asset, error) {
	logger := application.ResolveLogger(u.Logger)

	var minted entities.Asset
	err := u.Transactor.WithinTx(ctx, func(ctx context.Context) error {
		isMinter, err := u.Minters.IsMinter(ctx, cmd.Caller)
		if err != nil {
			return err
		}
		if !isMinter {
			return domainerrors.ErrNotMinter
		}

		serialID, err := entities.NormalizeSerialID(cmd.SerialID)
		if err != nil {
			return err
		}
		if ledger.IsZero(cmd.To) {
			return domainerrors.ErrZeroRecipient
		}
		_, err = u.Repository.GetAsset(ctx, serialID)
		switch {
		case err == nil:
			return domainerrors.ErrSerialAlreadyMinted
		case !errors.Is(err, domainerrors.ErrTokenNotFound):
			return err
		}

		tokenID, err := u.Repository.AllocateTokenID(ctx)
		if err != nil {
			return err
		}
		now := application.Now(u.Clock)
		asset, err := entities.NewAsset(serialID, tokenID, cmd.Caller, cmd.To, cmd.MetadataURI, now)
		if err != nil {
			return err
		}

		event, err := application.NewEvent(ctx, u.IDGenerator,
			contractsv1.EventTypeTokenMinted,
			"serial_id",
			serialID,
			now,
			contractsv1.TokenMinted{
				Minter:   asset.Minter.Hex(),
				To:       asset.Owner.Hex(),
				SerialID: asset.SerialID,
			},
		)
		if err != nil {
			return err
		}
		if err := u.Repository.CreateAssetWithOutbox(ctx, asset, event); err != nil {
			return err
		}
		minted = asset
		return nil
	})
	if err != nil {
		logger.Warn("mint failed",
			"event", "asset_mint_failed",
			"module", "provenance/asset-registry",
			"layer", "application",
			"serial_id", cmd.SerialID,
			"minter", cmd.Caller.Hex(),
			"error", err.Error(),
		)
		return entities.Asset{}, err
	}

	logger.Info("asset minted",
		"event", "asset_minted",
		"module", "provenance/asset-registry",
		"layer", "application",
		"serial_id", minted.SerialID,
		"token_id", minted.TokenID,
		"minter", minted.Minter.Hex(),
		"owner", minted.Owner.Hex(),
	)
	return minted, nil
}
