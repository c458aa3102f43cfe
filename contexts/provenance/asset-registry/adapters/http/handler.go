package httpadapter

import (
	"context"
	"log/slog"

	application "provenance/contexts/provenance/asset-registry/application"
	"provenance/contexts/provenance/asset-registry/application/commands"
	"provenance/contexts/provenance/asset-registry/application/queries"
	"provenance/contexts/provenance/asset-registry/domain/entities"
	httptransport "provenance/contexts/provenance/asset-registry/transport/http"
	ledger "provenance/contracts/ledger/v1"
)

// Handler maps HTTP DTOs to application commands/queries.
type Handler struct {
	Mint           commands.MintUseCase
	Burn           commands.BurnUseCase
	ApproveListing commands.ApproveListingUseCase
	SetMarketplace commands.SetMarketplaceUseCase
	GetAsset       queries.GetAssetUseCase
	GetMarketplace queries.GetMarketplaceUseCase
	Logger         *slog.Logger
}

func (h Handler) MintHandler(
	ctx context.Context,
	callerID string,
	request httptransport.MintRequest,
) (httptransport.AssetResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Debug("http mint received",
		"event", "asset_http_mint_received",
		"module", "provenance/asset-registry",
		"layer", "transport",
		"caller", callerID,
		"serial_id", request.SerialID,
	)

	caller, err := ledger.ParsePrincipal(callerID)
	if err != nil {
		return httptransport.AssetResponse{}, err
	}
	to, err := ledger.ParseOptionalPrincipal(request.To)
	if err != nil {
		return httptransport.AssetResponse{}, err
	}
	asset, err := h.Mint.Execute(ctx, commands.MintCommand{
		Caller:      caller,
		To:          to,
		SerialID:    request.SerialID,
		MetadataURI: request.MetadataURI,
	})
	if err != nil {
		return httptransport.AssetResponse{}, err
	}
	return toAssetResponse(asset), nil
}

func (h Handler) GetAssetHandler(ctx context.Context, serialID string) (httptransport.AssetResponse, error) {
	asset, err := h.GetAsset.Execute(ctx, serialID)
	if err != nil {
		return httptransport.AssetResponse{}, err
	}
	return toAssetResponse(asset), nil
}

func (h Handler) BurnHandler(ctx context.Context, callerID string, serialID string) error {
	caller, err := ledger.ParsePrincipal(callerID)
	if err != nil {
		return err
	}
	return h.Burn.Execute(ctx, commands.BurnCommand{Caller: caller, SerialID: serialID})
}

func (h Handler) ApproveListingHandler(ctx context.Context, callerID string, serialID string) (httptransport.AssetResponse, error) {
	caller, err := ledger.ParsePrincipal(callerID)
	if err != nil {
		return httptransport.AssetResponse{}, err
	}
	asset, err := h.ApproveListing.Execute(ctx, commands.ApproveListingCommand{Caller: caller, SerialID: serialID})
	if err != nil {
		return httptransport.AssetResponse{}, err
	}
	return toAssetResponse(asset), nil
}

func (h Handler) SetMarketplaceHandler(
	ctx context.Context,
	callerID string,
	request httptransport.SetMarketplaceRequest,
) (httptransport.MarketplaceResponse, error) {
	caller, err := ledger.ParsePrincipal(callerID)
	if err != nil {
		return httptransport.MarketplaceResponse{}, err
	}
	operator, err := ledger.ParseOptionalPrincipal(request.Operator)
	if err != nil {
		return httptransport.MarketplaceResponse{}, err
	}
	if err := h.SetMarketplace.Execute(ctx, commands.SetMarketplaceCommand{Caller: caller, Operator: operator}); err != nil {
		return httptransport.MarketplaceResponse{}, err
	}
	return httptransport.MarketplaceResponse{Operator: operator.Hex()}, nil
}

func (h Handler) GetMarketplaceHandler(ctx context.Context) (httptransport.MarketplaceResponse, error) {
	operator, err := h.GetMarketplace.Execute(ctx)
	if err != nil {
		return httptransport.MarketplaceResponse{}, err
	}
	if ledger.IsZero(operator) {
		return httptransport.MarketplaceResponse{}, nil
	}
	return httptransport.MarketplaceResponse{Operator: operator.Hex()}, nil
}

func toAssetResponse(asset entities.Asset) httptransport.AssetResponse {
	response := httptransport.AssetResponse{
		SerialID:    asset.SerialID,
		TokenID:     asset.TokenID,
		Minter:      asset.Minter.Hex(),
		Owner:       asset.Owner.Hex(),
		MetadataURI: asset.MetadataURI,
		MintedAt:    asset.MintedAt,
		UpdatedAt:   asset.UpdatedAt,
	}
	if !ledger.IsZero(asset.ApprovedOperator) {
		response.ApprovedOperator = asset.ApprovedOperator.Hex()
	}
	return response
}
