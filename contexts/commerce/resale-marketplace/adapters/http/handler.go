package httpadapter

import (
	"context"
	"log/slog"

	application "provenance/contexts/commerce/resale-marketplace/application"
	"provenance/contexts/commerce/resale-marketplace/application/commands"
	"provenance/contexts/commerce/resale-marketplace/application/queries"
	"provenance/contexts/commerce/resale-marketplace/domain/entities"
	httptransport "provenance/contexts/commerce/resale-marketplace/transport/http"
	ledger "provenance/contracts/ledger/v1"
)

// Handler maps HTTP DTOs to application commands/queries. Amounts arrive as
// ether decimals and leave as both ether and wei strings.
type Handler struct {
	ListWatch     commands.ListWatchUseCase
	CancelListing commands.CancelListingUseCase
	BuyWatch      commands.BuyWatchUseCase
	Withdraw      commands.WithdrawUseCase
	GetListing    queries.GetListingUseCase
	Quote         queries.QuoteUseCase
	BalanceOf     queries.BalanceOfUseCase
	Logger        *slog.Logger
}

func (h Handler) ListWatchHandler(
	ctx context.Context,
	callerID string,
	serialID string,
	request httptransport.ListWatchRequest,
) (httptransport.ListingResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Debug("http list watch received",
		"event", "marketplace_http_list_received",
		"module", "commerce/resale-marketplace",
		"layer", "transport",
		"caller", callerID,
		"serial_id", serialID,
		"price", request.Price,
	)

	caller, err := ledger.ParsePrincipal(callerID)
	if err != nil {
		return httptransport.ListingResponse{}, err
	}
	price, err := ledger.ParseEther(request.Price)
	if err != nil {
		return httptransport.ListingResponse{}, err
	}
	designated, err := ledger.ParseOptionalPrincipal(request.DesignatedBuyer)
	if err != nil {
		return httptransport.ListingResponse{}, err
	}
	listing, err := h.ListWatch.Execute(ctx, commands.ListWatchCommand{
		Caller:          caller,
		SerialID:        serialID,
		Price:           price,
		DesignatedBuyer: designated,
	})
	if err != nil {
		return httptransport.ListingResponse{}, err
	}
	return toListingResponse(listing), nil
}

func (h Handler) CancelListingHandler(ctx context.Context, callerID string, serialID string) error {
	caller, err := ledger.ParsePrincipal(callerID)
	if err != nil {
		return err
	}
	return h.CancelListing.Execute(ctx, commands.CancelListingCommand{Caller: caller, SerialID: serialID})
}

func (h Handler) GetListingHandler(ctx context.Context, serialID string) (httptransport.ListingResponse, error) {
	listing, err := h.GetListing.Execute(ctx, serialID)
	if err != nil {
		return httptransport.ListingResponse{}, err
	}
	return toListingResponse(listing), nil
}

func (h Handler) QuoteHandler(ctx context.Context, serialID string) (httptransport.QuoteResponse, error) {
	total, err := h.Quote.Execute(ctx, serialID)
	if err != nil {
		return httptransport.QuoteResponse{}, err
	}
	return httptransport.QuoteResponse{
		SerialID: serialID,
		Total:    ledger.FormatEther(total),
		TotalWei: ledger.FormatWei(total),
	}, nil
}

func (h Handler) PurchaseHandler(
	ctx context.Context,
	callerID string,
	serialID string,
	request httptransport.PurchaseRequest,
) (httptransport.PurchaseResponse, error) {
	caller, err := ledger.ParsePrincipal(callerID)
	if err != nil {
		return httptransport.PurchaseResponse{}, err
	}
	payment, err := ledger.ParseEther(request.Payment)
	if err != nil {
		return httptransport.PurchaseResponse{}, err
	}
	purchase, err := h.BuyWatch.Execute(ctx, commands.BuyWatchCommand{
		Caller:   caller,
		SerialID: serialID,
		Payment:  payment,
	})
	if err != nil {
		return httptransport.PurchaseResponse{}, err
	}
	return httptransport.PurchaseResponse{
		SerialID:    purchase.SerialID,
		TokenID:     purchase.TokenID,
		Seller:      purchase.Seller.Hex(),
		Buyer:       purchase.Buyer.Hex(),
		Minter:      purchase.Minter.Hex(),
		PriceWei:    ledger.FormatWei(purchase.Price),
		RoyaltyWei:  ledger.FormatWei(purchase.RoyaltyAmount),
		PaidWei:     ledger.FormatWei(purchase.Paid),
		ChangeWei:   ledger.FormatWei(purchase.Change),
		PurchasedAt: purchase.PurchasedAt,
	}, nil
}

func (h Handler) BalanceHandler(ctx context.Context, addressRaw string) (httptransport.BalanceResponse, error) {
	address, err := ledger.ParsePrincipal(addressRaw)
	if err != nil {
		return httptransport.BalanceResponse{}, err
	}
	balance, err := h.BalanceOf.Execute(ctx, address)
	if err != nil {
		return httptransport.BalanceResponse{}, err
	}
	return httptransport.BalanceResponse{
		Address:    address.Hex(),
		Balance:    ledger.FormatEther(balance.Amount),
		BalanceWei: ledger.FormatWei(balance.Amount),
	}, nil
}

func (h Handler) WithdrawHandler(ctx context.Context, callerID string) (httptransport.WithdrawResponse, error) {
	caller, err := ledger.ParsePrincipal(callerID)
	if err != nil {
		return httptransport.WithdrawResponse{}, err
	}
	amount, err := h.Withdraw.Execute(ctx, commands.WithdrawCommand{Caller: caller})
	if err != nil {
		return httptransport.WithdrawResponse{}, err
	}
	return httptransport.WithdrawResponse{
		Payee:     caller.Hex(),
		Amount:    ledger.FormatEther(amount),
		AmountWei: ledger.FormatWei(amount),
	}, nil
}

func toListingResponse(listing entities.Listing) httptransport.ListingResponse {
	response := httptransport.ListingResponse{
		SerialID:      listing.SerialID,
		TokenID:       listing.TokenID,
		Seller:        listing.Seller.Hex(),
		Price:         ledger.FormatEther(listing.Price),
		PriceWei:      ledger.FormatWei(listing.Price),
		RoyaltyAmount: ledger.FormatEther(listing.RoyaltyAmount),
		RoyaltyWei:    ledger.FormatWei(listing.RoyaltyAmount),
		RoyaltyBps:    uint32(listing.RoyaltyBps),
		Minter:        listing.Minter.Hex(),
		ListedAt:      listing.ListedAt,
	}
	if !ledger.IsZero(listing.DesignatedBuyer) {
		response.DesignatedBuyer = listing.DesignatedBuyer.Hex()
	}
	return response
}
