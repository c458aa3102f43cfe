package resalemarketplace_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	resalemarketplace "provenance/contexts/commerce/resale-marketplace"
	"provenance/contexts/commerce/resale-marketplace/adapters/rail"
	application "provenance/contexts/commerce/resale-marketplace/application"
	domainerrors "provenance/contexts/commerce/resale-marketplace/domain/errors"
	"provenance/contexts/commerce/resale-marketplace/ports"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
)

var (
	rolex       = mustPrincipal("0x00000000000000000000000000000000000000b1")
	alice       = mustPrincipal("0x00000000000000000000000000000000000000c1")
	bob         = mustPrincipal("0x00000000000000000000000000000000000000c2")
	carol       = mustPrincipal("0x00000000000000000000000000000000000000c3")
	marketplace = mustPrincipal("0x00000000000000000000000000000000000000d1")
)

func mustPrincipal(raw string) ledger.Principal {
	p, err := ledger.ParsePrincipal(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func ether(t *testing.T, raw string) ledger.Amount {
	t.Helper()
	amount, err := ledger.ParseEther(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return amount
}

type fakeAssets struct {
	mu     sync.Mutex
	assets map[string]ports.AssetView
}

func (f *fakeAssets) GetAsset(_ context.Context, serialID string) (ports.AssetView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	asset, ok := f.assets[serialID]
	if !ok {
		return ports.AssetView{}, ledger.NewFault(ledger.KindNotFound, "token does not exist")
	}
	return asset, nil
}

func (f *fakeAssets) Transfer(_ context.Context, operator ledger.Principal, serialID string, newOwner ledger.Principal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	asset, ok := f.assets[serialID]
	if !ok {
		return ledger.NewFault(ledger.KindNotFound, "token does not exist")
	}
	if ledger.IsZero(asset.ApprovedOperator) || asset.ApprovedOperator != operator {
		return ledger.NewFault(ledger.KindAuthorization, "caller is not the approved operator")
	}
	asset.Owner = newOwner
	asset.ApprovedOperator = ledger.ZeroPrincipal
	f.assets[serialID] = asset
	return nil
}

func (f *fakeAssets) approve(serialID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	asset := f.assets[serialID]
	asset.ApprovedOperator = marketplace
	f.assets[serialID] = asset
}

type fakeTheft map[string]bool

func (f fakeTheft) IsStolen(_ context.Context, serialID string) (bool, error) {
	return f[serialID], nil
}

type fakeRoyalties map[ledger.Principal]ledger.BasisPoints

func (f fakeRoyalties) RoyaltyRate(_ context.Context, minter ledger.Principal) (ledger.BasisPoints, error) {
	return f[minter], nil
}

type railFunc func(ctx context.Context, payee ledger.Principal, amount ledger.Amount) error

func (f railFunc) Send(ctx context.Context, payee ledger.Principal, amount ledger.Amount) error {
	return f(ctx, payee, amount)
}

type fixture struct {
	module resalemarketplace.Module
	assets *fakeAssets
	theft  fakeTheft
	rail   *rail.Recorder
}

func newFixture(policy application.Policy) fixture {
	assets := &fakeAssets{assets: map[string]ports.AssetView{
		"RLX-1": {SerialID: "RLX-1", TokenID: 1, Minter: rolex, Owner: alice, ApprovedOperator: marketplace},
		"RLX-2": {SerialID: "RLX-2", TokenID: 2, Minter: carol, Owner: alice},
	}}
	theft := fakeTheft{}
	recorder := rail.NewRecorder(nil, nil)
	module := resalemarketplace.NewInMemoryModule(resalemarketplace.InMemoryDependencies{
		Assets:    assets,
		Theft:     theft,
		Royalties: fakeRoyalties{rolex: 500},
		Rail:      recorder,
		Operator:  marketplace,
		Policy:    policy,
	})
	return fixture{module: module, assets: assets, theft: theft, rail: recorder}
}

func (f fixture) balance(t *testing.T, payee ledger.Principal) string {
	t.Helper()
	amount, err := f.module.BalanceOf(context.Background(), payee)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	return ledger.FormatEther(amount)
}

func TestResaleSettlesSellerAndMinter(t *testing.T) {
	f := newFixture(application.Policy{})
	ctx := context.Background()

	listing, err := f.module.ListWatch(ctx, alice, "RLX-1", ether(t, "1.0"), bob)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if listing.RoyaltyBps != 500 || ledger.FormatEther(listing.RoyaltyAmount) != "0.05" {
		t.Fatalf("unexpected royalty %+v", listing)
	}
	quote, err := f.module.GetListingPriceAndCommission(ctx, "RLX-1")
	if err != nil || ledger.FormatEther(quote) != "1.05" {
		t.Fatalf("expected quote 1.05, got %s %v", ledger.FormatEther(quote), err)
	}

	purchase, err := f.module.BuyWatch(ctx, bob, "RLX-1", ether(t, "1.05"))
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if purchase.Buyer != bob || !purchase.Change.IsZero() {
		t.Fatalf("unexpected purchase %+v", purchase)
	}
	if f.assets.assets["RLX-1"].Owner != bob {
		t.Fatalf("asset must move to the buyer")
	}
	if got := f.balance(t, alice); got != "1" {
		t.Fatalf("seller balance = %s, want 1", got)
	}
	if got := f.balance(t, rolex); got != "0.05" {
		t.Fatalf("minter balance = %s, want 0.05", got)
	}
	if got := f.balance(t, bob); got != "0" {
		t.Fatalf("buyer balance = %s, want 0", got)
	}
	if _, err := f.module.GetListingPriceAndCommission(ctx, "RLX-1"); !errors.Is(err, domainerrors.ErrWatchNotListed) {
		t.Fatalf("expected listing removed, got %v", err)
	}

	var types []string
	for _, message := range f.module.Store.Outbox().Messages() {
		types = append(types, message.EventType)
	}
	if len(types) != 2 || types[0] != contractsv1.EventTypeWatchListed || types[1] != contractsv1.EventTypeWatchTransferred {
		t.Fatalf("unexpected events %v", types)
	}
}

func TestListWatchPreconditions(t *testing.T) {
	f := newFixture(application.Policy{})
	ctx := context.Background()

	if _, err := f.module.ListWatch(ctx, alice, "RLX-404", ether(t, "1"), ledger.ZeroPrincipal); !errors.Is(err, ledger.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := f.module.ListWatch(ctx, bob, "RLX-1", ether(t, "1"), ledger.ZeroPrincipal); !errors.Is(err, domainerrors.ErrNotAssetOwner) {
		t.Fatalf("expected owner check, got %v", err)
	}
	if _, err := f.module.ListWatch(ctx, alice, "RLX-2", ether(t, "1"), ledger.ZeroPrincipal); !errors.Is(err, domainerrors.ErrMarketplaceNotApproved) {
		t.Fatalf("expected approval check, got %v", err)
	}
	if _, err := f.module.ListWatch(ctx, alice, "RLX-1", ledger.Amount{}, ledger.ZeroPrincipal); !errors.Is(err, domainerrors.ErrZeroPrice) {
		t.Fatalf("expected zero price rejection, got %v", err)
	}

	f.theft["RLX-1"] = true
	if _, err := f.module.ListWatch(ctx, alice, "RLX-1", ether(t, "1"), ledger.ZeroPrincipal); !errors.Is(err, ledger.ErrStolenAsset) {
		t.Fatalf("expected stolen asset, got %v", err)
	}
	f.theft["RLX-1"] = false
	if _, err := f.module.ListWatch(ctx, alice, "RLX-1", ether(t, "1"), ledger.ZeroPrincipal); err != nil {
		t.Fatalf("list after unflag: %v", err)
	}
}

func TestListWatchUnregisteredMinterPaysNoRoyalty(t *testing.T) {
	f := newFixture(application.Policy{})
	f.assets.approve("RLX-2")

	listing, err := f.module.ListWatch(context.Background(), alice, "RLX-2", ether(t, "2"), ledger.ZeroPrincipal)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !listing.RoyaltyAmount.IsZero() || listing.RoyaltyBps != 0 {
		t.Fatalf("expected zero royalty, got %+v", listing)
	}
}

func TestRelistOverwritesListing(t *testing.T) {
	f := newFixture(application.Policy{})
	ctx := context.Background()

	if _, err := f.module.ListWatch(ctx, alice, "RLX-1", ether(t, "1"), ledger.ZeroPrincipal); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := f.module.ListWatch(ctx, alice, "RLX-1", ether(t, "3"), carol); err != nil {
		t.Fatalf("relist: %v", err)
	}
	listing, err := f.module.GetListing(ctx, "RLX-1")
	if err != nil {
		t.Fatalf("get listing: %v", err)
	}
	if ledger.FormatEther(listing.Price) != "3" || listing.DesignatedBuyer != carol {
		t.Fatalf("expected overwritten listing, got %+v", listing)
	}
}

func TestCancelListing(t *testing.T) {
	f := newFixture(application.Policy{})
	ctx := context.Background()

	if err := f.module.CancelListing(ctx, alice, "RLX-1"); !errors.Is(err, domainerrors.ErrWatchNotListed) {
		t.Fatalf("expected not listed, got %v", err)
	}
	if _, err := f.module.ListWatch(ctx, alice, "RLX-1", ether(t, "1"), ledger.ZeroPrincipal); err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := f.module.CancelListing(ctx, bob, "RLX-1"); !errors.Is(err, domainerrors.ErrNotSeller) {
		t.Fatalf("expected seller check, got %v", err)
	}
	if err := f.module.CancelListing(ctx, alice, "RLX-1"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.module.GetListing(ctx, "RLX-1"); !errors.Is(err, domainerrors.ErrWatchNotListed) {
		t.Fatalf("expected listing gone, got %v", err)
	}
}

func TestBuyWatchFailuresLeaveNoTrace(t *testing.T) {
	f := newFixture(application.Policy{})
	ctx := context.Background()

	if _, err := f.module.BuyWatch(ctx, bob, "RLX-1", ether(t, "5")); !errors.Is(err, domainerrors.ErrWatchNotListed) {
		t.Fatalf("expected not listed, got %v", err)
	}
	if _, err := f.module.ListWatch(ctx, alice, "RLX-1", ether(t, "1"), ledger.ZeroPrincipal); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := f.module.BuyWatch(ctx, bob, "RLX-1", ether(t, "1.049999")); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	asset := f.assets.assets["RLX-1"]
	asset.ApprovedOperator = ledger.ZeroPrincipal
	f.assets.assets["RLX-1"] = asset
	if _, err := f.module.BuyWatch(ctx, bob, "RLX-1", ether(t, "2")); !errors.Is(err, ledger.ErrAuthorization) {
		t.Fatalf("expected transfer rejection, got %v", err)
	}

	if got := f.balance(t, alice); got != "0" {
		t.Fatalf("failed purchases must not credit the seller, got %s", got)
	}
	if _, err := f.module.GetListing(ctx, "RLX-1"); err != nil {
		t.Fatalf("listing must survive failed purchases: %v", err)
	}
	if n := len(f.module.Store.Outbox().Messages()); n != 1 {
		t.Fatalf("expected only the listing event, got %d", n)
	}
}

func TestBuyWatchCreditsOverpaymentToBuyer(t *testing.T) {
	f := newFixture(application.Policy{})
	ctx := context.Background()
	if _, err := f.module.ListWatch(ctx, alice, "RLX-1", ether(t, "1"), ledger.ZeroPrincipal); err != nil {
		t.Fatalf("list: %v", err)
	}
	purchase, err := f.module.BuyWatch(ctx, bob, "RLX-1", ether(t, "1.5"))
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if ledger.FormatEther(purchase.Change) != "0.45" || f.balance(t, bob) != "0.45" {
		t.Fatalf("expected 0.45 change credited to buyer, got %s", ledger.FormatEther(purchase.Change))
	}
}

func TestPurchasePolicies(t *testing.T) {
	ctx := context.Background()

	advisory := newFixture(application.Policy{})
	if _, err := advisory.module.ListWatch(ctx, alice, "RLX-1", ether(t, "1"), bob); err != nil {
		t.Fatalf("list: %v", err)
	}
	advisory.theft["RLX-1"] = true
	if _, err := advisory.module.BuyWatch(ctx, carol, "RLX-1", ether(t, "1.05")); err != nil {
		t.Fatalf("default policy must allow any buyer of a listed asset: %v", err)
	}

	strict := newFixture(application.Policy{EnforceDesignatedBuyer: true, RecheckStolenAtPurchase: true})
	if _, err := strict.module.ListWatch(ctx, alice, "RLX-1", ether(t, "1"), bob); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := strict.module.BuyWatch(ctx, carol, "RLX-1", ether(t, "1.05")); !errors.Is(err, domainerrors.ErrNotDesignatedBuyer) {
		t.Fatalf("expected designated buyer check, got %v", err)
	}
	strict.theft["RLX-1"] = true
	if _, err := strict.module.BuyWatch(ctx, bob, "RLX-1", ether(t, "1.05")); !errors.Is(err, domainerrors.ErrWatchStolen) {
		t.Fatalf("expected stolen recheck, got %v", err)
	}
	strict.theft["RLX-1"] = false
	if _, err := strict.module.BuyWatch(ctx, bob, "RLX-1", ether(t, "1.05")); err != nil {
		t.Fatalf("designated buyer purchase: %v", err)
	}
}

func TestWithdrawPaysOutThroughRail(t *testing.T) {
	f := newFixture(application.Policy{})
	ctx := context.Background()

	if _, err := f.module.Withdraw(ctx, alice); !errors.Is(err, domainerrors.ErrNoBalance) {
		t.Fatalf("expected no balance, got %v", err)
	}
	if _, err := f.module.ListWatch(ctx, alice, "RLX-1", ether(t, "1"), ledger.ZeroPrincipal); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := f.module.BuyWatch(ctx, bob, "RLX-1", ether(t, "1.05")); err != nil {
		t.Fatalf("buy: %v", err)
	}

	amount, err := f.module.Withdraw(ctx, alice)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if ledger.FormatEther(amount) != "1" || ledger.FormatEther(f.rail.SentTo(alice)) != "1" {
		t.Fatalf("expected 1 paid to seller, got %s", ledger.FormatEther(amount))
	}
	if f.balance(t, alice) != "0" {
		t.Fatalf("balance must be zero after withdraw")
	}
	messages := f.module.Store.Outbox().Messages()
	if messages[len(messages)-1].EventType != contractsv1.EventTypePayoutWithdrawn {
		t.Fatalf("expected PayoutWithdrawn, got %s", messages[len(messages)-1].EventType)
	}
}

func TestWithdrawRestoresBalanceWhenRailFails(t *testing.T) {
	assets := &fakeAssets{assets: map[string]ports.AssetView{
		"RLX-1": {SerialID: "RLX-1", TokenID: 1, Minter: rolex, Owner: alice, ApprovedOperator: marketplace},
	}}
	railErr := errors.New("rail offline")
	module := resalemarketplace.NewInMemoryModule(resalemarketplace.InMemoryDependencies{
		Assets:    assets,
		Theft:     fakeTheft{},
		Royalties: fakeRoyalties{rolex: 500},
		Rail: railFunc(func(context.Context, ledger.Principal, ledger.Amount) error {
			return railErr
		}),
		Operator: marketplace,
	})
	ctx := context.Background()
	if _, err := module.ListWatch(ctx, alice, "RLX-1", ether(t, "1"), ledger.ZeroPrincipal); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := module.BuyWatch(ctx, bob, "RLX-1", ether(t, "1.05")); err != nil {
		t.Fatalf("buy: %v", err)
	}

	if _, err := module.Withdraw(ctx, rolex); !errors.Is(err, railErr) {
		t.Fatalf("expected rail error, got %v", err)
	}
	balance, _ := module.BalanceOf(ctx, rolex)
	if ledger.FormatEther(balance) != "0.05" {
		t.Fatalf("balance must be restored, got %s", ledger.FormatEther(balance))
	}
}

func TestWithdrawReentryFindsNothing(t *testing.T) {
	assets := &fakeAssets{assets: map[string]ports.AssetView{
		"RLX-1": {SerialID: "RLX-1", TokenID: 1, Minter: rolex, Owner: alice, ApprovedOperator: marketplace},
	}}
	var module resalemarketplace.Module
	var reentryErr error
	sends := 0
	module = resalemarketplace.NewInMemoryModule(resalemarketplace.InMemoryDependencies{
		Assets:    assets,
		Theft:     fakeTheft{},
		Royalties: fakeRoyalties{},
		Rail: railFunc(func(ctx context.Context, payee ledger.Principal, _ ledger.Amount) error {
			sends++
			if sends == 1 {
				_, reentryErr = module.Withdraw(ctx, payee)
			}
			return nil
		}),
		Operator: marketplace,
	})
	ctx := context.Background()
	if _, err := module.ListWatch(ctx, alice, "RLX-1", ether(t, "1"), ledger.ZeroPrincipal); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := module.BuyWatch(ctx, bob, "RLX-1", ether(t, "1")); err != nil {
		t.Fatalf("buy: %v", err)
	}

	amount, err := module.Withdraw(ctx, alice)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if ledger.FormatEther(amount) != "1" || sends != 1 {
		t.Fatalf("expected a single payout of 1, got %s after %d sends", ledger.FormatEther(amount), sends)
	}
	if !errors.Is(reentryErr, domainerrors.ErrNoBalance) {
		t.Fatalf("re-entrant withdraw must see an empty balance, got %v", reentryErr)
	}
}
