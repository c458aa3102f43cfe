package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"provenance/contexts/commerce/resale-marketplace/adapters/rail"
	marketerrors "provenance/contexts/commerce/resale-marketplace/domain/errors"
	minters "provenance/contexts/identity-access/minter-registry/application/commands"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
	"provenance/internal/platform/config"
	"provenance/internal/platform/db"
	"provenance/internal/platform/messaging"
	"provenance/internal/platform/metrics"
	"provenance/internal/shared/outbox"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

var (
	admin       = mustPrincipal("0x00000000000000000000000000000000000000a1")
	rolex       = mustPrincipal("0x00000000000000000000000000000000000000b1")
	alice       = mustPrincipal("0x00000000000000000000000000000000000000c1")
	bob         = mustPrincipal("0x00000000000000000000000000000000000000c2")
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

func newMemoryLedger(t *testing.T, recorder *rail.Recorder) *Ledger {
	t.Helper()
	l := NewInMemoryLedger(Options{Admin: admin, Marketplace: marketplace, Rail: recorder})
	if err := l.EnsureMarketplaceOperator(context.Background(), admin, marketplace); err != nil {
		t.Fatalf("ensure operator: %v", err)
	}
	return l
}

func newSQLiteLedger(t *testing.T, recorder *rail.Recorder) *Ledger {
	t.Helper()
	database, err := db.ConnectSQLite(":memory:")
	if err != nil {
		t.Fatalf("connect sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	ctx := context.Background()
	l := NewSQLLedger(database, Options{Admin: admin, Marketplace: marketplace, Rail: recorder})
	if err := l.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := l.EnsureMarketplaceOperator(ctx, admin, marketplace); err != nil {
		t.Fatalf("ensure operator: %v", err)
	}
	return l
}

// listRolex registers the brand, mints RLX-1 to alice and lists it for 1 ether.
func listRolex(t *testing.T, l *Ledger) {
	t.Helper()
	ctx := context.Background()
	if _, err := l.Minters.AddMinter(ctx, minters.AddMinterCommand{
		Caller:     admin,
		Address:    rolex,
		Brand:      "Rolex",
		Location:   "Geneva",
		RoyaltyBps: 500,
	}); err != nil {
		t.Fatalf("add minter: %v", err)
	}
	if _, err := l.Assets.Mint(ctx, rolex, alice, "RLX-1", "ipfs://rlx-1"); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := l.Assets.ApproveListingToken(ctx, alice, "RLX-1"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := l.Marketplace.ListWatch(ctx, alice, "RLX-1", ether(t, "1"), bob); err != nil {
		t.Fatalf("list: %v", err)
	}
}

func TestResaleFlowAcrossBackends(t *testing.T) {
	backends := map[string]func(*testing.T, *rail.Recorder) *Ledger{
		"memory": newMemoryLedger,
		"sqlite": newSQLiteLedger,
	}
	for name, build := range backends {
		t.Run(name, func(t *testing.T) {
			recorder := rail.NewRecorder(nil, nil)
			l := build(t, recorder)
			listRolex(t, l)
			ctx := context.Background()

			quote, err := l.Marketplace.GetListingPriceAndCommission(ctx, "RLX-1")
			if err != nil {
				t.Fatalf("quote: %v", err)
			}
			if got := ledger.FormatEther(quote); got != "1.05" {
				t.Fatalf("expected quote 1.05, got %s", got)
			}

			if _, err := l.Marketplace.BuyWatch(ctx, bob, "RLX-1", quote); err != nil {
				t.Fatalf("buy: %v", err)
			}
			owner, err := l.Assets.OwnerOfToken(ctx, "RLX-1")
			if err != nil {
				t.Fatalf("owner: %v", err)
			}
			if owner != bob {
				t.Fatalf("expected bob to own RLX-1, got %s", owner.Hex())
			}
			if _, err := l.Marketplace.GetListing(ctx, "RLX-1"); !errors.Is(err, marketerrors.ErrWatchNotListed) {
				t.Fatalf("expected listing removed, got %v", err)
			}

			for payee, want := range map[ledger.Principal]string{alice: "1", rolex: "0.05", bob: "0"} {
				got, err := l.Marketplace.BalanceOf(ctx, payee)
				if err != nil {
					t.Fatalf("balance: %v", err)
				}
				if ledger.FormatEther(got) != want {
					t.Fatalf("expected balance %s for %s, got %s", want, payee.Hex(), ledger.FormatEther(got))
				}
			}

			if _, err := l.Marketplace.Withdraw(ctx, rolex); err != nil {
				t.Fatalf("withdraw: %v", err)
			}
			if got := ledger.FormatEther(recorder.SentTo(rolex)); got != "0.05" {
				t.Fatalf("expected 0.05 sent to rolex, got %s", got)
			}
		})
	}
}

func TestFailedPurchaseChangesNothing(t *testing.T) {
	recorder := rail.NewRecorder(nil, nil)
	l := newSQLiteLedger(t, recorder)
	listRolex(t, l)
	ctx := context.Background()

	before := pendingCount(t, l)
	_, err := l.Marketplace.BuyWatch(ctx, bob, "RLX-1", ether(t, "1"))
	if !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	owner, _ := l.Assets.OwnerOfToken(ctx, "RLX-1")
	if owner != alice {
		t.Fatalf("expected alice to keep RLX-1, got %s", owner.Hex())
	}
	if _, err := l.Marketplace.GetListing(ctx, "RLX-1"); err != nil {
		t.Fatalf("expected listing to survive: %v", err)
	}
	if after := pendingCount(t, l); after != before {
		t.Fatalf("expected %d outbox rows, got %d", before, after)
	}
}

func TestTheftFlagBlocksListingThroughBridges(t *testing.T) {
	l := newMemoryLedger(t, rail.NewRecorder(nil, nil))
	ctx := context.Background()
	if _, err := l.Minters.AddMinter(ctx, minters.AddMinterCommand{Caller: admin, Address: rolex, Brand: "Rolex", Location: "Geneva", RoyaltyBps: 500}); err != nil {
		t.Fatalf("add minter: %v", err)
	}
	if _, err := l.Assets.Mint(ctx, rolex, alice, "RLX-9", "ipfs://rlx-9"); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := l.Theft.FlagAsStolen(ctx, bob, "RLX-9"); !errors.Is(err, ledger.ErrAuthorization) {
		t.Fatalf("expected only the owner to flag, got %v", err)
	}
	if err := l.Theft.FlagAsStolen(ctx, alice, "RLX-9"); err != nil {
		t.Fatalf("flag: %v", err)
	}
	if err := l.Assets.ApproveListingToken(ctx, alice, "RLX-9"); err != nil {
		t.Fatalf("approve: %v", err)
	}
	_, err := l.Marketplace.ListWatch(ctx, alice, "RLX-9", ether(t, "2"), ledger.ZeroPrincipal)
	if !errors.Is(err, ledger.ErrStolenAsset) {
		t.Fatalf("expected stolen asset, got %v", err)
	}
}

func TestTheftFlagSurvivesBurn(t *testing.T) {
	for name, open := range map[string]func(*testing.T, *rail.Recorder) *Ledger{
		"memory": newMemoryLedger,
		"sqlite": newSQLiteLedger,
	} {
		t.Run(name, func(t *testing.T) {
			l := open(t, rail.NewRecorder(nil, nil))
			ctx := context.Background()
			if _, err := l.Minters.AddMinter(ctx, minters.AddMinterCommand{Caller: admin, Address: rolex, Brand: "Rolex", Location: "Geneva", RoyaltyBps: 500}); err != nil {
				t.Fatalf("add minter: %v", err)
			}
			first, err := l.Assets.Mint(ctx, rolex, alice, "RLX-7", "ipfs://rlx-7")
			if err != nil {
				t.Fatalf("mint: %v", err)
			}
			if err := l.Theft.FlagAsStolen(ctx, alice, "RLX-7"); err != nil {
				t.Fatalf("flag: %v", err)
			}
			if err := l.Assets.Burn(ctx, alice, "RLX-7"); err != nil {
				t.Fatalf("burn: %v", err)
			}

			stolen, err := l.Theft.IsStolen(ctx, "RLX-7")
			if err != nil || !stolen {
				t.Fatalf("expected flag to outlive the token, got %v %v", stolen, err)
			}
			if err := l.Theft.FlagAsStolen(ctx, alice, "RLX-7"); !errors.Is(err, ledger.ErrNotFound) {
				t.Fatalf("expected not found on flag after burn, got %v", err)
			}
			if err := l.Theft.UnflagAsStolen(ctx, alice, "RLX-7"); !errors.Is(err, ledger.ErrNotFound) {
				t.Fatalf("expected not found on unflag after burn, got %v", err)
			}

			// A re-mint inherits the flag under a fresh token id.
			second, err := l.Assets.Mint(ctx, rolex, bob, "RLX-7", "ipfs://rlx-7")
			if err != nil {
				t.Fatalf("re-mint: %v", err)
			}
			if second.TokenID == first.TokenID {
				t.Fatalf("expected a fresh token id, got %d twice", second.TokenID)
			}
			if stolen, err := l.Theft.IsStolen(ctx, "RLX-7"); err != nil || !stolen {
				t.Fatalf("expected re-minted serial to stay flagged, got %v %v", stolen, err)
			}
			if err := l.Theft.UnflagAsStolen(ctx, bob, "RLX-7"); err != nil {
				t.Fatalf("unflag by new owner: %v", err)
			}
		})
	}
}

func TestRelayFeedsAuditConsumer(t *testing.T) {
	l := newMemoryLedger(t, rail.NewRecorder(nil, nil))
	listRolex(t, l)

	m := metrics.New()
	bus, err := messaging.NewKafka(nil, nil)
	if err != nil {
		t.Fatalf("bus: %v", err)
	}
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := (AuditConsumer{Bus: bus, Metrics: m}).Start(ctx); err != nil {
		t.Fatalf("start audit: %v", err)
	}

	relay := outbox.Relay{Sources: l.Outboxes, Publisher: bus, Metrics: m}
	published, err := relay.RunOnce(ctx)
	if err != nil {
		t.Fatalf("relay: %v", err)
	}
	// MarketplaceOperatorSet, MinterAdded, TokenMinted, WatchListed.
	if published != 4 {
		t.Fatalf("expected 4 published events, got %d", published)
	}
	if again, _ := relay.RunOnce(ctx); again != 0 {
		t.Fatalf("expected sent rows to stay sent, got %d", again)
	}

	deadline := time.Now().Add(2 * time.Second)
	for testutil.ToFloat64(m.LedgerEvents.WithLabelValues(contractsv1.EventTypeWatchListed)) < 1 {
		if time.Now().After(deadline) {
			t.Fatal("audit consumer never observed WatchListed")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got := testutil.ToFloat64(m.OutboxPublished.WithLabelValues("asset-registry", contractsv1.EventTypeTokenMinted)); got != 1 {
		t.Fatalf("expected one TokenMinted publish, got %v", got)
	}
}

func TestBuildAPIWithMemoryStorage(t *testing.T) {
	cfg := config.Defaults()
	cfg.AdminPrincipal = admin.Hex()
	cfg.MarketplacePrincipal = marketplace.Hex()

	app, err := BuildAPI(cfg, nil)
	if err != nil {
		t.Fatalf("build api: %v", err)
	}
	defer app.Close()
	if app.inProcess == nil {
		t.Fatal("expected memory storage to relay in-process")
	}

	rec := httptest.NewRecorder()
	app.server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/marketplace-operator", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Operator string `json:"operator"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.EqualFold(body.Operator, marketplace.Hex()) {
		t.Fatalf("expected operator %s, got %s", marketplace.Hex(), body.Operator)
	}

	if _, err := BuildWorker(cfg, nil); err == nil {
		t.Fatal("expected worker to reject memory storage")
	}
}

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{
		"":               ":8080",
		"9090":           ":9090",
		":7070":          ":7070",
		"127.0.0.1:8081": "127.0.0.1:8081",
	}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Fatalf("normalizeAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func pendingCount(t *testing.T, l *Ledger) int {
	t.Helper()
	total := 0
	for _, source := range l.Outboxes {
		rows, err := source.Store.ListPending(context.Background(), 1000)
		if err != nil {
			t.Fatalf("list pending %s: %v", source.Name, err)
		}
		total += len(rows)
	}
	return total
}
