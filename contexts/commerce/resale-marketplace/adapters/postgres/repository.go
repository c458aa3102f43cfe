package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"provenance/contexts/commerce/resale-marketplace/domain/entities"
	domainerrors "provenance/contexts/commerce/resale-marketplace/domain/errors"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
	"provenance/internal/platform/db"
	"provenance/internal/shared/outbox"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const outboxTable = "resale_marketplace_outbox"

// Repository persists listings and escrow balances. Wei amounts are stored
// as base-10 strings so no 256-bit value is truncated by a numeric column.
type Repository struct {
	db     *gorm.DB
	outbox *outbox.GormStore
	logger *slog.Logger
}

func NewRepository(conn *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     conn,
		outbox: outbox.NewGormStore(conn, outboxTable),
		logger: logger,
	}
}

func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&listingModel{}, &balanceModel{}); err != nil {
		return err
	}
	return r.outbox.Migrate(ctx)
}

func (r *Repository) Outbox() *outbox.GormStore {
	return r.outbox
}

func (r *Repository) GetListing(ctx context.Context, tokenID uint64) (entities.Listing, error) {
	var row listingModel
	err := db.Conn(ctx, r.db).
		Where("token_id = ?", tokenID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Listing{}, domainerrors.ErrWatchNotListed
		}
		return entities.Listing{}, err
	}
	return row.toEntity()
}

func (r *Repository) SaveListingWithOutbox(ctx context.Context, listing entities.Listing, event contractsv1.Envelope) error {
	row := listingModelFromEntity(listing)
	err := db.Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token_id"}},
			UpdateAll: true,
		}).
		Create(&row).
		Error
	if err != nil {
		return err
	}
	return r.outbox.Append(ctx, event)
}

func (r *Repository) DeleteListingWithOutbox(ctx context.Context, tokenID uint64, event contractsv1.Envelope) error {
	result := db.Conn(ctx, r.db).
		Where("token_id = ?", tokenID).
		Delete(&listingModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrWatchNotListed
	}
	return r.outbox.Append(ctx, event)
}

func (r *Repository) GetBalance(ctx context.Context, payee ledger.Principal) (entities.Balance, error) {
	var row balanceModel
	err := db.Conn(ctx, r.db).
		Where("payee = ?", payee.Hex()).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Balance{Payee: payee}, nil
		}
		return entities.Balance{}, err
	}
	return row.toEntity()
}

func (r *Repository) SaveBalance(ctx context.Context, balance entities.Balance) error {
	row := balanceModel{
		Payee:     balance.Payee.Hex(),
		AmountWei: ledger.FormatWei(balance.Amount),
		UpdatedAt: balance.UpdatedAt.UTC(),
	}
	err := db.Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "payee"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount_wei", "updated_at"}),
		}).
		Create(&row).
		Error
	if err != nil {
		return err
	}
	r.logger.Debug("escrow balance stored",
		"event", "marketplace_balance_row_saved",
		"module", "commerce/resale-marketplace",
		"layer", "adapter",
		"payee", row.Payee,
		"amount_wei", row.AmountWei,
	)
	return nil
}

func (r *Repository) AppendOutbox(ctx context.Context, event contractsv1.Envelope) error {
	return r.outbox.Append(ctx, event)
}

type listingModel struct {
	TokenID         uint64    `gorm:"column:token_id;primaryKey;autoIncrement:false"`
	SerialID        string    `gorm:"column:serial_id;not null;index"`
	Seller          string    `gorm:"column:seller;not null"`
	PriceWei        string    `gorm:"column:price_wei;not null"`
	RoyaltyWei      string    `gorm:"column:royalty_wei;not null"`
	RoyaltyBps      uint32    `gorm:"column:royalty_bps;not null"`
	Minter          string    `gorm:"column:minter;not null"`
	DesignatedBuyer string    `gorm:"column:designated_buyer"`
	ListedAt        time.Time `gorm:"column:listed_at;not null"`
}

func (listingModel) TableName() string {
	return "listings"
}

func listingModelFromEntity(listing entities.Listing) listingModel {
	return listingModel{
		TokenID:         listing.TokenID,
		SerialID:        listing.SerialID,
		Seller:          listing.Seller.Hex(),
		PriceWei:        ledger.FormatWei(listing.Price),
		RoyaltyWei:      ledger.FormatWei(listing.RoyaltyAmount),
		RoyaltyBps:      uint32(listing.RoyaltyBps),
		Minter:          listing.Minter.Hex(),
		DesignatedBuyer: principalColumn(listing.DesignatedBuyer),
		ListedAt:        listing.ListedAt.UTC(),
	}
}

func (m listingModel) toEntity() (entities.Listing, error) {
	price, err := ledger.ParseWei(m.PriceWei)
	if err != nil {
		return entities.Listing{}, fmt.Errorf("listing %d price: %w", m.TokenID, err)
	}
	royalty, err := ledger.ParseWei(m.RoyaltyWei)
	if err != nil {
		return entities.Listing{}, fmt.Errorf("listing %d royalty: %w", m.TokenID, err)
	}
	return entities.Listing{
		TokenID:         m.TokenID,
		SerialID:        m.SerialID,
		Seller:          principalFromColumn(m.Seller),
		Price:           price,
		RoyaltyAmount:   royalty,
		RoyaltyBps:      ledger.BasisPoints(m.RoyaltyBps),
		Minter:          principalFromColumn(m.Minter),
		DesignatedBuyer: principalFromColumn(m.DesignatedBuyer),
		ListedAt:        m.ListedAt.UTC(),
	}, nil
}

type balanceModel struct {
	Payee     string    `gorm:"column:payee;primaryKey"`
	AmountWei string    `gorm:"column:amount_wei;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (balanceModel) TableName() string {
	return "escrow_balances"
}

func (m balanceModel) toEntity() (entities.Balance, error) {
	amount, err := ledger.ParseWei(m.AmountWei)
	if err != nil {
		return entities.Balance{}, fmt.Errorf("balance %s: %w", m.Payee, err)
	}
	return entities.Balance{
		Payee:     principalFromColumn(m.Payee),
		Amount:    amount,
		UpdatedAt: m.UpdatedAt.UTC(),
	}, nil
}

func principalColumn(p ledger.Principal) string {
	if ledger.IsZero(p) {
		return ""
	}
	return p.Hex()
}

func principalFromColumn(value string) ledger.Principal {
	p, err := ledger.ParseOptionalPrincipal(value)
	if err != nil {
		return ledger.ZeroPrincipal
	}
	return p
}
