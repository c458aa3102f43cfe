package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"provenance/contexts/identity-access/minter-registry/domain/entities"
	domainerrors "provenance/contexts/identity-access/minter-registry/domain/errors"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
	"provenance/internal/platform/db"
	"provenance/internal/shared/outbox"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const outboxTable = "minter_registry_outbox"

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
	if err := r.db.WithContext(ctx).AutoMigrate(&minterModel{}); err != nil {
		return err
	}
	return r.outbox.Migrate(ctx)
}

func (r *Repository) Outbox() *outbox.GormStore {
	return r.outbox
}

func (r *Repository) GetMinter(ctx context.Context, address ledger.Principal) (entities.MinterProfile, error) {
	var row minterModel
	err := db.Conn(ctx, r.db).
		Where("address = ?", address.Hex()).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.MinterProfile{}, domainerrors.ErrMinterNotFound
		}
		return entities.MinterProfile{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) CreateMinterWithOutbox(ctx context.Context, profile entities.MinterProfile, event contractsv1.Envelope) error {
	row := minterModelFromEntity(profile)
	if err := db.Conn(ctx, r.db).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrMinterExists
		}
		return err
	}
	return r.outbox.Append(ctx, event)
}

func (r *Repository) DeleteMinterWithOutbox(ctx context.Context, address ledger.Principal, event contractsv1.Envelope) error {
	result := db.Conn(ctx, r.db).
		Where("address = ?", address.Hex()).
		Delete(&minterModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMinterNotFound
	}
	r.logger.Debug("minter row deleted",
		"event", "minter_row_deleted",
		"module", "identity-access/minter-registry",
		"layer", "adapter",
		"minter", address.Hex(),
	)
	return r.outbox.Append(ctx, event)
}

type minterModel struct {
	Address    string    `gorm:"column:address;primaryKey"`
	Brand      string    `gorm:"column:brand;not null"`
	Location   string    `gorm:"column:location;not null"`
	RoyaltyBps uint32    `gorm:"column:royalty_bps;not null"`
	AddedBy    string    `gorm:"column:added_by"`
	AddedAt    time.Time `gorm:"column:added_at"`
}

func (minterModel) TableName() string {
	return "minter_profiles"
}

func minterModelFromEntity(profile entities.MinterProfile) minterModel {
	return minterModel{
		Address:    profile.Address.Hex(),
		Brand:      profile.Brand,
		Location:   profile.Location,
		RoyaltyBps: uint32(profile.RoyaltyBps),
		AddedBy:    profile.AddedBy.Hex(),
		AddedAt:    profile.AddedAt.UTC(),
	}
}

func (m minterModel) toEntity() entities.MinterProfile {
	address, _ := ledger.ParsePrincipal(m.Address)
	addedBy, _ := ledger.ParseOptionalPrincipal(m.AddedBy)
	return entities.MinterProfile{
		Address:    address,
		Brand:      m.Brand,
		Location:   m.Location,
		RoyaltyBps: ledger.BasisPoints(m.RoyaltyBps),
		AddedBy:    addedBy,
		AddedAt:    m.AddedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
