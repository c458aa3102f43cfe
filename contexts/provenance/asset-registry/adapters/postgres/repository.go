package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"provenance/contexts/provenance/asset-registry/domain/entities"
	domainerrors "provenance/contexts/provenance/asset-registry/domain/errors"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
	"provenance/internal/platform/db"
	"provenance/internal/shared/outbox"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxTable = "asset_registry_outbox"
	settingsRow = 1
)

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
	if err := r.db.WithContext(ctx).AutoMigrate(&assetModel{}, &settingsModel{}); err != nil {
		return err
	}
	return r.outbox.Migrate(ctx)
}

func (r *Repository) Outbox() *outbox.GormStore {
	return r.outbox
}

func (r *Repository) GetAsset(ctx context.Context, serialID string) (entities.Asset, error) {
	var row assetModel
	err := db.Conn(ctx, r.db).
		Where("serial_id = ?", serialID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Asset{}, domainerrors.ErrTokenNotFound
		}
		return entities.Asset{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetSettings(ctx context.Context) (entities.RegistrySettings, error) {
	row, err := r.loadSettings(ctx)
	if err != nil {
		return entities.RegistrySettings{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) AllocateTokenID(ctx context.Context) (uint64, error) {
	row, err := r.loadSettings(ctx)
	if err != nil {
		return 0, err
	}
	row.LastTokenID++
	if err := r.saveSettings(ctx, row); err != nil {
		return 0, err
	}
	return row.LastTokenID, nil
}

func (r *Repository) CreateAssetWithOutbox(ctx context.Context, asset entities.Asset, event contractsv1.Envelope) error {
	row := assetModelFromEntity(asset)
	if err := db.Conn(ctx, r.db).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrSerialAlreadyMinted
		}
		return err
	}
	return r.outbox.Append(ctx, event)
}

func (r *Repository) UpdateAsset(ctx context.Context, asset entities.Asset) error {
	result := db.Conn(ctx, r.db).
		Model(&assetModel{}).
		Where("serial_id = ?", asset.SerialID).
		Updates(map[string]any{
			"owner":             asset.Owner.Hex(),
			"approved_operator": principalColumn(asset.ApprovedOperator),
			"updated_at":        asset.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTokenNotFound
	}
	return nil
}

func (r *Repository) UpdateAssetWithOutbox(ctx context.Context, asset entities.Asset, event contractsv1.Envelope) error {
	if err := r.UpdateAsset(ctx, asset); err != nil {
		return err
	}
	return r.outbox.Append(ctx, event)
}

func (r *Repository) DeleteAssetWithOutbox(ctx context.Context, serialID string, event contractsv1.Envelope) error {
	result := db.Conn(ctx, r.db).
		Where("serial_id = ?", serialID).
		Delete(&assetModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTokenNotFound
	}
	return r.outbox.Append(ctx, event)
}

func (r *Repository) SaveMarketplaceOperatorWithOutbox(ctx context.Context, operator ledger.Principal, event contractsv1.Envelope) error {
	row, err := r.loadSettings(ctx)
	if err != nil {
		return err
	}
	row.MarketplaceOperator = principalColumn(operator)
	if err := r.saveSettings(ctx, row); err != nil {
		return err
	}
	r.logger.Debug("marketplace operator stored",
		"event", "asset_marketplace_row_saved",
		"module", "provenance/asset-registry",
		"layer", "adapter",
		"operator", operator.Hex(),
	)
	return r.outbox.Append(ctx, event)
}

func (r *Repository) loadSettings(ctx context.Context) (settingsModel, error) {
	var row settingsModel
	err := db.Conn(ctx, r.db).Where("id = ?", settingsRow).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return settingsModel{ID: settingsRow}, nil
	}
	return row, err
}

func (r *Repository) saveSettings(ctx context.Context, row settingsModel) error {
	row.ID = settingsRow
	return db.Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).
		Error
}

type assetModel struct {
	SerialID         string    `gorm:"column:serial_id;primaryKey"`
	TokenID          uint64    `gorm:"column:token_id;uniqueIndex;not null"`
	Minter           string    `gorm:"column:minter;not null"`
	Owner            string    `gorm:"column:owner;not null"`
	ApprovedOperator string    `gorm:"column:approved_operator"`
	MetadataURI      string    `gorm:"column:metadata_uri"`
	MintedAt         time.Time `gorm:"column:minted_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (assetModel) TableName() string {
	return "assets"
}

func assetModelFromEntity(asset entities.Asset) assetModel {
	return assetModel{
		SerialID:         asset.SerialID,
		TokenID:          asset.TokenID,
		Minter:           asset.Minter.Hex(),
		Owner:            asset.Owner.Hex(),
		ApprovedOperator: principalColumn(asset.ApprovedOperator),
		MetadataURI:      asset.MetadataURI,
		MintedAt:         asset.MintedAt.UTC(),
		UpdatedAt:        asset.UpdatedAt.UTC(),
	}
}

func (m assetModel) toEntity() entities.Asset {
	return entities.Asset{
		SerialID:         m.SerialID,
		TokenID:          m.TokenID,
		Minter:           principalFromColumn(m.Minter),
		Owner:            principalFromColumn(m.Owner),
		ApprovedOperator: principalFromColumn(m.ApprovedOperator),
		MetadataURI:      m.MetadataURI,
		MintedAt:         m.MintedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

type settingsModel struct {
	ID                  int    `gorm:"column:id;primaryKey;autoIncrement:false"`
	MarketplaceOperator string `gorm:"column:marketplace_operator"`
	LastTokenID         uint64 `gorm:"column:last_token_id;not null"`
}

func (settingsModel) TableName() string {
	return "asset_registry_settings"
}

func (m settingsModel) toEntity() entities.RegistrySettings {
	return entities.RegistrySettings{
		MarketplaceOperator: principalFromColumn(m.MarketplaceOperator),
		LastTokenID:         m.LastTokenID,
	}
}

// principalColumn stores the zero principal as an empty string.
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

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
