package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"provenance/contexts/provenance/theft-registry/domain/entities"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
	"provenance/internal/platform/db"
	"provenance/internal/shared/outbox"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const outboxTable = "theft_registry_outbox"

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
	if err := r.db.WithContext(ctx).AutoMigrate(&theftFlagModel{}); err != nil {
		return err
	}
	return r.outbox.Migrate(ctx)
}

func (r *Repository) Outbox() *outbox.GormStore {
	return r.outbox
}

func (r *Repository) GetFlag(ctx context.Context, serialID string) (entities.TheftFlag, bool, error) {
	var row theftFlagModel
	err := db.Conn(ctx, r.db).
		Where("serial_id = ?", serialID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.TheftFlag{}, false, nil
		}
		return entities.TheftFlag{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) SaveFlagWithOutbox(ctx context.Context, flag entities.TheftFlag, event contractsv1.Envelope) error {
	row := theftFlagModelFromEntity(flag)
	err := db.Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "serial_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"stolen", "updated_by", "updated_at"}),
		}).
		Create(&row).
		Error
	if err != nil {
		return err
	}
	r.logger.Debug("theft flag stored",
		"event", "theft_flag_row_saved",
		"module", "provenance/theft-registry",
		"layer", "adapter",
		"serial_id", flag.SerialID,
		"stolen", flag.Stolen,
	)
	return r.outbox.Append(ctx, event)
}

type theftFlagModel struct {
	SerialID  string    `gorm:"column:serial_id;primaryKey"`
	Stolen    bool      `gorm:"column:stolen;not null"`
	UpdatedBy string    `gorm:"column:updated_by;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (theftFlagModel) TableName() string {
	return "theft_flags"
}

func theftFlagModelFromEntity(flag entities.TheftFlag) theftFlagModel {
	return theftFlagModel{
		SerialID:  flag.SerialID,
		Stolen:    flag.Stolen,
		UpdatedBy: flag.UpdatedBy.Hex(),
		UpdatedAt: flag.UpdatedAt.UTC(),
	}
}

func (m theftFlagModel) toEntity() entities.TheftFlag {
	return entities.TheftFlag{
		SerialID:  m.SerialID,
		Stolen:    m.Stolen,
		UpdatedBy: principalFromColumn(m.UpdatedBy),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

func principalFromColumn(value string) ledger.Principal {
	p, err := ledger.ParseOptionalPrincipal(value)
	if err != nil {
		return ledger.ZeroPrincipal
	}
	return p
}
