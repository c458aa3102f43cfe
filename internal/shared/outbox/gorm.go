package outbox

import (
	"context"
	"time"

	contractsv1 "provenance/contracts/gen/events/v1"
	"provenance/internal/platform/db"

	"gorm.io/gorm"
)

// GormStore keeps one module's outbox in its own table.
type GormStore struct {
	db    *gorm.DB
	table string
}

func NewGormStore(conn *gorm.DB, table string) *GormStore {
	return &GormStore{db: conn, table: table}
}

func (s *GormStore) Table() string {
	return s.table
}

func (s *GormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).Table(s.table).AutoMigrate(&outboxModel{})
}

func (s *GormStore) Append(ctx context.Context, envelope contractsv1.Envelope) error {
	message, err := FromEnvelope(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     message.OutboxID,
		EventType:    message.EventType,
		PartitionKey: message.PartitionKey,
		Payload:      message.Payload,
		Status:       StatusPending,
		CreatedAt:    message.CreatedAt,
	}
	return db.Conn(ctx, s.db).Table(s.table).Create(&row).Error
}

func (s *GormStore) ListPending(ctx context.Context, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := db.Conn(ctx, s.db).
		Table(s.table).
		Where("status = ?", StatusPending).
		Order("seq ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]Message, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toMessage())
	}
	return items, nil
}

func (s *GormStore) MarkSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	sentAt = sentAt.UTC()
	result := db.Conn(ctx, s.db).
		Table(s.table).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":  StatusSent,
			"sent_at": sentAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

type outboxModel struct {
	Seq          uint64     `gorm:"column:seq;primaryKey;autoIncrement"`
	OutboxID     string     `gorm:"column:outbox_id;unique;not null"`
	EventType    string     `gorm:"column:event_type;not null"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (m outboxModel) toMessage() Message {
	return Message{
		OutboxID:     m.OutboxID,
		EventType:    m.EventType,
		PartitionKey: m.PartitionKey,
		Payload:      m.Payload,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}
