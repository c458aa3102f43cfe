package db

import (
	"context"
	"errors"
	"testing"
)

type probeModel struct {
	ID    string `gorm:"column:id;primaryKey"`
	Label string `gorm:"column:label"`
}

func (probeModel) TableName() string {
	return "probes"
}

func TestTransactorRollsBackAndJoinsNestedUnits(t *testing.T) {
	conn, err := ConnectSQLite(":memory:")
	if err != nil {
		t.Fatalf("connect sqlite: %v", err)
	}
	defer conn.Close()
	if conn.Dialect() != "sqlite" {
		t.Fatalf("expected sqlite dialect, got %q", conn.Dialect())
	}
	if err := conn.DB.AutoMigrate(&probeModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	transactor := NewTransactor(conn.DB)

	err = transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := Conn(ctx, conn.DB).Create(&probeModel{ID: "outer", Label: "a"}).Error; err != nil {
			return err
		}
		if err := transactor.WithinTx(ctx, func(ctx context.Context) error {
			return Conn(ctx, conn.DB).Create(&probeModel{ID: "inner", Label: "b"}).Error
		}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	if err == nil {
		t.Fatalf("expected abort error")
	}

	var count int64
	if err := conn.DB.Model(&probeModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no rows after rollback, got %d", count)
	}

	if err := transactor.WithinTx(ctx, func(ctx context.Context) error {
		return Conn(ctx, conn.DB).Create(&probeModel{ID: "kept", Label: "c"}).Error
	}); err != nil {
		t.Fatalf("commit: %v", err)
	}

	var row probeModel
	if err := transactor.View(ctx, func(ctx context.Context) error {
		return Conn(ctx, conn.DB).Where("id = ?", "kept").First(&row).Error
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
	if row.Label != "c" {
		t.Fatalf("unexpected row %+v", row)
	}
}

func TestConnectRequiresDSN(t *testing.T) {
	if _, err := Connect(""); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
	if _, err := ConnectSQLite(""); err == nil {
		t.Fatalf("expected error for empty sqlite path")
	}
}
