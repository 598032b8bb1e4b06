// Package dbtest はテスト用のインメモリSQLiteを用意する。
package dbtest

import (
	"context"
	"testing"

	"backoffice/internal/infra/db"

	"gorm.io/gorm"
)

func New(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close(gdb)
	})
	return gdb
}
