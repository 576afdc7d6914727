package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"daanbridge-backend/internal/audit"
)

func TestAuditRepository_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAuditRepository(db)
	ctx := context.Background()

	t.Run("PersistsRecordFields", func(t *testing.T) {
		record, err := audit.NewRecord("ngo_verified", map[string]any{"ngo_id": 7}, audit.GenesisHash)
		assert.NoError(t, err)

		mock.ExpectExec("INSERT INTO audit_records").
			WithArgs(record.Timestamp, record.Action, []byte(`{"ngo_id":7}`), record.Hash, record.PreviousHash).
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, repo.Append(ctx, record))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAuditRepository_LastHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAuditRepository(db)
	ctx := context.Background()

	t.Run("ReturnsNewestHash", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"hash"}).AddRow("abc123")

		mock.ExpectQuery("SELECT hash FROM audit_records ORDER BY id DESC LIMIT 1").
			WillReturnRows(rows)

		hash, err := repo.LastHash(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "abc123", hash)
	})

	t.Run("EmptyTableYieldsGenesis", func(t *testing.T) {
		mock.ExpectQuery("SELECT hash FROM audit_records ORDER BY id DESC LIMIT 1").
			WillReturnRows(sqlmock.NewRows([]string{"hash"}))

		hash, err := repo.LastHash(ctx)
		assert.NoError(t, err)
		assert.Equal(t, audit.GenesisHash, hash)
	})
}

func TestAuditRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAuditRepository(db)
	ctx := context.Background()

	t.Run("RestoresChainOrder", func(t *testing.T) {
		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"timestamp", "action", "data", "hash", "previous_hash"}).
			AddRow(now, "donation_completed", []byte(`{"donation_id":3}`), "h1", audit.GenesisHash).
			AddRow(now, "ngo_verified", []byte(`{"ngo_id":7}`), "h2", "h1")

		mock.ExpectQuery("FROM audit_records ORDER BY id LIMIT \\$1").
			WithArgs(int32(100)).
			WillReturnRows(rows)

		records, err := repo.List(ctx, 100)
		assert.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Equal(t, "donation_completed", records[0].Action)
		assert.Equal(t, "h1", records[1].PreviousHash)
		assert.True(t, records[0].Immutable)
		assert.Equal(t, float64(7), records[1].Data["ngo_id"])
	})
}
