package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"daanbridge-backend/internal/audit"
	"daanbridge-backend/internal/repository"
)

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Append(ctx context.Context, record *audit.Record) error {
	data, err := json.Marshal(record.Data)
	if err != nil {
		return err
	}
	query := `INSERT INTO audit_records (timestamp, action, data, hash, previous_hash)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err = r.db.ExecContext(ctx, query, record.Timestamp, record.Action, data, record.Hash, record.PreviousHash)
	return err
}

func (r *auditRepository) LastHash(ctx context.Context) (string, error) {
	query := `SELECT hash FROM audit_records ORDER BY id DESC LIMIT 1`
	var hash string
	err := r.db.QueryRowContext(ctx, query).Scan(&hash)
	if err == sql.ErrNoRows {
		return audit.GenesisHash, nil
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

func (r *auditRepository) List(ctx context.Context, limit int32) ([]*audit.Record, error) {
	query := `SELECT timestamp, action, data, hash, previous_hash
	          FROM audit_records ORDER BY id LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*audit.Record
	for rows.Next() {
		var record audit.Record
		var data []byte
		if err := rows.Scan(&record.Timestamp, &record.Action, &data, &record.Hash, &record.PreviousHash); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &record.Data); err != nil {
			return nil, err
		}
		record.Immutable = true
		records = append(records, &record)
	}
	return records, rows.Err()
}
