package postgres

import (
	"context"
	"database/sql"
	"time"

	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/repository"
)

type donationRepository struct {
	db *sql.DB
}

func NewDonationRepository(db *sql.DB) repository.DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, donation *domain.Donation) error {
	query := `INSERT INTO donations (donor_id, ngo_id, project_id, amount, status, order_id, payment_id, receipt_number, message, donated_on, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	if donation.DonatedOn.IsZero() {
		donation.DonatedOn = now
	}
	donation.CreatedOn = now
	return r.db.QueryRowContext(ctx, query,
		donation.DonorID, donation.NGOID, donation.ProjectID, donation.Amount, donation.Status,
		donation.OrderID, donation.PaymentID, donation.ReceiptNumber, donation.Message,
		donation.DonatedOn, donation.CreatedOn).Scan(&donation.ID)
}

func (r *donationRepository) GetByID(ctx context.Context, id int32) (*domain.Donation, error) {
	query := `SELECT id, donor_id, ngo_id, project_id, amount, status, order_id, COALESCE(payment_id, ''), COALESCE(receipt_number, ''), COALESCE(message, ''), donated_on, created_on
	          FROM donations WHERE id = $1`
	return r.scanDonation(r.db.QueryRowContext(ctx, query, id))
}

func (r *donationRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Donation, error) {
	query := `SELECT id, donor_id, ngo_id, project_id, amount, status, order_id, COALESCE(payment_id, ''), COALESCE(receipt_number, ''), COALESCE(message, ''), donated_on, created_on
	          FROM donations WHERE order_id = $1`
	return r.scanDonation(r.db.QueryRowContext(ctx, query, orderID))
}

func (r *donationRepository) Update(ctx context.Context, donation *domain.Donation) error {
	query := `UPDATE donations SET status = $1, payment_id = $2, receipt_number = $3, donated_on = $4 WHERE id = $5`
	_, err := r.db.ExecContext(ctx, query, donation.Status, donation.PaymentID, donation.ReceiptNumber, donation.DonatedOn, donation.ID)
	return err
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID int32, page, pageSize int32) ([]domain.Donation, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, donor_id, ngo_id, project_id, amount, status, order_id, COALESCE(payment_id, ''), COALESCE(receipt_number, ''), COALESCE(message, ''), donated_on, created_on
	          FROM donations WHERE donor_id = $1 ORDER BY donated_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, donorID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var donations []domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(&d.ID, &d.DonorID, &d.NGOID, &d.ProjectID, &d.Amount, &d.Status, &d.OrderID, &d.PaymentID, &d.ReceiptNumber, &d.Message, &d.DonatedOn, &d.CreatedOn); err != nil {
			return nil, 0, err
		}
		donations = append(donations, d)
	}

	var count int32
	countQuery := `SELECT count(*) FROM donations WHERE donor_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, donorID).Scan(&count); err != nil {
		return nil, 0, err
	}
	return donations, count, nil
}

func (r *donationRepository) GetDonorStats(ctx context.Context, donorID int32) (*domain.DonorStats, error) {
	query := `SELECT count(*), COALESCE(SUM(amount), 0), count(DISTINCT project_id)
	          FROM donations WHERE donor_id = $1 AND status = 'COMPLETED'`
	var stats domain.DonorStats
	err := r.db.QueryRowContext(ctx, query, donorID).Scan(&stats.DonationCount, &stats.TotalAmount, &stats.ProjectCount)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Leaderboard delivers pre-sorted aggregate rows; the ranker assigns ranks
// without re-sorting, so the ORDER BY here is the ordering contract.
func (r *donationRepository) Leaderboard(ctx context.Context, category domain.LeaderboardCategory, since time.Time) ([]domain.LeaderboardEntry, error) {
	orderBy := "total_amount DESC"
	switch category {
	case domain.LeaderboardByCount:
		orderBy = "donation_count DESC"
	case domain.LeaderboardByAverage:
		orderBy = "avg_donation DESC"
	}

	query := `SELECT d.donor_id, u.name, u.is_anonymous,
	                 SUM(d.amount) AS total_amount,
	                 count(*) AS donation_count,
	                 count(DISTINCT d.project_id) AS projects_supported,
	                 (SUM(d.amount) / count(*)) AS avg_donation
	          FROM donations d
	          JOIN users u ON u.id = d.donor_id
	          WHERE d.status = 'COMPLETED' AND d.donated_on >= $1
	          GROUP BY d.donor_id, u.name, u.is_anonymous
	          ORDER BY ` + orderBy

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.DonorID, &e.Name, &e.IsAnonymous, &e.TotalAmount, &e.DonationCount, &e.ProjectsSupported, &e.AvgDonation); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *donationRepository) ListActivity(ctx context.Context, ngoID int32, since time.Time) ([]domain.ActivityEvent, error) {
	query := `SELECT ngo_id, 'donation_received', amount, donated_on
	          FROM donations WHERE ngo_id = $1 AND status = 'COMPLETED' AND donated_on >= $2
	          UNION ALL
	          SELECT p.ngo_id, 'project_update', 0, pu.posted_on
	          FROM project_updates pu
	          JOIN projects p ON p.id = pu.project_id
	          WHERE p.ngo_id = $1 AND pu.posted_on >= $2
	          UNION ALL
	          SELECT ngo_id, 'funds_spent', amount, spent_on
	          FROM ngo_expenses WHERE ngo_id = $1 AND spent_on >= $2
	          ORDER BY 4`

	rows, err := r.db.QueryContext(ctx, query, ngoID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.ActivityEvent
	for rows.Next() {
		var e domain.ActivityEvent
		if err := rows.Scan(&e.NGOID, &e.Type, &e.Amount, &e.Date); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *donationRepository) scanDonation(row *sql.Row) (*domain.Donation, error) {
	var d domain.Donation
	err := row.Scan(&d.ID, &d.DonorID, &d.NGOID, &d.ProjectID, &d.Amount, &d.Status, &d.OrderID, &d.PaymentID, &d.ReceiptNumber, &d.Message, &d.DonatedOn, &d.CreatedOn)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
