package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"daanbridge-backend/internal/domain"
)

func TestDonationRepository_GetByOrderID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDonationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "donor_id", "ngo_id", "project_id", "amount", "status", "order_id", "payment_id", "receipt_number", "message", "donated_on", "created_on"}).
			AddRow(3, 1, 2, 4, int64(2500), "PENDING", "order_abc", "", "", "", time.Now(), time.Now())

		mock.ExpectQuery("FROM donations WHERE order_id = \\$1").
			WithArgs("order_abc").
			WillReturnRows(rows)

		donation, err := repo.GetByOrderID(ctx, "order_abc")
		assert.NoError(t, err)
		assert.Equal(t, int32(3), donation.ID)
		assert.Equal(t, domain.DonationStatusPending, donation.Status)
		assert.Equal(t, int64(2500), donation.Amount)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM donations WHERE order_id = \\$1").
			WithArgs("order_missing").
			WillReturnError(assert.AnError)

		donation, err := repo.GetByOrderID(ctx, "order_missing")
		assert.Error(t, err)
		assert.Nil(t, donation)
	})
}

func TestDonationRepository_GetDonorStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDonationRepository(db)
	ctx := context.Background()

	t.Run("AggregatesCompletedOnly", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"count", "sum", "projects"}).
			AddRow(5, int64(12000), 3)

		mock.ExpectQuery("FROM donations WHERE donor_id = \\$1 AND status = 'COMPLETED'").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		stats, err := repo.GetDonorStats(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), stats.DonationCount)
		assert.Equal(t, int64(12000), stats.TotalAmount)
		assert.Equal(t, int32(3), stats.ProjectCount)
	})

	t.Run("NoDonations", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"count", "sum", "projects"}).
			AddRow(0, int64(0), 0)

		mock.ExpectQuery("FROM donations WHERE donor_id = \\$1 AND status = 'COMPLETED'").
			WithArgs(int32(9)).
			WillReturnRows(rows)

		stats, err := repo.GetDonorStats(ctx, 9)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), stats.DonationCount)
		assert.Equal(t, int64(0), stats.TotalAmount)
	})
}

func TestDonationRepository_Leaderboard(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDonationRepository(db)
	ctx := context.Background()
	since := time.Now().AddDate(0, -1, 0)

	t.Run("OrderedByAmount", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"donor_id", "name", "is_anonymous", "total_amount", "donation_count", "projects_supported", "avg_donation"}).
			AddRow(1, "Asha", false, int64(9000), 3, 2, int64(3000)).
			AddRow(2, "Ravi", true, int64(5000), 5, 4, int64(1000))

		mock.ExpectQuery("FROM donations d").
			WithArgs(since).
			WillReturnRows(rows)

		entries, err := repo.Leaderboard(ctx, domain.LeaderboardByAmount, since)
		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, int32(1), entries[0].DonorID)
		assert.Equal(t, int64(9000), entries[0].TotalAmount)
		assert.True(t, entries[1].IsAnonymous)
	})
}

func TestDonationRepository_ListActivity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDonationRepository(db)
	ctx := context.Background()
	since := time.Now().AddDate(0, 0, -30)

	t.Run("MergesEventSources", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"ngo_id", "type", "amount", "date"}).
			AddRow(2, "donation_received", int64(1500), time.Now().AddDate(0, 0, -5)).
			AddRow(2, "funds_spent", int64(700), time.Now().AddDate(0, 0, -2))

		mock.ExpectQuery("FROM ngo_expenses WHERE ngo_id = \\$1").
			WithArgs(int32(2), since).
			WillReturnRows(rows)

		events, err := repo.ListActivity(ctx, 2, since)
		assert.NoError(t, err)
		assert.Len(t, events, 2)
		assert.Equal(t, domain.ActivityDonationReceived, events[0].Type)
		assert.Equal(t, domain.ActivityFundsSpent, events[1].Type)
	})
}
