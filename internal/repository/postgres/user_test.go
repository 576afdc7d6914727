package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"daanbridge-backend/internal/domain"
)

func TestUserRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "phone_number", "password_hash", "name", "role", "is_anonymous", "created_on", "updated_on"}).
			AddRow(1, "donor@test.com", "9876543210", "hash", "Asha", "DONOR", false, time.Now(), time.Now())

		mock.ExpectQuery("FROM users WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		user, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, int32(1), user.ID)
		assert.Equal(t, domain.UserRoleDonor, user.Role)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM users WHERE id = \\$1").
			WithArgs(int32(2)).
			WillReturnError(assert.AnError)

		user, err := repo.GetByID(ctx, 2)
		assert.Error(t, err)
		assert.Nil(t, user)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "phone_number", "password_hash", "name", "role", "is_anonymous", "created_on", "updated_on"}).
			AddRow(7, "ngo@test.com", "", "hash", "Seva Trust", "NGO", false, time.Now(), time.Now())

		mock.ExpectQuery("FROM users WHERE email = \\$1").
			WithArgs("ngo@test.com").
			WillReturnRows(rows)

		user, err := repo.GetByEmail(ctx, "ngo@test.com")
		assert.NoError(t, err)
		assert.Equal(t, int32(7), user.ID)
		assert.Equal(t, domain.UserRoleNGO, user.Role)
	})
}

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		u := &domain.User{
			Email:        "new@test.com",
			PhoneNumber:  "9812345678",
			PasswordHash: "hash",
			Name:         "New Donor",
			Role:         domain.UserRoleDonor,
		}

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.Email, u.PhoneNumber, u.PasswordHash, u.Name, u.Role, u.IsAnonymous, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		err := repo.Create(ctx, u)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), u.ID)
	})
}
