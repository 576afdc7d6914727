package postgres

import (
	"database/sql"

	"daanbridge-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.NGORepository
	repository.ProjectRepository
	repository.DonationRepository
	repository.NotificationRepository
	repository.AuditRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		NGORepository:          NewNGORepository(db),
		ProjectRepository:      NewProjectRepository(db),
		DonationRepository:     NewDonationRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		AuditRepository:        NewAuditRepository(db),
	}
}
