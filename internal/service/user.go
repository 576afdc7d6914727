package service

import (
	"context"
	"fmt"

	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/repository"
)

type userService struct {
	userRepo     repository.UserRepository
	donationRepo repository.DonationRepository
}

func NewUserService(userRepo repository.UserRepository, donationRepo repository.DonationRepository) UserService {
	return &userService{
		userRepo:     userRepo,
		donationRepo: donationRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, *domain.DonorStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("user not found: %w", err)
	}

	stats, err := s.donationRepo.GetDonorStats(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load donor stats: %w", err)
	}
	return user, stats, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int32, name, email, phone string, isAnonymous bool) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	if name != "" {
		user.Name = name
	}
	if email != "" {
		user.Email = email
	}
	if phone != "" {
		user.PhoneNumber = phone
	}
	user.IsAnonymous = isAnonymous

	return s.userRepo.Update(ctx, user)
}

func (s *userService) GetDonorStats(ctx context.Context, userID int32) (*domain.DonorStats, error) {
	return s.donationRepo.GetDonorStats(ctx, userID)
}
