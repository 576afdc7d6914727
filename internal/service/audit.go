package service

import (
	"context"
	"fmt"

	"daanbridge-backend/internal/audit"
	"daanbridge-backend/internal/repository"
)

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) Trail(ctx context.Context, limit int32) ([]*audit.Record, int, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	records, err := s.auditRepo.List(ctx, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load audit trail: %w", err)
	}
	return records, audit.VerifyChain(records), nil
}
