package runlog

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service handles run log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new run log service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record logs a run entry with the current timestamp if missing.
func (s *Service) Record(ctx context.Context, tenantID string, entry *Entry) error {
	if entry == nil || entry.EntryType == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Log(ctx, tenantID, entry); err != nil {
		return fmt.Errorf("logging run entry: %w", err)
	}
	return nil
}

// Recent lists run entries with filtering.
func (s *Service) Recent(ctx context.Context, tenantID string, opts ListOptions) ([]Entry, error) {
	return s.repo.List(ctx, tenantID, opts)
}
