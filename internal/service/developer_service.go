package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/repository"
)

// DeveloperService handles Developer-related business logic operations.
type DeveloperService struct {
	logRepo *repository.LogRepository
}

// NewDeveloperService creates a new DeveloperService with the provided repository dependencies.
func NewDeveloperService(
	logRepo *repository.LogRepository,
) *DeveloperService {
	return &DeveloperService{
		logRepo: logRepo,
	}
}

// GetLogs returns a page of the activity log.
func (s *DeveloperService) GetLogs(ctx context.Context, filters *model.LogFilters) (*model.LogResponse, error) {
	logs, err := s.logRepo.GetLogs(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveLogs, err)
	}
	return logs, nil
}
