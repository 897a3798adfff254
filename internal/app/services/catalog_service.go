package services

import (
	"context"

	"github.com/yigit/scholarship/internal/app/models"
)

// CatalogService exposes the read-only catalogs
type CatalogService struct {
	catalogRepo CatalogRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(catalogRepo CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// ListCalls returns all calls, newest first
func (s *CatalogService) ListCalls(ctx context.Context) ([]models.Call, error) {
	return s.catalogRepo.ListCalls(ctx)
}

// ListScholarshipTypes returns all scholarship types by name
func (s *CatalogService) ListScholarshipTypes(ctx context.Context) ([]models.ScholarshipType, error) {
	return s.catalogRepo.ListScholarshipTypes(ctx)
}
