package get_catalog

import (
	"context"

	"provpush/internal/domain/model"
	"provpush/internal/domain/repository"
)

// GetCatalogQueryHandler handles the GetCatalogQuery
type GetCatalogQueryHandler struct {
	repository repository.CatalogRepository
}

// Handle returns the loaded catalog.
func (h *GetCatalogQueryHandler) Handle(_ context.Context, _ GetCatalogQuery) (model.Catalog, error) {
	return h.repository.Catalog(), nil
}

// NewGetCatalogQueryHandler creates a new GetCatalogQueryHandler
func NewGetCatalogQueryHandler(repository repository.CatalogRepository) *GetCatalogQueryHandler {
	return &GetCatalogQueryHandler{repository: repository}
}
