package query

import (
	"provpush/internal/application/query/get_catalog"
	"provpush/internal/domain/repository"
	"provpush/pkg/cqrs"
	"provpush/pkg/log"
)

// RegisterQueryHandlers registers every query handler on b.
func RegisterQueryHandlers(b cqrs.QueryBus, catalog repository.CatalogRepository) error {
	if err := b.Register(get_catalog.NewGetCatalogQueryHandler(catalog)); err != nil {
		return log.Errorf("failed to register get catalog query handler: %w", err)
	}

	return nil
}
