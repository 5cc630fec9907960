package repository

import "provpush/internal/domain/model"

// CatalogRepository exposes the app catalog. Implementations return the same
// immutable value on every call.
type CatalogRepository interface {
	Catalog() model.Catalog
}
