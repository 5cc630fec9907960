package get_catalog

// GetCatalogQuery represents a query for the terminals and apps offered on the form
type GetCatalogQuery struct{}

// Name returns the name of the query
func (q GetCatalogQuery) Name() string {
	return "GetCatalog"
}
