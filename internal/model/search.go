package model

// ProductFilter is the typed search criteria reconstructed from the request's
// serialized search object. Zero values mean "not filtered"; an empty Status
// means the default visibility policy (hide deleted).
type ProductFilter struct {
	Name         string
	ProductID    *int64
	Status       Status
	CategoryName string
}

// Pagination is request-scoped paging state. Page is 1-based.
type Pagination struct {
	Page  int
	Limit int
}

// Skip is the number of documents before the current page.
func (p Pagination) Skip() int {
	return (p.Page - 1) * p.Limit
}
