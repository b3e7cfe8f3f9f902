package domain

import "fmt"

// Product is part of the fixed catalog; nothing is persisted for it.
// Price is in minor currency units.
type Product struct {
	ID          string
	Name        string
	Price       int64
	Description string
}

// Catalog is the full product lineup, in display order.
var Catalog = []Product{
	{ID: "p1", Name: "Product 1", Price: 1999, Description: "Generic description for product 1"},
	{ID: "p2", Name: "Product 2", Price: 2999, Description: "Generic description for product 2"},
}

// ProductByID reports whether id belongs to the catalog.
func ProductByID(id string) (Product, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// MustProduct panics on an unknown id. The catalog is small and fixed,
// so an unknown id in code paths that use this is a programming error.
func MustProduct(id string) Product {
	p, ok := ProductByID(id)
	if !ok {
		panic(fmt.Sprintf("unknown product id %q", id))
	}
	return p
}
