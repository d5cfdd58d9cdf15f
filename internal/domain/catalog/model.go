package catalog

// Product is a shared catalog entry. The portal treats every field as
// read-only display data owned by the backend.
type Product struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ProductCode  string `json:"productCode"`
	Description  string `json:"description"`
	CategoryID   *int64 `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// Category is a catalog grouping used for filtering.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductInput carries the fields of a product create/update submission.
type ProductInput struct {
	Name        string `json:"name"`
	ProductCode string `json:"productCode"`
	Description string `json:"description"`
	CategoryID  *int64 `json:"categoryId"`
}

// EnrolledIDSet is the set of product ids the vendor is enrolled in. It is
// only ever rebuilt wholesale from a fresh enrollment list; mutating it in
// place would let it drift from server state.
type EnrolledIDSet map[int64]struct{}

// SetOf builds an EnrolledIDSet from a list of product ids.
func SetOf(ids []int64) EnrolledIDSet {
	set := make(EnrolledIDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether the given product id is in the set.
func (s EnrolledIDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Candidates returns the catalog products the vendor could still enroll in:
// the full catalog minus the enrolled set, in catalog order.
func Candidates(products []Product, enrolled EnrolledIDSet) []Product {
	var out []Product
	for _, p := range products {
		if !enrolled.Has(p.ID) {
			out = append(out, p)
		}
	}
	return out
}
