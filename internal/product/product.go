package product

// Product is a single stored inventory record.
//
// ID is assigned by the store and is only used for direct lookup.
// Name is the business key and is unique across the store.
type Product struct {
	ID          int64
	Name        string
	PriceCents  int64
	Quantity    int64
	LastUpdated Date
}

// Candidate is an incoming record that has not been committed to the store.
type Candidate struct {
	Name       string
	PriceCents int64
	Quantity   int64
	Date       Date
}

// Apply overwrites every mutable field of p with the candidate's values.
// The ID is left untouched.
func (c Candidate) Apply(p Product) Product {
	p.Name = c.Name
	p.PriceCents = c.PriceCents
	p.Quantity = c.Quantity
	p.LastUpdated = c.Date
	return p
}

// Product returns the record the candidate would create on first insert.
func (c Candidate) Product() Product {
	return c.Apply(Product{})
}
