package theatre

// Performance is a single billed show.
type Performance struct {
	PlayID   string
	Audience int
}

// Invoice groups the performances billed to one customer.
// Performance order determines line item order on the statement.
type Invoice struct {
	Customer     string
	Performances []Performance
}
