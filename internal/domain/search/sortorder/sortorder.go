package sortorder

// Order is the result ordering.
type Order string

// Order constants.
const (
	// Relevance sorts by score, newest first on ties.
	Relevance Order = "relevance"
	// Date sorts newest first.
	Date  Order = "date"
	Title Order = "title"
)

// IsValid checks if the order is one of the supported values.
func (o Order) IsValid() bool {
	return o == Relevance || o == Date || o == Title
}

// OrDefault returns Relevance for the zero value.
func (o Order) OrDefault() Order {
	if o == "" {
		return Relevance
	}
	return o
}
