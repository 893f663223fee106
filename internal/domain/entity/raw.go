package entity

// Raw records carry the unvalidated string values exactly as read from the
// raw CSV artifacts. All type coercion happens in the cleaning stage so that
// a malformed cell fails there, with row context, and nowhere else.

type RawCustomer struct {
	CustomerID string
	Name       string
	Age        string // May be empty; imputed during cleaning.
	City       string
	SignupDate string
}

type RawProduct struct {
	ProductID   string
	ProductName string
	Category    string
	BasePrice   string
}

type RawTransaction struct {
	TransactionID string
	CustomerID    string
	ProductID     string
	Quantity      string // May be empty; defaults to 1 during cleaning.
	Price         string
	TotalAmount   string
	Date          string
}
