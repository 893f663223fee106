package entity

import "time"

// Transaction represents a cleaned transaction record.
type Transaction struct {
	ID          int64     `json:"transaction_id"`
	CustomerID  int64     `json:"customer_id"` // References an existing Customer.
	ProductID   int64     `json:"product_id"`  // References an existing Product.
	Quantity    int       `json:"quantity"`    // Positive; imputed with 1 when missing in raw data.
	UnitPrice   float64   `json:"price"`       // Sampled perturbation of the product's base price.
	TotalAmount float64   `json:"total_amount"`
	Date        time.Time `json:"date"` // Calendar date of the transaction.
}

// EnrichedTransaction is a Transaction augmented with the derived feature
// columns the cleaning stage computes.
type EnrichedTransaction struct {
	Transaction

	Year  int `json:"year"`
	Month int `json:"month"` // 1-12.
	Day   int `json:"day"`

	// DayOfWeek uses the 0-indexed Monday-start convention: 0=Monday .. 6=Sunday.
	DayOfWeek int `json:"day_of_week"`

	// EffectivePrice = TotalAmount / Quantity, cents-rounded. Mathematically
	// redundant with UnitPrice but computed independently as a consistency
	// signal.
	EffectivePrice float64 `json:"effective_price"`
}

// DayOfWeek converts Go's Sunday-start weekday to the pipeline's
// Monday-start convention.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
