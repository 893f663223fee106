package entity

// Categories is the fixed set products are drawn from.
var Categories = []string{"Electronics", "Grocery", "Clothing", "Sports", "Home Decor"}

// Product represents a cleaned product record.
type Product struct {
	ID        int64   `json:"product_id"`   // Unique positive identifier.
	Name      string  `json:"product_name"` // Display name.
	Category  string  `json:"category"`     // One of Categories.
	BasePrice float64 `json:"base_price"`   // List price, always > 0, cents precision.
}
