// Package entity contains the core business objects of the pipeline.
package entity

import "time"

// Customer represents a cleaned customer record.
type Customer struct {
	ID         int64     `json:"customer_id"` // Unique positive identifier.
	Name       string    `json:"name"`        // Display name.
	Age        int       `json:"age"`         // Age in years; imputed with the median when missing in raw data.
	City       string    `json:"city"`        // City of residence.
	SignupDate time.Time `json:"signup_date"` // Calendar date the customer signed up.
}
