// Package delivery defines the contract long-lived delivery mechanisms
// (HTTP servers) implement so the application can start them uniformly.
package delivery

import "context"

// Delivery is a blocking server loop. Serve returns when the server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
