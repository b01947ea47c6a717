// Package delivery defines the contract between the application core and its
// transport layers.
package delivery

import "context"

// Delivery is a long-running transport server. Serve blocks until the server
// stops or the context is cancelled.
type Delivery interface {
	Serve(ctx context.Context) error
}
