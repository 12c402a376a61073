// Package delivery defines the contract every transport front-end satisfies.
package delivery

import "context"

// Delivery is a serving surface of the application. Serve blocks until the
// server stops or the context is cancelled.
type Delivery interface {
	Serve(ctx context.Context) error
}
