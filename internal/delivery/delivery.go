// Package delivery defines the long-running servers started by the application.
package delivery

import "context"

// Delivery is a server whose Serve blocks until it stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
