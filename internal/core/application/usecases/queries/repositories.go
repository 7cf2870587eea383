// Package queries contains read-only operations. Handlers read through the
// repository ports without opening a transaction, so the same handlers serve
// the in-memory and the PostgreSQL backends.
package queries

import "bakery/internal/core/ports"

type (
	// Reader exposes the repositories a query may read from.
	Reader interface {
		UserRepository() ports.UserRepository
		OrderRepository() ports.OrderRepository
		ApplicationRepository() ports.ApplicationRepository
		ReviewRepository() ports.ReviewRepository
		MessageRepository() ports.MessageRepository
	}

	ReaderFactory interface {
		Create() Reader
	}
)
