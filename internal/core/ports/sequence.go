package ports

import "context"

// Sequence hands out monotonically increasing numeric ids per named
// sequence. Repositories use it when saving records with id 0.
type Sequence interface {
	Next(ctx context.Context, name string) (int64, error)
}
