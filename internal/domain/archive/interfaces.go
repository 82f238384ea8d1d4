package archive

import "context"

// Repository provides persistence for archived cycles.
type Repository interface {
	Create(ctx context.Context, c *Cycle) error
	List(ctx context.Context) ([]Cycle, error)
	Delete(ctx context.Context, id string) error
}
