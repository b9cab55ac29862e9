package medications

import "context"

type Repository interface {
	// Create persiste e y escribe el ID asignado en e.ID.
	Create(ctx context.Context, e *Entry) error
	List(ctx context.Context) ([]Entry, error)
}
