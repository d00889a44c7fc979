package supplier

import "context"

// Repository is the persistence contract for suppliers.
// Implementations return (nil, nil) when a record does not exist.
type Repository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, id uint) (*Supplier, error)
	GetBySID(ctx context.Context, sid string) (*Supplier, error)
}
