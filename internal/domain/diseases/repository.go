package diseases

import "context"

type Repository interface {
	Create(ctx context.Context, d Disease) error
	GetByID(ctx context.Context, id string) (Disease, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Disease, error)
	Update(ctx context.Context, d Disease) error
	Delete(ctx context.Context, id string) error
}
