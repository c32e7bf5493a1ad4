package symptoms

import "context"

// Repository solo ofrece filtros por igualdad (owner, owner+date).
// Los rangos se filtran en memoria en el service (ver FilterRange).
type Repository interface {
	Create(ctx context.Context, r Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Record, error)
	ListByOwnerAndDate(ctx context.Context, ownerUserID, date string) ([]Record, error)
	Update(ctx context.Context, r Record) error
	Delete(ctx context.Context, id string) error
}
