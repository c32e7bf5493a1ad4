package users

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)
	// Upsert crea o reemplaza el documento completo (merge lo hace el service).
	Upsert(ctx context.Context, u User) error
}
