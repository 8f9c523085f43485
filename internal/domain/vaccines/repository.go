package vaccines

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("vaccine not found")

// Repository es la capa fina sobre el almacén clave-valor, con la misma
// semántica que pets.Repository: Put sobreescribe, Delete es idempotente.
// GetByPetID devuelve slice vacío (no ErrNotFound) cuando no hay matches.
type Repository interface {
	Put(ctx context.Context, v Vaccine) error
	GetByID(ctx context.Context, id string) (Vaccine, error)
	GetAll(ctx context.Context) ([]Vaccine, error)
	GetByPetID(ctx context.Context, petID string) ([]Vaccine, error)
	Delete(ctx context.Context, id string) error
}
