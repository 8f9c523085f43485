package pets

import (
	"context"
	"errors"
)

// ErrNotFound es la señal de ausencia: un id bien formado que no resuelve.
// No es una falla de transporte; los adapters la devuelven sin log ni wrap.
var ErrNotFound = errors.New("pet not found")

// Repository es la capa fina sobre el almacén clave-valor.
// Put sobreescribe sin condiciones (no hay chequeo de unicidad más allá
// del id generado). Delete es idempotente: borrar un id inexistente no
// es error.
type Repository interface {
	Put(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	GetAll(ctx context.Context) ([]Pet, error)
	GetByOwnerID(ctx context.Context, ownerID string) ([]Pet, error)
	Delete(ctx context.Context, id string) error
}
