package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat, bird, rabbit, other
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesBird   Species = "bird"
	SpeciesRabbit Species = "rabbit"
	SpeciesOther  Species = "other"
)

// Pet representa una mascota registrada. Los datos del dueño van
// desnormalizados en el propio registro: no existe entidad Owner aparte,
// varias mascotas comparten dueño cuando coincide OwnerID.
type Pet struct {
	ID string

	Name    string
	Species Species
	Breed   string
	Age     float64
	Weight  float64

	OwnerID    string
	OwnerName  string
	OwnerEmail string
	OwnerPhone string

	CreatedAt time.Time
	UpdatedAt time.Time
}
