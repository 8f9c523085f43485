package vaccines

import "time"

// VaccineType define los tipos de vacuna soportados.
// @Enum rabies, distemper, parvovirus, hepatitis, other
type VaccineType string

const (
	TypeRabies     VaccineType = "rabies"
	TypeDistemper  VaccineType = "distemper"
	TypeParvovirus VaccineType = "parvovirus"
	TypeHepatitis  VaccineType = "hepatitis"
	TypeOther      VaccineType = "other"
)

// Vaccine es un registro de vacunación aplicado a una mascota.
// PetID se valida contra el registro de mascotas SOLO al crear: borrar
// la mascota no borra sus vacunas (los huérfanos quedan, a propósito).
//
// Las fechas de aplicación/vencimiento se guardan como string tal cual
// llegaron (YYYY-MM-DD o RFC3339); se validan como fechas al crear.
type Vaccine struct {
	ID    string
	PetID string

	VaccineName string
	VaccineType VaccineType

	ApplicationDate string
	ExpirationDate  string

	VeterinarianName string
	Clinic           string
	BatchNumber      string
	Notes            string

	CreatedAt time.Time
	UpdatedAt time.Time
}
