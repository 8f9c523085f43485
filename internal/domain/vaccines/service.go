package vaccines

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetID       string
	VaccineName string
	VaccineType string

	ApplicationDate string
	ExpirationDate  string

	VeterinarianName string
	Clinic           string
	BatchNumber      string
	Notes            string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Vaccine, error) {
	if strings.TrimSpace(in.PetID) == "" {
		return Vaccine{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.VaccineName) == "" {
		return Vaccine{}, ErrInvalidInput
	}

	now := s.now().UTC()
	v := Vaccine{
		ID:               uuid.NewString(),
		PetID:            strings.TrimSpace(in.PetID),
		VaccineName:      strings.TrimSpace(in.VaccineName),
		VaccineType:      VaccineType(strings.TrimSpace(in.VaccineType)),
		ApplicationDate:  strings.TrimSpace(in.ApplicationDate),
		ExpirationDate:   strings.TrimSpace(in.ExpirationDate),
		VeterinarianName: strings.TrimSpace(in.VeterinarianName),
		Clinic:           strings.TrimSpace(in.Clinic),
		BatchNumber:      strings.TrimSpace(in.BatchNumber),
		Notes:            strings.TrimSpace(in.Notes),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Put(ctx, v); err != nil {
		return Vaccine{}, err
	}
	return v, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Vaccine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Vaccine{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetAll(ctx context.Context) ([]Vaccine, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) GetByPetID(ctx context.Context, petID string) ([]Vaccine, error) {
	return s.repo.GetByPetID(ctx, petID)
}

// UpdateInput aplica PATCH parcial: nil = no tocar.
// PetID es editable y NO se re-valida contra mascotas existentes;
// la referencia solo se chequea al crear.
type UpdateInput struct {
	PetID       *string
	VaccineName *string
	VaccineType *string

	ApplicationDate *string
	ExpirationDate  *string

	VeterinarianName *string
	Clinic           *string
	BatchNumber      *string
	Notes            *string
}

// Update mezcla los campos presentes sobre el registro actual y
// sobreescribe. ID y CreatedAt nunca participan del merge.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Vaccine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Vaccine{}, ErrInvalidInput
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Vaccine{}, err
	}

	if in.PetID != nil {
		v.PetID = strings.TrimSpace(*in.PetID)
	}
	if in.VaccineName != nil {
		v.VaccineName = strings.TrimSpace(*in.VaccineName)
	}
	if in.VaccineType != nil {
		v.VaccineType = VaccineType(strings.TrimSpace(*in.VaccineType))
	}
	if in.ApplicationDate != nil {
		v.ApplicationDate = strings.TrimSpace(*in.ApplicationDate)
	}
	if in.ExpirationDate != nil {
		v.ExpirationDate = strings.TrimSpace(*in.ExpirationDate)
	}
	if in.VeterinarianName != nil {
		v.VeterinarianName = strings.TrimSpace(*in.VeterinarianName)
	}
	if in.Clinic != nil {
		v.Clinic = strings.TrimSpace(*in.Clinic)
	}
	if in.BatchNumber != nil {
		v.BatchNumber = strings.TrimSpace(*in.BatchNumber)
	}
	if in.Notes != nil {
		v.Notes = strings.TrimSpace(*in.Notes)
	}
	v.UpdatedAt = s.now().UTC()

	if err := s.repo.Put(ctx, v); err != nil {
		return Vaccine{}, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
