package pets

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
	Name    string
	Species string
	Breed   string
	Age     float64
	Weight  float64

	OwnerID    string
	OwnerName  string
	OwnerEmail string
	OwnerPhone string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Species) == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now().UTC()
	p := Pet{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		Species:    Species(strings.TrimSpace(in.Species)),
		Breed:      strings.TrimSpace(in.Breed),
		Age:        in.Age,
		Weight:     in.Weight,
		OwnerID:    strings.TrimSpace(in.OwnerID),
		OwnerName:  strings.TrimSpace(in.OwnerName),
		OwnerEmail: strings.TrimSpace(in.OwnerEmail),
		OwnerPhone: strings.TrimSpace(in.OwnerPhone),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Put(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetAll(ctx context.Context) ([]Pet, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) GetByOwnerID(ctx context.Context, ownerID string) ([]Pet, error) {
	return s.repo.GetByOwnerID(ctx, ownerID)
}

// UpdateInput aplica PATCH parcial: nil = no tocar ese campo.
type UpdateInput struct {
	Name    *string
	Species *string
	Breed   *string
	Age     *float64
	Weight  *float64

	OwnerID    *string
	OwnerName  *string
	OwnerEmail *string
	OwnerPhone *string
}

// Update lee el registro actual, mezcla los campos presentes y
// sobreescribe. ID y CreatedAt nunca participan del merge.
// Si el id no existe devuelve ErrNotFound sin escribir nada.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		p.Species = Species(strings.TrimSpace(*in.Species))
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.Weight != nil {
		p.Weight = *in.Weight
	}
	if in.OwnerID != nil {
		p.OwnerID = strings.TrimSpace(*in.OwnerID)
	}
	if in.OwnerName != nil {
		p.OwnerName = strings.TrimSpace(*in.OwnerName)
	}
	if in.OwnerEmail != nil {
		p.OwnerEmail = strings.TrimSpace(*in.OwnerEmail)
	}
	if in.OwnerPhone != nil {
		p.OwnerPhone = strings.TrimSpace(*in.OwnerPhone)
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Put(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
