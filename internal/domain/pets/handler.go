package pets

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"pet-vaccination-api/internal/platform/response"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func RegisterRoutes(r chi.Router, svc *Service, log *zap.Logger) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, log))
		pr.Get("/", listPetsHandler(svc, log))

		// Ruta estática antes que {petID}: chi prioriza literales,
		// pero el orden explícito deja clara la intención.
		pr.Get("/owner/{ownerID}", listPetsByOwnerHandler(svc, log))

		pr.Get("/{petID}", getPetHandler(svc, log))
		pr.Put("/{petID}", updatePetHandler(svc, log))
		pr.Delete("/{petID}", deletePetHandler(svc, log))
	})
}

type createPetRequest struct {
	Name       string  `json:"name"`
	Species    string  `json:"species"`
	Breed      string  `json:"breed"`
	Age        float64 `json:"age"`
	Weight     float64 `json:"weight"`
	OwnerID    string  `json:"ownerId"`
	OwnerName  string  `json:"ownerName"`
	OwnerEmail string  `json:"ownerEmail"`
	OwnerPhone string  `json:"ownerPhone"`
}

type updatePetRequest struct {
	// Punteros para merge parcial: nil = no tocar.
	Name       *string  `json:"name"`
	Species    *string  `json:"species"`
	Breed      *string  `json:"breed"`
	Age        *float64 `json:"age"`
	Weight     *float64 `json:"weight"`
	OwnerID    *string  `json:"ownerId"`
	OwnerName  *string  `json:"ownerName"`
	OwnerEmail *string  `json:"ownerEmail"`
	OwnerPhone *string  `json:"ownerPhone"`
}

type petResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Species    string    `json:"species"`
	Breed      string    `json:"breed,omitempty"`
	Age        float64   `json:"age"`
	Weight     float64   `json:"weight"`
	OwnerID    string    `json:"ownerId"`
	OwnerName  string    `json:"ownerName"`
	OwnerEmail string    `json:"ownerEmail"`
	OwnerPhone string    `json:"ownerPhone,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func createPetHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := decodeBody(r, &req); err != nil {
			response.ValidationError(w, err.Error())
			return
		}

		if strings.TrimSpace(req.Name) == "" ||
			strings.TrimSpace(req.Species) == "" ||
			strings.TrimSpace(req.OwnerID) == "" ||
			strings.TrimSpace(req.OwnerName) == "" {
			response.ValidationError(w, "Name, species, ownerId and ownerName are required")
			return
		}

		if req.Age < 0 || req.Weight <= 0 {
			response.ValidationError(w, "Age must be positive and weight must be greater than 0")
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:       req.Name,
			Species:    req.Species,
			Breed:      req.Breed,
			Age:        req.Age,
			Weight:     req.Weight,
			OwnerID:    req.OwnerID,
			OwnerName:  req.OwnerName,
			OwnerEmail: req.OwnerEmail,
			OwnerPhone: req.OwnerPhone,
		})
		if err != nil {
			log.Error("creating pet", zap.Error(err))
			response.InternalError(w, "Could not create pet")
			return
		}

		response.Success(w, http.StatusCreated, toPetResponse(p))
	}
}

func getPetHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "petID")
		if strings.TrimSpace(id) == "" {
			response.ValidationError(w, "Pet ID is required")
			return
		}

		p, err := svc.GetByID(r.Context(), id)
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Pet")
			return
		case err != nil:
			log.Error("getting pet", zap.String("pet_id", id), zap.Error(err))
			response.InternalError(w, "Could not get pet")
			return
		}

		response.OK(w, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.GetAll(r.Context())
		if err != nil {
			log.Error("listing pets", zap.Error(err))
			response.InternalError(w, "Could not get pets")
			return
		}

		response.OK(w, toPetResponses(items))
	}
}

func listPetsByOwnerHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID := chi.URLParam(r, "ownerID")
		if strings.TrimSpace(ownerID) == "" {
			response.ValidationError(w, "Owner ID is required")
			return
		}

		items, err := svc.GetByOwnerID(r.Context(), ownerID)
		if err != nil {
			log.Error("listing pets by owner", zap.String("owner_id", ownerID), zap.Error(err))
			response.InternalError(w, "Could not get pets")
			return
		}

		response.OK(w, toPetResponses(items))
	}
}

func updatePetHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "petID")
		if strings.TrimSpace(id) == "" {
			response.ValidationError(w, "Pet ID is required")
			return
		}

		var req updatePetRequest
		if err := decodeBody(r, &req); err != nil {
			response.ValidationError(w, err.Error())
			return
		}

		if req.Age != nil && *req.Age < 0 {
			response.ValidationError(w, "Age must be positive")
			return
		}
		if req.Weight != nil && *req.Weight <= 0 {
			response.ValidationError(w, "Weight must be greater than 0")
			return
		}

		p, err := svc.Update(r.Context(), id, UpdateInput{
			Name:       req.Name,
			Species:    req.Species,
			Breed:      req.Breed,
			Age:        req.Age,
			Weight:     req.Weight,
			OwnerID:    req.OwnerID,
			OwnerName:  req.OwnerName,
			OwnerEmail: req.OwnerEmail,
			OwnerPhone: req.OwnerPhone,
		})
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Pet")
			return
		case err != nil:
			log.Error("updating pet", zap.String("pet_id", id), zap.Error(err))
			response.InternalError(w, "Could not update pet")
			return
		}

		response.OK(w, toPetResponse(p))
	}
}

func deletePetHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "petID")
		if strings.TrimSpace(id) == "" {
			response.ValidationError(w, "Pet ID is required")
			return
		}

		// Verificar existencia antes de borrar: el delete del almacén es
		// idempotente y no distingue "no estaba" de "borrado".
		_, err := svc.GetByID(r.Context(), id)
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Pet")
			return
		case err != nil:
			log.Error("deleting pet", zap.String("pet_id", id), zap.Error(err))
			response.InternalError(w, "Could not delete pet")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			log.Error("deleting pet", zap.String("pet_id", id), zap.Error(err))
			response.InternalError(w, "Could not delete pet")
			return
		}

		response.OK(w, map[string]string{"message": "Pet deleted successfully"})
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:         p.ID,
		Name:       p.Name,
		Species:    string(p.Species),
		Breed:      p.Breed,
		Age:        p.Age,
		Weight:     p.Weight,
		OwnerID:    p.OwnerID,
		OwnerName:  p.OwnerName,
		OwnerEmail: p.OwnerEmail,
		OwnerPhone: p.OwnerPhone,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toPetResponses(items []Pet) []petResponse {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p))
	}
	return out
}

var (
	errBodyRequired = errors.New("Request body is required")
	errInvalidBody  = errors.New("Invalid request body")
)

// decodeBody distingue body ausente de JSON malformado para mensajes claros.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return errBodyRequired
	}
	err := json.NewDecoder(r.Body).Decode(v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return errBodyRequired
	default:
		return errInvalidBody
	}
}
