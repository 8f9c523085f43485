package vaccines

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"pet-vaccination-api/internal/domain/pets"
	"pet-vaccination-api/internal/platform/response"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegisterRoutes recibe también el servicio de mascotas: la creación de
// vacunas valida que la mascota referenciada exista, igual que el listado
// por mascota.
func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service, log *zap.Logger) {
	r.Route("/vaccines", func(vr chi.Router) {
		vr.Post("/", createVaccineHandler(svc, petsSvc, log))
		vr.Get("/", listVaccinesHandler(svc, log))

		vr.Get("/pet/{petID}", listVaccinesByPetHandler(svc, petsSvc, log))

		vr.Get("/{vaccineID}", getVaccineHandler(svc, log))
		vr.Put("/{vaccineID}", updateVaccineHandler(svc, log))
		vr.Delete("/{vaccineID}", deleteVaccineHandler(svc, log))
	})
}

type createVaccineRequest struct {
	PetID            string `json:"petId"`
	VaccineName      string `json:"vaccineName"`
	VaccineType      string `json:"vaccineType"`
	ApplicationDate  string `json:"applicationDate"`
	ExpirationDate   string `json:"expirationDate"`
	VeterinarianName string `json:"veterinarianName"`
	Clinic           string `json:"clinic"`
	BatchNumber      string `json:"batchNumber"`
	Notes            string `json:"notes"`
}

type updateVaccineRequest struct {
	// Punteros para merge parcial: nil = no tocar.
	PetID            *string `json:"petId"`
	VaccineName      *string `json:"vaccineName"`
	VaccineType      *string `json:"vaccineType"`
	ApplicationDate  *string `json:"applicationDate"`
	ExpirationDate   *string `json:"expirationDate"`
	VeterinarianName *string `json:"veterinarianName"`
	Clinic           *string `json:"clinic"`
	BatchNumber      *string `json:"batchNumber"`
	Notes            *string `json:"notes"`
}

type vaccineResponse struct {
	ID               string    `json:"id"`
	PetID            string    `json:"petId"`
	VaccineName      string    `json:"vaccineName"`
	VaccineType      string    `json:"vaccineType"`
	ApplicationDate  string    `json:"applicationDate"`
	ExpirationDate   string    `json:"expirationDate"`
	VeterinarianName string    `json:"veterinarianName"`
	Clinic           string    `json:"clinic"`
	BatchNumber      string    `json:"batchNumber,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func createVaccineHandler(svc *Service, petsSvc *pets.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createVaccineRequest
		if err := decodeBody(r, &req); err != nil {
			response.ValidationError(w, err.Error())
			return
		}

		if strings.TrimSpace(req.PetID) == "" ||
			strings.TrimSpace(req.VaccineName) == "" ||
			strings.TrimSpace(req.ApplicationDate) == "" {
			response.ValidationError(w, "petId, vaccineName and applicationDate are required")
			return
		}

		// La mascota referenciada debe existir. Una referencia rota hace
		// inválido al request, por eso 400 y no 404 (el 404 queda para
		// ids que son el sujeto del pedido, como en GET /vaccines/pet/*).
		_, err := petsSvc.GetByID(r.Context(), req.PetID)
		switch {
		case errors.Is(err, pets.ErrNotFound):
			response.ValidationError(w, "Pet not found")
			return
		case err != nil:
			log.Error("creating vaccine: checking pet", zap.String("pet_id", req.PetID), zap.Error(err))
			response.InternalError(w, "Could not create vaccine")
			return
		}

		appDate, err := ParseDate(req.ApplicationDate)
		if err != nil {
			response.ValidationError(w, "Invalid application date")
			return
		}
		expDate, err := ParseDate(req.ExpirationDate)
		if err != nil {
			response.ValidationError(w, "Invalid expiration date")
			return
		}
		if !expDate.After(appDate) {
			response.ValidationError(w, "Expiration date must be after application date")
			return
		}

		v, err := svc.Create(r.Context(), CreateInput{
			PetID:            req.PetID,
			VaccineName:      req.VaccineName,
			VaccineType:      req.VaccineType,
			ApplicationDate:  req.ApplicationDate,
			ExpirationDate:   req.ExpirationDate,
			VeterinarianName: req.VeterinarianName,
			Clinic:           req.Clinic,
			BatchNumber:      req.BatchNumber,
			Notes:            req.Notes,
		})
		if err != nil {
			log.Error("creating vaccine", zap.Error(err))
			response.InternalError(w, "Could not create vaccine")
			return
		}

		response.Success(w, http.StatusCreated, toVaccineResponse(v))
	}
}

func getVaccineHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "vaccineID")
		if strings.TrimSpace(id) == "" {
			response.ValidationError(w, "Vaccine ID is required")
			return
		}

		v, err := svc.GetByID(r.Context(), id)
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Vaccine")
			return
		case err != nil:
			log.Error("getting vaccine", zap.String("vaccine_id", id), zap.Error(err))
			response.InternalError(w, "Could not get vaccine")
			return
		}

		response.OK(w, toVaccineResponse(v))
	}
}

func listVaccinesHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.GetAll(r.Context())
		if err != nil {
			log.Error("listing vaccines", zap.Error(err))
			response.InternalError(w, "Could not get vaccines")
			return
		}

		response.OK(w, toVaccineResponses(items))
	}
}

func listVaccinesByPetHandler(svc *Service, petsSvc *pets.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")
		if strings.TrimSpace(petID) == "" {
			response.ValidationError(w, "Pet ID is required")
			return
		}

		// Acá la mascota es el sujeto del pedido: si no existe es 404.
		_, err := petsSvc.GetByID(r.Context(), petID)
		switch {
		case errors.Is(err, pets.ErrNotFound):
			response.NotFound(w, "Pet")
			return
		case err != nil:
			log.Error("listing vaccines by pet: checking pet", zap.String("pet_id", petID), zap.Error(err))
			response.InternalError(w, "Could not get vaccines")
			return
		}

		items, err := svc.GetByPetID(r.Context(), petID)
		if err != nil {
			log.Error("listing vaccines by pet", zap.String("pet_id", petID), zap.Error(err))
			response.InternalError(w, "Could not get vaccines")
			return
		}

		response.OK(w, toVaccineResponses(items))
	}
}

func updateVaccineHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "vaccineID")
		if strings.TrimSpace(id) == "" {
			response.ValidationError(w, "Vaccine ID is required")
			return
		}

		var req updateVaccineRequest
		if err := decodeBody(r, &req); err != nil {
			response.ValidationError(w, err.Error())
			return
		}

		// Solo se valida el parseo de las fechas presentes; la relación
		// vencimiento > aplicación no se re-chequea en updates parciales.
		if req.ApplicationDate != nil {
			if _, err := ParseDate(*req.ApplicationDate); err != nil {
				response.ValidationError(w, "Invalid application date")
				return
			}
		}
		if req.ExpirationDate != nil {
			if _, err := ParseDate(*req.ExpirationDate); err != nil {
				response.ValidationError(w, "Invalid expiration date")
				return
			}
		}

		v, err := svc.Update(r.Context(), id, UpdateInput{
			PetID:            req.PetID,
			VaccineName:      req.VaccineName,
			VaccineType:      req.VaccineType,
			ApplicationDate:  req.ApplicationDate,
			ExpirationDate:   req.ExpirationDate,
			VeterinarianName: req.VeterinarianName,
			Clinic:           req.Clinic,
			BatchNumber:      req.BatchNumber,
			Notes:            req.Notes,
		})
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Vaccine")
			return
		case err != nil:
			log.Error("updating vaccine", zap.String("vaccine_id", id), zap.Error(err))
			response.InternalError(w, "Could not update vaccine")
			return
		}

		response.OK(w, toVaccineResponse(v))
	}
}

func deleteVaccineHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "vaccineID")
		if strings.TrimSpace(id) == "" {
			response.ValidationError(w, "Vaccine ID is required")
			return
		}

		_, err := svc.GetByID(r.Context(), id)
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Vaccine")
			return
		case err != nil:
			log.Error("deleting vaccine", zap.String("vaccine_id", id), zap.Error(err))
			response.InternalError(w, "Could not delete vaccine")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			log.Error("deleting vaccine", zap.String("vaccine_id", id), zap.Error(err))
			response.InternalError(w, "Could not delete vaccine")
			return
		}

		response.OK(w, map[string]string{"message": "Vaccine deleted successfully"})
	}
}

func toVaccineResponse(v Vaccine) vaccineResponse {
	return vaccineResponse{
		ID:               v.ID,
		PetID:            v.PetID,
		VaccineName:      v.VaccineName,
		VaccineType:      string(v.VaccineType),
		ApplicationDate:  v.ApplicationDate,
		ExpirationDate:   v.ExpirationDate,
		VeterinarianName: v.VeterinarianName,
		Clinic:           v.Clinic,
		BatchNumber:      v.BatchNumber,
		Notes:            v.Notes,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func toVaccineResponses(items []Vaccine) []vaccineResponse {
	out := make([]vaccineResponse, 0, len(items))
	for _, v := range items {
		out = append(out, toVaccineResponse(v))
	}
	return out
}

var (
	errBodyRequired = errors.New("Request body is required")
	errInvalidBody  = errors.New("Invalid request body")
)

// decodeBody está duplicado a propósito respecto de pets (mismo criterio
// que teníamos con writeJSON): dos módulos todavía no justifican un
// helper compartido de decode.
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
